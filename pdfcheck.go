package specpub

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFInfo summarizes a rendered PDF.
type PDFInfo struct {
	Pages int
	Size  int64 // bytes
}

// PDFInspector checks a rendered PDF file.
type PDFInspector interface {
	Inspect(path string) (*PDFInfo, error)
}

// PdfcpuInspector parses and validates the PDF with pdfcpu.
type PdfcpuInspector struct{}

// Inspect returns ErrInvalidPDF when path is missing, empty, unreadable as
// PDF, or has no pages.
func (PdfcpuInspector) Inspect(path string) (*PDFInfo, error) {
	f, err := os.Open(path) // #nosec G304 -- path is the renderer output
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if st.Size() == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidPDF, path)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if ctx.PageCount == 0 {
		return nil, fmt.Errorf("%w: %s has no pages", ErrInvalidPDF, path)
	}
	return &PDFInfo{Pages: ctx.PageCount, Size: st.Size()}, nil
}

var _ PDFInspector = PdfcpuInspector{}
