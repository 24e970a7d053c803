// Package dateutil resolves publication dates and copyright years.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxFormatLength limits format string length.
const MaxFormatLength = 50

// Auto is the value that resolves to the current date.
const Auto = "auto"

// DefaultFormat is used for a bare "auto".
const DefaultFormat = "YYYY-MM-DD"

// tokens maps format tokens to Go layout parts, longest first.
var tokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named formats accepted after "auto:".
var Presets = map[string]string{
	"iso":  "YYYY-MM-DD",
	"us":   "MM/DD/YYYY",
	"long": "D MMMM YYYY", // OASIS cover pages: "15 March 2024"
	"year": "YYYY",
}

// Layout converts a token format (YYYY, MM, D, ...) to a Go time layout.
// Text in single quotes is copied literally, so 'Rev' stays "Rev".
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}

	var b strings.Builder
	for i := 0; i < len(format); {
		if format[i] == '\'' {
			end := strings.IndexByte(format[i+1:], '\'')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed quote at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range tokens {
			if strings.HasPrefix(format[i:], t.token) {
				b.WriteString(t.layout)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}
	return b.String(), nil
}

// Resolve expands "auto", "auto:FORMAT" and "auto:preset" against now.
// Any other value is returned unchanged.
func Resolve(value string, now time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, Auto) {
		return value, nil
	}

	format := DefaultFormat
	switch {
	case lower == Auto:
	case strings.HasPrefix(lower, Auto+":"):
		format = value[len(Auto)+1:]
		if preset, ok := Presets[strings.ToLower(format)]; ok {
			format = preset
		}
	default:
		return "", fmt.Errorf("%w: %q (use auto or auto:FORMAT)", ErrInvalidDateFormat, value)
	}

	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}

// Year returns now's year for "" and "auto", otherwise value.
func Year(value string, now time.Time) string {
	if value == "" || strings.EqualFold(value, Auto) {
		return now.Format("2006")
	}
	return value
}
