package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	specpub "github.com/alnah/go-specpub"
	"github.com/alnah/go-specpub/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Tools    []toolInfo `json:"tools"`
	Chrome   toolInfo   `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// toolInfo holds detection results for one external program.
type toolInfo struct {
	Name    string `json:"name"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// doctorProbe locates programs. Replaced in tests.
type doctorProbe struct {
	lookPath    func(string) (string, error)
	browserPath func() (string, bool)
	version     func(path string) (string, error)
	getenv      func(string) string
}

func defaultProbe() *doctorProbe {
	return &doctorProbe{
		lookPath:    exec.LookPath,
		browserPath: launcher.LookPath,
		version:     toolVersion,
		getenv:      os.Getenv,
	}
}

// toolVersion returns the first line of "<path> --version".
func toolVersion(path string) (string, error) {
	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path comes from LookPath
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line), nil
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	probe := defaultProbe()
	probe.getenv = env.Getenv
	result := runDoctor(probe)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(probe *doctorProbe) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  probe.getenv("ROD_NO_SANDBOX"),
			BrowserBin: probe.getenv("ROD_BROWSER_BIN"),
		},
	}

	checkTools(result, probe)
	checkChrome(result, probe)
	checkRenderers(result)
	checkEnvironment(result, probe)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkTools looks up pandoc, wkhtmltopdf and prettier on PATH.
// Only pandoc is mandatory; renderers are judged by checkRenderers.
func checkTools(result *doctorResult, probe *doctorProbe) {
	for _, name := range []string{specpub.ToolPandoc, specpub.ToolWkhtmltopdf, specpub.ToolPrettier} {
		info := toolInfo{Name: name}
		path, err := probe.lookPath(name)
		if err == nil {
			info.Found = true
			info.Path = path
			if v, err := probe.version(path); err == nil {
				info.Version = v
			} else {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Could not get %s version: %v", name, err))
			}
		}
		result.Tools = append(result.Tools, info)

		if info.Found {
			continue
		}
		switch name {
		case specpub.ToolPandoc:
			result.Errors = append(result.Errors, "pandoc not found"+hints.ForToolNotFound(name))
		case specpub.ToolPrettier:
			result.Warnings = append(result.Warnings, "prettier not found, Markdown will not be formatted")
		}
	}
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult, probe *doctorProbe) {
	result.Chrome.Name = specpub.RendererChrome
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = probe.browserPath()
		if !found {
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	if v, err := probe.version(chromePath); err == nil {
		result.Chrome.Version = v
	}
}

// checkRenderers requires at least one PDF renderer.
func checkRenderers(result *doctorResult) {
	wk := false
	for _, t := range result.Tools {
		if t.Name == specpub.ToolWkhtmltopdf {
			wk = t.Found
		}
	}
	switch {
	case !wk && !result.Chrome.Found:
		result.Errors = append(result.Errors,
			"No PDF renderer found. Install wkhtmltopdf, or Chrome and use --renderer chrome")
	case !wk:
		result.Warnings = append(result.Warnings,
			"wkhtmltopdf not found, use --renderer chrome")
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, probe *doctorProbe) {
	result.Env.Container, result.Env.ContainerHint = isContainer(probe.getenv)
	result.Env.CI = hints.InCI()

	if result.Chrome.Found && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 for --renderer chrome")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("SPECPUB_CONTAINER") == "1" {
		return true, "SPECPUB_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "specpub-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "specpub doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Tools")
	for _, t := range append(append([]toolInfo(nil), r.Tools...), r.Chrome) {
		if !t.Found {
			fmt.Fprintf(w, "  [--] %s: not found\n", t.Name)
			continue
		}
		if t.Version != "" {
			fmt.Fprintf(w, "  [OK] %s: %s (%s)\n", t.Name, t.Path, t.Version)
		} else {
			fmt.Fprintf(w, "  [OK] %s: %s\n", t.Name, t.Path)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to publish")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
