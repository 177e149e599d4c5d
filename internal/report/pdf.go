package report

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ════════════════════════════════════════════════════════════════════
// PDF Export — dashboard HTML → PDF via wkhtmltopdf / chromium headless
// ════════════════════════════════════════════════════════════════════

// PDFEngine names the HTML→PDF converter to use.
type PDFEngine string

const (
	EngineWKHTML   PDFEngine = "wkhtmltopdf"
	EngineChromium PDFEngine = "chromium"
	EngineNone     PDFEngine = "none" // no engine: fall back to HTML output
)

// PDFOptions controls the dashboard PDF export.
type PDFOptions struct {
	Engine      PDFEngine // default: auto-detect
	PageSize    string    // default: "A4"
	Orientation string    // "portrait" (default) or "landscape"
	Margin      string    // uniform page margin, default: "12mm"
	OutputPath  string    // required: output PDF file path
}

// DefaultPDFOptions returns sensible defaults for PDF export.
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageSize:    "A4",
		Orientation: "landscape", // chart grids read better wide
		Margin:      "12mm",
	}
}

// DetectPDFEngine reports which converter is available on this system.
func DetectPDFEngine() PDFEngine {
	if _, err := exec.LookPath("wkhtmltopdf"); err == nil {
		return EngineWKHTML
	}
	for _, name := range chromiumBinaries {
		if _, err := exec.LookPath(name); err == nil {
			return EngineChromium
		}
	}
	return EngineNone
}

var chromiumBinaries = []string{"chromium-browser", "chromium", "google-chrome", "google-chrome-stable"}

// ExportPDF converts dashboard HTML into a PDF file at opts.OutputPath.
// Without a converter on PATH it writes the HTML next to the requested
// path instead, so a dashboard is always produced.
func ExportPDF(html string, opts PDFOptions) error {
	if opts.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.PageSize == "" {
		opts.PageSize = "A4"
	}
	if opts.Margin == "" {
		opts.Margin = "12mm"
	}

	engine := opts.Engine
	if engine == "" {
		engine = DetectPDFEngine()
	}

	switch engine {
	case EngineWKHTML:
		return exportWithWKHTML(html, opts)
	case EngineChromium:
		return exportWithChromium(html, opts)
	case EngineNone:
		return writeHTMLFallback(html, opts.OutputPath)
	default:
		return fmt.Errorf("unsupported PDF engine: %s", engine)
	}
}

func exportWithWKHTML(html string, opts PDFOptions) error {
	tmpFile, err := writeTempHTML(html)
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile)

	orientation := opts.Orientation
	if orientation == "" {
		orientation = "portrait"
	}

	args := []string{
		"--page-size", opts.PageSize,
		"--orientation", orientation,
		"--margin-top", opts.Margin,
		"--margin-bottom", opts.Margin,
		"--margin-left", opts.Margin,
		"--margin-right", opts.Margin,
		"--encoding", "UTF-8",
		"--enable-local-file-access",
		"--quiet",
		tmpFile,
		opts.OutputPath,
	}

	cmd := exec.Command("wkhtmltopdf", args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("wkhtmltopdf failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

func exportWithChromium(html string, opts PDFOptions) error {
	tmpFile, err := writeTempHTML(html)
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile)

	var chromiumBin string
	for _, name := range chromiumBinaries {
		if path, err := exec.LookPath(name); err == nil {
			chromiumBin = path
			break
		}
	}
	if chromiumBin == "" {
		return fmt.Errorf("chromium not found in PATH")
	}

	absOutput, err := filepath.Abs(opts.OutputPath)
	if err != nil {
		return fmt.Errorf("resolving output path: %w", err)
	}

	args := []string{
		"--headless",
		"--disable-gpu",
		"--no-sandbox",
		"--print-to-pdf=" + absOutput,
		"--print-to-pdf-no-header",
	}
	if strings.EqualFold(opts.Orientation, "landscape") {
		args = append(args, "--landscape")
	}
	args = append(args, "file://"+tmpFile)

	cmd := exec.Command(chromiumBin, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("chromium PDF export failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

func writeTempHTML(html string) (string, error) {
	tmpFile := filepath.Join(os.TempDir(), "lightcharts_dashboard.html")
	if err := os.WriteFile(tmpFile, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("writing temp HTML: %w", err)
	}
	return tmpFile, nil
}

func writeHTMLFallback(html, outputPath string) error {
	if strings.HasSuffix(strings.ToLower(outputPath), ".pdf") {
		outputPath = outputPath[:len(outputPath)-4] + ".html"
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing HTML fallback: %w", err)
	}
	return nil
}

// IsPDFSupported reports whether a PDF converter is available.
func IsPDFSupported() bool {
	return DetectPDFEngine() != EngineNone
}
