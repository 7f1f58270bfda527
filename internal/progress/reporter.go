// Package progress provides progress feedback while catalog pages are
// rendered.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives per-dataset rendering progress.
type Reporter interface {
	Start(datasets int)
	Dataset(current int, name string, variants int)
	Finish()
}

// NewReporter returns a TerminalReporter if running in an interactive
// terminal, or a CIReporter if the CI environment variable is set.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: os.Stderr}
	}
	return &TerminalReporter{}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(datasets int) {
	r.bar = progressbar.NewOptions(datasets,
		progressbar.OptionSetDescription("Rendering catalog"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Dataset(current int, name string, variants int) {
	if r.bar != nil {
		r.bar.Describe(fmt.Sprintf("%s (%d variants)", name, variants))
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	Out   io.Writer
	total int
}

func (r *CIReporter) Start(datasets int) {
	r.total = datasets
	fmt.Fprintf(r.out(), "Rendering %d datasets\n", datasets)
}

func (r *CIReporter) Dataset(current int, name string, variants int) {
	fmt.Fprintf(r.out(), "[%d/%d] %s: %d variants\n", current, r.total, name, variants)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.out(), "Done\n")
}

func (r *CIReporter) out() io.Writer {
	if r.Out == nil {
		return os.Stderr
	}
	return r.Out
}
