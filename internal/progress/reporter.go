// Package progress shows activity while an explanation request is in
// flight.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides feedback during a long-running fetch.
type Reporter interface {
	Start(message string)
	Finish()
}

// NewReporter returns a TerminalReporter if running in an interactive
// terminal, or a CIReporter if the CI environment variable is set.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{}
	}
	return &TerminalReporter{}
}

// TerminalReporter displays an indeterminate spinner in the terminal.
type TerminalReporter struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
}

func (r *TerminalReporter) Start(message string) {
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(message),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	r.done = make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-r.done:
				return
			case <-ticker.C:
				_ = r.bar.Add(1)
			}
		}
	}()
}

func (r *TerminalReporter) Finish() {
	if r.done != nil {
		close(r.done)
		r.done = nil
	}
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints plain lines suitable for CI logs.
type CIReporter struct{}

func (r *CIReporter) Start(message string) {
	fmt.Fprintf(os.Stderr, "%s\n", message)
}

func (r *CIReporter) Finish() {}
