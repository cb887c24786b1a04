package progress

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner shows an animated status line. A Spinner created for a
// non-terminal writer, and a nil Spinner, do nothing.
type Spinner struct {
	s       *spinner.Spinner
	symbols ProgressSymbols
	message string
}

// StartSpinner starts a spinner with message on w when w is a terminal.
func StartSpinner(w io.Writer, message string) *Spinner {
	caps := DetectTerminalCapabilities(w)
	if !caps.IsTTY {
		return &Spinner{}
	}

	symbols := SelectSymbols(caps)
	s := spinner.New(spinner.CharSets[symbols.SpinnerSet], spinnerInterval, spinner.WithWriter(w))
	s.Suffix = " " + message
	if caps.SupportsColor {
		_ = s.Color("cyan")
	}
	s.Start()
	return &Spinner{s: s, symbols: symbols, message: message}
}

// Active reports whether the spinner is rendering.
func (p *Spinner) Active() bool {
	return p != nil && p.s != nil && p.s.Active()
}

// Stop clears the spinner line.
func (p *Spinner) Stop() {
	if p == nil || p.s == nil {
		return
	}
	p.s.Stop()
}

// Finish stops the spinner and leaves a checkmark or failure line behind.
func (p *Spinner) Finish(ok bool) {
	if p == nil || p.s == nil {
		return
	}
	mark := p.symbols.Checkmark
	if !ok {
		mark = p.symbols.Failure
	}
	p.s.FinalMSG = mark + " " + p.message + "\n"
	p.s.Stop()
}
