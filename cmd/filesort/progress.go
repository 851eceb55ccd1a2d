package main

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/walteh/filesort/pkg/status"
)

// pollInterval is how often the progress bar re-reads the ledger
const pollInterval = 100 * time.Millisecond

// startProgress renders a progress bar that polls the ledger until the
// returned stop function is called. The bar tracks files reaching a
// terminal state; byte-level percentage is shown in the title.
func startProgress(ledger *status.Ledger, total int) (stop func()) {
	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("transferring").
		Start()
	if err != nil {
		// No terminal available; run silently
		return func() {}
	}

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				advance(bar, ledger)
				return
			case <-ticker.C:
				advance(bar, ledger)
			}
		}
	}()

	return func() {
		close(done)
		<-finished
		_, _ = bar.Stop()
	}
}

// advance moves the bar to the number of terminal entries
func advance(bar *pterm.ProgressbarPrinter, ledger *status.Ledger) {
	s := ledger.Summary()
	terminal := s.Completed + s.Errors + s.Skipped
	if delta := terminal - bar.Current; delta > 0 {
		bar.Add(delta)
	}
	bar.UpdateTitle(pterm.Sprintf("transferring (%.0f%%)", s.PercentComplete()))
}
