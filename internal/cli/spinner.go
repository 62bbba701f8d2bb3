package cli

import (
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner shows an indeterminate progress indicator while the concierge thinks.
type Spinner struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// StartSpinner begins animating description on w until Stop is called.
func StartSpinner(w io.Writer, description string) *Spinner {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
		progressbar.OptionClearOnFinish(),
	)

	s := &Spinner{bar: bar, done: make(chan struct{})}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				_ = s.bar.Add(1)
			}
		}
	}()
	return s
}

// Stop halts the animation and clears the line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
		_ = s.bar.Finish()
	})
}
