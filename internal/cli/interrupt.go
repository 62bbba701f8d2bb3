package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler turns SIGINT and SIGTERM into context cancellation and
// says goodbye once.
type InterruptHandler struct {
	writer      io.Writer
	cancelFunc  context.CancelFunc
	sessionID   string
	resumable   bool
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stdout
	}
	return &InterruptHandler{
		writer: writer,
	}
}

// SetSession records the session to mention in the goodbye message.
func (h *InterruptHandler) SetSession(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessionID = id
}

// SetResumable reports whether sessions outlive the process. The resume
// hint is only printed for resumable sessions.
func (h *InterruptHandler) SetResumable(resumable bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resumable = resumable
}

// HandleInterrupts sets up signal handling and returns a context that will be canceled on interrupt.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	h.cancelFunc = cancel

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			h.interrupt()
		case <-ctx.Done():
		}
	}()

	return ctx
}

func (h *InterruptHandler) interrupt() {
	h.mu.Lock()
	if !h.interrupted {
		h.interrupted = true
		h.showInterruptMessage()
	}
	h.mu.Unlock()
	if h.cancelFunc != nil {
		h.cancelFunc()
	}
}

func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n\n" + FormatWarning("Chat interrupted!")

	if h.resumable && h.sessionID != "" {
		msg += "\n" + FormatInfo("Your conversation is saved. Resume with: concierge chat --session "+h.sessionID)
	}

	msg += "\n" + FormatInfo("Thanks for stopping by! "+ConciergeIcon) + "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
