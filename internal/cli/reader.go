package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader reads shopper input a line at a time and can be abandoned
// when the context is canceled.
type LineReader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewLineReader creates a line reader over r.
func NewLineReader(r io.Reader) *LineReader {
	if r == nil {
		panic("reader cannot be nil")
	}
	return &LineReader{reader: bufio.NewReader(r)}
}

// ReadLine returns the next trimmed line. A final line without a newline is
// returned before io.EOF.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	// The read goroutine outlives a canceled context until the read returns.
	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if errors.Is(res.err, io.EOF) && res.value != "" {
			return strings.TrimSpace(res.value), nil
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}
