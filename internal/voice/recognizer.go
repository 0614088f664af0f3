package voice

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

// Recognizer produces one utterance per call. Listen blocks until text is
// available, ctx is done, or the source is exhausted (io.EOF).
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
}

// LineRecognizer treats each non-empty line of a reader as an utterance.
// It is the bridge for external speech engines that print transcripts, and
// for typing commands on stdin.
type LineRecognizer struct {
	r     io.Reader
	once  sync.Once
	lines chan string
	err   error // set before lines is closed

	closed    chan struct{}
	closeOnce sync.Once
}

func NewLineRecognizer(r io.Reader) *LineRecognizer {
	return &LineRecognizer{r: r, lines: make(chan string), closed: make(chan struct{})}
}

func (l *LineRecognizer) start() {
	go func() {
		defer close(l.lines)
		sc := bufio.NewScanner(l.r)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			select {
			case <-l.closed:
				return
			default:
			}
			select {
			case l.lines <- line:
			case <-l.closed:
				return
			}
		}
		l.err = sc.Err()
	}()
}

// Listen returns the next line. A read blocked on the underlying reader is
// abandoned, not interrupted, when ctx ends; the next Listen picks it up.
func (l *LineRecognizer) Listen(ctx context.Context) (string, error) {
	l.once.Do(l.start)

	select {
	case line, ok := <-l.lines:
		if !ok {
			if l.err != nil {
				return "", l.err
			}
			return "", io.EOF
		}
		return line, nil
	case <-l.closed:
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close makes Listen return io.EOF. The reading goroutine exits with its next
// line, or when the reader itself is closed; the reader is not closed here.
func (l *LineRecognizer) Close() error {
	l.closeOnce.Do(func() { close(l.closed) })
	return nil
}
