package voice

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"magearena/internal/config"
)

// ErrStopTimeout is returned by Stop when the listener goroutine did not exit
// within the stop timeout.
var ErrStopTimeout = errors.New("voice listener did not stop in time")

// Default timings.
const (
	DefaultListenTimeout = 3 * time.Second
	DefaultStopTimeout   = 500 * time.Millisecond
	errorBackoff         = 100 * time.Millisecond
)

// Options configure a Listener.
type Options struct {
	ListenTimeout time.Duration // per utterance
	StopTimeout   time.Duration
	Logger        *log.Logger
}

// OptionsFromConfig reads the voice section of cfg.
func OptionsFromConfig(cfg *config.Config, logger *log.Logger) Options {
	return Options{
		ListenTimeout: cfg.VoiceTimeout(),
		StopTimeout:   cfg.VoiceStopTimeout(),
		Logger:        logger,
	}
}

// Listener reads utterances from a Recognizer on one goroutine, matches them
// to spells and offers them to a Queue.
type Listener struct {
	rec     Recognizer
	matcher *Matcher
	queue   *Queue
	opts    Options
	logger  *log.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once

	heard    int
	matched  int
	rejected int
}

// NewListener creates a stopped listener.
func NewListener(rec Recognizer, matcher *Matcher, queue *Queue, opts Options) *Listener {
	if opts.ListenTimeout <= 0 {
		opts.ListenTimeout = DefaultListenTimeout
	}
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = DefaultStopTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Listener{
		rec:     rec,
		matcher: matcher,
		queue:   queue,
		opts:    opts,
		logger:  logger.WithPrefix("voice"),
	}
}

// Start launches the listening goroutine. Calling Start twice is a no-op.
func (l *Listener) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done != nil {
		return
	}

	ctx, l.cancel = context.WithCancel(ctx)
	l.done = make(chan struct{})
	go l.run(ctx)
	l.logger.Info("listening", "timeout", l.opts.ListenTimeout)
}

func (l *Listener) run(ctx context.Context) {
	defer close(l.done)
	if c, ok := l.rec.(io.Closer); ok {
		defer c.Close()
	}

	for ctx.Err() == nil {
		lctx, cancel := context.WithTimeout(ctx, l.opts.ListenTimeout)
		text, err := l.rec.Listen(lctx)
		cancel()

		switch {
		case err == nil:
			l.handle(text)
		case errors.Is(err, io.EOF):
			l.logger.Debug("voice source closed")
			return
		case ctx.Err() != nil:
			return
		case errors.Is(err, context.DeadlineExceeded):
			// nothing said within the timeout
		default:
			l.logger.Warn("recognition failed", "error", err)
			select {
			case <-time.After(errorBackoff):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (l *Listener) handle(text string) {
	l.mu.Lock()
	l.heard++
	l.mu.Unlock()

	spell, ok := l.matcher.Match(text)
	if !ok {
		l.mu.Lock()
		l.rejected++
		l.mu.Unlock()
		l.logger.Info("unrecognized command", "text", text, "valid", l.matcher.Phrases())
		return
	}

	l.mu.Lock()
	l.matched++
	l.mu.Unlock()
	if !l.queue.Offer(spell) {
		l.logger.Warn("spell queue full, dropping cast", "spell", spell)
		return
	}
	l.logger.Debug("recognized", "text", text, "spell", spell)
}

// Stop cancels the goroutine and waits at most the stop timeout for it to
// exit. It is safe to call more than once and on a listener never started.
func (l *Listener) Stop() error {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.mu.Unlock()
	if done == nil {
		return nil
	}

	var err error
	l.stopOnce.Do(func() {
		cancel()
		select {
		case <-done:
			l.logger.Info("stopped")
		case <-time.After(l.opts.StopTimeout):
			err = ErrStopTimeout
			l.logger.Warn("listener still running after stop", "timeout", l.opts.StopTimeout)
		}
	})
	return err
}

// Done is closed when the listening goroutine exits. It is nil before Start.
func (l *Listener) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// Stats returns how many utterances were heard, matched and rejected.
func (l *Listener) Stats() (heard, matched, rejected int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.heard, l.matched, l.rejected
}
