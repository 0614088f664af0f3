package voice

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magearena/internal/config"
	"magearena/internal/entities"
)

func TestQueueIsBounded(t *testing.T) {
	q := NewQueue(2)
	assert.True(t, q.Offer(entities.SpellFireball))
	assert.True(t, q.Offer(entities.SpellLightning))
	assert.False(t, q.Offer(entities.SpellFireball), "full queue rejects without blocking")
	assert.Equal(t, int64(1), q.Dropped())
	assert.Equal(t, 2, q.Len())

	got := q.Drain(nil)
	assert.Equal(t, []entities.SpellKind{entities.SpellFireball, entities.SpellLightning}, got)
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Drain(nil))

	assert.Equal(t, DefaultQueueSize, NewQueue(0).Cap())
}

func TestTextToSpell(t *testing.T) {
	cases := []struct {
		text string
		want entities.SpellKind
	}{
		{"bola de fuego", entities.SpellFireball},
		{"Lanza una BOLA DE FUEGO", entities.SpellFireball},
		{"fuego", entities.SpellFireball},
		{"rayo", entities.SpellLightning},
		{"que caiga un trueno", entities.SpellLightning},
		{"RELÁMPAGO", entities.SpellLightning},
		{"hola", entities.SpellNone},
		{"", entities.SpellNone},
		// keyword order decides, not position in the text
		{"rayo primero, luego fuego", entities.SpellFireball},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TextToSpell(tc.text), "%q", tc.text)
	}
}

func TestKeywordsFromConfig(t *testing.T) {
	kws := KeywordsFromConfig([]config.KeywordConfig{
		{Phrase: "  Hielo ", Spell: "lightning"},
		{Phrase: "", Spell: "fireball"},
		{Phrase: "agua", Spell: "water"},
	})
	require.Len(t, kws, 1)
	assert.Equal(t, Keyword{Phrase: "hielo", Spell: entities.SpellLightning}, kws[0])

	assert.Equal(t, DefaultKeywords(), KeywordsFromConfig(nil))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultKeywords(), KeywordsFromConfig(cfg.Voice.Keywords))

	m := NewMatcher(kws)
	assert.Equal(t, []string{"hielo"}, m.Phrases())
	_, ok := m.Match("fuego")
	assert.False(t, ok)
}

func TestLineRecognizer(t *testing.T) {
	r := NewLineRecognizer(strings.NewReader("fuego\n\n  rayo  \n"))
	ctx := context.Background()

	text, err := r.Listen(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fuego", text)

	text, err = r.Listen(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rayo", text)

	_, err = r.Listen(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineRecognizerHonorsContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	r := NewLineRecognizer(pr)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := r.Listen(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLineRecognizerClose(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	r := NewLineRecognizer(pr)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := r.Listen(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	_, err = r.Listen(context.Background())
	assert.ErrorIs(t, err, io.EOF)

	// The reader goroutine drops the next line and exits instead of blocking.
	go pw.Write([]byte("fuego\n"))
	select {
	case _, ok := <-r.lines:
		assert.False(t, ok, "line delivered after Close")
	case <-time.After(time.Second):
		t.Fatal("reader goroutine did not exit after Close")
	}
}

func TestListenerStopClosesRecognizer(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	rec := NewLineRecognizer(pr)
	l := NewListener(rec, NewMatcher(nil), NewQueue(4), Options{})

	l.Start(context.Background())
	require.NoError(t, l.Stop())

	_, err := rec.Listen(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestListenerFeedsQueue(t *testing.T) {
	var logs bytes.Buffer
	logger := log.New(&logs)
	q := NewQueue(8)
	rec := NewLineRecognizer(strings.NewReader("bola de fuego\nhola\ntrueno\n"))
	l := NewListener(rec, NewMatcher(DefaultKeywords()), q, Options{Logger: logger})

	l.Start(context.Background())
	select {
	case <-l.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not finish reading its source")
	}

	assert.Equal(t, []entities.SpellKind{entities.SpellFireball, entities.SpellLightning}, q.Drain(nil))
	heard, matched, rejected := l.Stats()
	assert.Equal(t, 3, heard)
	assert.Equal(t, 2, matched)
	assert.Equal(t, 1, rejected)
	assert.Contains(t, logs.String(), "unrecognized command")
	assert.NoError(t, l.Stop())
}

func TestListenerDropsWhenQueueFull(t *testing.T) {
	q := NewQueue(1)
	rec := NewLineRecognizer(strings.NewReader("fuego\nrayo\nfuego\n"))
	l := NewListener(rec, NewMatcher(DefaultKeywords()), q, Options{})

	l.Start(context.Background())
	<-l.Done()

	assert.Equal(t, 1, q.Len())
	assert.Equal(t, int64(2), q.Dropped())
}

// blockingRecognizer waits for ctx like a live microphone would
type blockingRecognizer struct{}

func (blockingRecognizer) Listen(ctx context.Context) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

// stuckRecognizer ignores cancellation
type stuckRecognizer struct {
	release chan struct{}
}

func (s stuckRecognizer) Listen(ctx context.Context) (string, error) {
	<-s.release
	return "", io.EOF
}

func TestListenerStopsWithinTimeout(t *testing.T) {
	l := NewListener(blockingRecognizer{}, NewMatcher(DefaultKeywords()), NewQueue(1), Options{
		ListenTimeout: 10 * time.Millisecond,
		StopTimeout:   time.Second,
	})
	l.Start(context.Background())
	l.Start(context.Background())

	time.Sleep(30 * time.Millisecond)
	assert.NoError(t, l.Stop())
	assert.NoError(t, l.Stop(), "second stop is a no-op")
}

func TestListenerStopTimesOut(t *testing.T) {
	rec := stuckRecognizer{release: make(chan struct{})}
	defer close(rec.release)

	l := NewListener(rec, NewMatcher(DefaultKeywords()), NewQueue(1), Options{
		StopTimeout: 20 * time.Millisecond,
	})
	l.Start(context.Background())

	err := l.Stop()
	assert.True(t, errors.Is(err, ErrStopTimeout))
}

func TestStopBeforeStart(t *testing.T) {
	l := NewListener(blockingRecognizer{}, NewMatcher(nil), NewQueue(1), Options{})
	assert.NoError(t, l.Stop())
	assert.Nil(t, l.Done())
}

// flakyRecognizer fails once, then reports end of input
type flakyRecognizer struct {
	calls int
}

func (f *flakyRecognizer) Listen(ctx context.Context) (string, error) {
	f.calls++
	if f.calls == 1 {
		return "", errors.New("service unavailable")
	}
	return "", io.EOF
}

func TestListenerSurvivesRecognitionErrors(t *testing.T) {
	var logs bytes.Buffer
	rec := &flakyRecognizer{}
	l := NewListener(rec, NewMatcher(DefaultKeywords()), NewQueue(1), Options{Logger: log.New(&logs)})

	l.Start(context.Background())
	select {
	case <-l.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not exit")
	}
	assert.Equal(t, 2, rec.calls)
	assert.Contains(t, logs.String(), "service unavailable")
}

func TestOptionsFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	opts := OptionsFromConfig(cfg, nil)
	assert.Equal(t, 3*time.Second, opts.ListenTimeout)
	assert.Equal(t, 500*time.Millisecond, opts.StopTimeout)
}
