package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
)

// drain streams s to the end and returns the sample count and peak level.
func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		k, ok := s.Stream(buf)
		for _, smp := range buf[:k] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		n += k
		if !ok || k == 0 {
			return n, peak
		}
	}
}

func TestEffectTonesHaveExpectedLength(t *testing.T) {
	lengths := map[Effect]time.Duration{
		EffectFireball:  350 * time.Millisecond,
		EffectLightning: 220 * time.Millisecond,
		EffectFizzle:    150 * time.Millisecond,
		EffectHit:       100 * time.Millisecond,
		EffectDeath:     500 * time.Millisecond,
	}
	for e, d := range lengths {
		n, peak := drain(effectTone(e))
		assert.Equal(t, sampleRate.N(d), n, "%s length", e)
		assert.LessOrEqual(t, peak, 1.0, "%s clips", e)
		assert.Greater(t, peak, 0.0, "%s is silent", e)
	}
}

func TestEnvelopeStartsAndEndsQuiet(t *testing.T) {
	tn := newTone(sampleRate, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond,
		layer{wave: WaveSquare, from: 100, to: 100, gain: 1})

	buf := make([][2]float64, sampleRate.N(100*time.Millisecond))
	n, ok := tn.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, len(buf), n)
	assert.Zero(t, buf[0][0])
	assert.InDelta(t, 1.0, math.Abs(buf[n/2][0]), 1e-9)
	assert.Less(t, math.Abs(buf[n-1][0]), 0.01)

	n, ok = tn.Stream(buf)
	assert.Zero(t, n)
	assert.False(t, ok)
}

func TestVolumeScalesStream(t *testing.T) {
	_, full := drain(NewSoundManager(1).stream(EffectHit))
	_, half := drain(NewSoundManager(0.5).stream(EffectHit))
	_, muted := drain(NewSoundManager(0).stream(EffectHit))

	assert.InDelta(t, full/2, half, 1e-9)
	assert.Zero(t, muted)
}

func TestPlayWithoutSpeakerOnlyCounts(t *testing.T) {
	sm := NewSoundManager(0.7)
	sm.Play(EffectFireball)
	sm.Play(EffectFireball)
	sm.Play(EffectDeath)
	sm.Play(Effect(42))
	sm.Cleanup()

	assert.Equal(t, 2, sm.Played(EffectFireball))
	assert.Equal(t, 1, sm.Played(EffectDeath))
	assert.Zero(t, sm.Played(EffectHit))
	assert.Zero(t, sm.Played(Effect(42)))
}

func TestEffectString(t *testing.T) {
	assert.Equal(t, "fizzle", EffectFizzle.String())
	assert.Equal(t, "unknown", Effect(99).String())
}
