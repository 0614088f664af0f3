package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// layer is one oscillator of a tone. Its frequency slides linearly from
// from to to over the tone's duration; noise ignores both.
type layer struct {
	wave     WaveType
	from, to float64
	gain     float64
}

// tone mixes its layers and shapes them with an attack/release envelope.
// Layer gains should sum to at most 1.
type tone struct {
	layers []layer
	phases []float64
	rate   beep.SampleRate

	position int
	total    int
	attack   int
	release  int
}

func newTone(rate beep.SampleRate, duration, attack, release time.Duration, layers ...layer) *tone {
	return &tone{
		layers:  layers,
		phases:  make([]float64, len(layers)),
		rate:    rate,
		total:   rate.N(duration),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

func sample(w WaveType, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

func (t *tone) envelope() float64 {
	switch {
	case t.attack > 0 && t.position < t.attack:
		return float64(t.position) / float64(t.attack)
	case t.release > 0 && t.position >= t.total-t.release:
		return float64(t.total-t.position) / float64(t.release)
	}
	return 1
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.position >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.position >= t.total {
			break
		}
		progress := float64(t.position) / float64(t.total)

		var v float64
		for j, l := range t.layers {
			v += l.gain * sample(l.wave, t.phases[j])
			freq := l.from + (l.to-l.from)*progress
			t.phases[j] += freq / float64(t.rate)
			t.phases[j] -= math.Floor(t.phases[j])
		}
		v *= t.envelope()

		samples[i][0] = v
		samples[i][1] = v
		t.position++
		n++
	}
	return n, true
}

func (t *tone) Err() error { return nil }
