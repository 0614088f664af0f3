// Package audio synthesizes the arena's sound effects and plays them through
// the system speaker.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Effect names a gameplay sound.
type Effect int

const (
	EffectFireball Effect = iota
	EffectLightning
	EffectFizzle // wrong spell or nothing to hit
	EffectHit
	EffectDeath
	numEffects
)

func (e Effect) String() string {
	switch e {
	case EffectFireball:
		return "fireball"
	case EffectLightning:
		return "lightning"
	case EffectFizzle:
		return "fizzle"
	case EffectHit:
		return "hit"
	case EffectDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Player plays effects without blocking the caller.
type Player interface {
	Play(e Effect)
}

// SoundManager mixes effects onto the speaker. Until Initialize succeeds,
// Play only counts requests.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      [numEffects]int
}

// NewSoundManager creates a manager with volume in [0, 1].
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker. It fails on machines without an audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play starts e on the mixer.
func (sm *SoundManager) Play(e Effect) {
	if e < 0 || e >= numEffects {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.played[e]++
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(sm.stream(e))
	speaker.Unlock()
}

// Played returns how many times e was requested.
func (sm *SoundManager) Played(e Effect) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if e < 0 || e >= numEffects {
		return 0
	}
	return sm.played[e]
}

// Cleanup silences everything still playing.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// stream builds a fresh streamer for e at the manager's volume.
func (sm *SoundManager) stream(e Effect) beep.Streamer {
	return &effects.Volume{
		Streamer: effectTone(e),
		Base:     2,
		Volume:   math.Log2(math.Max(sm.volume, 1e-6)),
		Silent:   sm.volume <= 0,
	}
}

func effectTone(e Effect) *tone {
	ms := time.Millisecond
	switch e {
	case EffectFireball:
		// roaring downward sweep
		return newTone(sampleRate, 350*ms, 20*ms, 150*ms,
			layer{wave: WaveSaw, from: 420, to: 110, gain: 0.5},
			layer{wave: WaveNoise, gain: 0.3})
	case EffectLightning:
		return newTone(sampleRate, 220*ms, 2*ms, 120*ms,
			layer{wave: WaveNoise, gain: 0.6},
			layer{wave: WaveSquare, from: 1200, to: 700, gain: 0.2})
	case EffectFizzle:
		return newTone(sampleRate, 150*ms, 5*ms, 40*ms,
			layer{wave: WaveSquare, from: 120, to: 120, gain: 0.4})
	case EffectHit:
		return newTone(sampleRate, 100*ms, 2*ms, 60*ms,
			layer{wave: WaveSine, from: 220, to: 140, gain: 0.8})
	default:
		return newTone(sampleRate, 500*ms, 10*ms, 250*ms,
			layer{wave: WaveSaw, from: 300, to: 55, gain: 0.6},
			layer{wave: WaveSine, from: 150, to: 40, gain: 0.3})
	}
}
