package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"magearena/internal/arena"
	"magearena/internal/audio"
	"magearena/internal/config"
	"magearena/internal/storage"
	"magearena/internal/threading"
	"magearena/internal/voice"
	"magearena/internal/world"
)

// app holds everything a frontend needs to run a session.
type app struct {
	cfg       *config.Config
	logger    *log.Logger
	mapData   *world.MapData
	threading *threading.ThreadingComponents
	session   *arena.Session

	store    *storage.Store
	listener *voice.Listener
	voiceSrc io.Closer
	sounds   *audio.SoundManager
}

type appOptions struct {
	// stdinTaken disables a voice source of "-" when the frontend owns stdin.
	stdinTaken bool
	// headless skips storage, voice and audio.
	headless bool
}

func loadConfig() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	level := flagLogLevel
	if level == "" {
		level = cfg.Log.Level
	}
	logger, err := newLogger(level)
	if err != nil {
		return nil, nil, err
	}
	if flagWorkers >= 0 {
		cfg.Raycast.Workers = flagWorkers
	}
	return cfg, logger, nil
}

func newApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}

	md, err := world.NewMapLoader(cfg.GetTileSize()).Load(cfg.World.Arena)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		mapData:   md,
		threading: threading.NewThreadingComponents(cfg.Raycast.Workers),
	}

	sessOpts := arena.Options{
		Logger: logger,
		Rand:   newRand(flagSeed),
		Fan:    a.threading.Fan(),
		Spawn:  arena.SpawnFromMap(md),
	}

	if !opts.headless && cfg.Storage.Enabled {
		if err := a.openStore(); err != nil {
			logger.Warn("run history disabled", "error", err)
		} else {
			sessOpts.OnRunEnd = a.recordRun
		}
	}

	if !opts.headless && cfg.Voice.Enabled {
		q, err := a.startVoice(ctx, opts.stdinTaken)
		if err != nil {
			logger.Warn("voice disabled", "error", err)
		} else if q != nil {
			sessOpts.Voice = q
		}
	}

	if !opts.headless && cfg.Audio.Enabled {
		a.sounds = audio.NewSoundManager(cfg.Audio.Volume)
		if err := a.sounds.Initialize(); err != nil {
			logger.Warn("no audio device, effects muted", "error", err)
		}
		sessOpts.Sounds = a.sounds
	}

	a.session, err = arena.New(cfg, md.Grid, sessOpts)
	if err != nil {
		a.Close()
		return nil, err
	}
	logger.Info("arena ready",
		"cols", md.Grid.Width(),
		"rows", md.Grid.Height(),
		"workers", cfg.Raycast.Workers)
	return a, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>32|1))
}

func (a *app) openStore() error {
	store, err := storage.Open(a.cfg.StoragePath())
	if err != nil {
		return err
	}
	a.store = store
	return nil
}

func (a *app) recordRun(sum arena.Summary) {
	id, err := a.store.RecordRun(storage.Run{
		StartedAt:  sum.StartedAt,
		EndedAt:    sum.EndedAt,
		Outcome:    sum.Outcome,
		Phase:      sum.Phase,
		Kills:      sum.Kills,
		SpellsCast: sum.SpellsCast,
		Health:     sum.Health,
	})
	if err != nil {
		a.logger.Error("failed to record run", "error", err)
		return
	}
	a.logger.Debug("run recorded", "id", id, "outcome", sum.Outcome)
}

// startVoice connects the configured transcript source to a spell queue. It
// returns a nil queue when the source is stdin and stdin is taken.
func (a *app) startVoice(ctx context.Context, stdinTaken bool) (*voice.Queue, error) {
	var src io.Reader
	switch a.cfg.Voice.Source {
	case "", "-":
		if stdinTaken {
			a.logger.Info("voice reads stdin, which the terminal frontend owns; voice disabled")
			return nil, nil
		}
		src = os.Stdin
	default:
		f, err := os.Open(a.cfg.Voice.Source)
		if err != nil {
			return nil, fmt.Errorf("voice source: %w", err)
		}
		src, a.voiceSrc = f, f
	}

	q := voice.NewQueue(a.cfg.Voice.QueueSize)
	matcher := voice.NewMatcher(voice.KeywordsFromConfig(a.cfg.Voice.Keywords))
	a.listener = voice.NewListener(voice.NewLineRecognizer(src), matcher, q, voice.OptionsFromConfig(a.cfg, a.logger))
	a.listener.Start(ctx)
	return q, nil
}

// Close stops voice and audio, closes the run history and releases workers.
func (a *app) Close() {
	if a.sounds != nil {
		a.sounds.Cleanup()
	}
	if a.listener != nil {
		if err := a.listener.Stop(); err != nil {
			a.logger.Warn("voice listener", "error", err)
		}
		heard, matched, rejected := a.listener.Stats()
		a.logger.Debug("voice stats", "heard", heard, "matched", matched, "rejected", rejected)
	}
	if a.voiceSrc != nil {
		a.voiceSrc.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("closing run history", "error", err)
		}
	}
	a.threading.Shutdown()
}
