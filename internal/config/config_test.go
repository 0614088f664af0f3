package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigMatchesReferenceConstants(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.GetScreenWidth())
	assert.Equal(t, 720, cfg.GetScreenHeight())
	assert.Equal(t, 60, cfg.Display.FPS)
	assert.Equal(t, 120, cfg.Raycast.NumRays)
	assert.Equal(t, 800.0, cfg.Raycast.MaxDepth)
	assert.Equal(t, 64.0, cfg.GetTileSize())
	assert.InDelta(t, math.Pi/3, cfg.FOV(), 1e-12)
	assert.InDelta(t, math.Pi/6, cfg.HalfFOV(), 1e-12)
	assert.InDelta(t, (math.Pi/3)/120, cfg.DeltaAngle(), 1e-15)

	assert.Equal(t, 2.0, cfg.Player.Speed)
	assert.Equal(t, 0.05, cfg.Player.RotSpeed)
	assert.Equal(t, 20.0, cfg.Player.CollisionRadius)
	assert.Equal(t, 100, cfg.Player.MaxHealth)

	assert.Equal(t, [3]int{50, 50, 100}, cfg.Colors.Sky)
	assert.Equal(t, [3]int{30, 30, 30}, cfg.Colors.Floor)
	assert.Equal(t, [3]int{150, 75, 0}, cfg.Colors.Walls[2])
	assert.Equal(t, 5, cfg.Minimap.Scale)
	assert.Equal(t, 200, cfg.Minimap.Alpha)

	assert.Equal(t, "es-ES", cfg.Voice.Language)
	assert.Equal(t, 3*time.Second, cfg.VoiceTimeout())
	require.Len(t, cfg.Voice.Keywords, 5)
	assert.Equal(t, "bola de fuego", cfg.Voice.Keywords[0].Phrase)
	assert.Equal(t, 0.7, cfg.Audio.Volume)

	require.Len(t, cfg.Phases, 3)
	assert.Equal(t, "Destrucción", cfg.Phases[0].Name)
	assert.Equal(t, 5, cfg.Phases[1].Targets)
	assert.Equal(t, "", cfg.Phases[2].RequiredSpell)
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)

	a.Colors.Walls[1] = [3]int{1, 2, 3}
	a.Raycast.NumRays = 7

	assert.Equal(t, [3]int{100, 100, 100}, b.Colors.Walls[1])
	assert.Equal(t, 120, b.Raycast.NumRays)
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
raycast:
  num_rays: 320
colors:
  walls:
    4: [10, 20, 30]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	if cfg.Raycast.NumRays != 320 {
		t.Errorf("Expected num_rays 320, got %d", cfg.Raycast.NumRays)
	}
	if cfg.Raycast.MaxDepth != 800 {
		t.Errorf("Expected max_depth to keep default 800, got %g", cfg.Raycast.MaxDepth)
	}
	assert.Equal(t, [3]int{10, 20, 30}, cfg.Colors.Walls[4])
	assert.Equal(t, [3]int{0, 100, 150}, cfg.Colors.Walls[3], "default wall colors survive a partial override")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"zero rays":     "raycast:\n  num_rays: 0\n",
		"wide fov":      "raycast:\n  fov_degrees: 180\n",
		"zero tile":     "world:\n  tile_size: 0\n",
		"no depth":      "raycast:\n  max_depth: -1\n",
		"empty phase":   "phases:\n  - name: x\n    targets: 0\n",
		"no queue room": "voice:\n  queue_size: 0\n",
		"loud audio":    "audio:\n  volume: 1.5\n",
		"bright floor":  "colors:\n  brightness_min: 2\n",
		"no spawns":     "phases:\n  - name: x\n    targets: 3\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestLoadMissingAndMalformedFiles(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("raycast: [unclosed"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestMustLoadPanicsOnError(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected MustLoad to panic for a missing file")
		}
	}()
	MustLoad(filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestStoragePathExpandsHome(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, ".magearena", "runs.db"), cfg.StoragePath())

	cfg.Storage.Path = "/tmp/runs.db"
	assert.Equal(t, "/tmp/runs.db", cfg.StoragePath())
}

func TestDurationFallbacks(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 3*time.Second, cfg.VoiceTimeout())
	assert.Equal(t, 500*time.Millisecond, cfg.VoiceStopTimeout())
	assert.Equal(t, 16*time.Millisecond, cfg.TerminalFrame())
}
