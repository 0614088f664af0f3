package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all game configuration values
type Config struct {
	Display DisplayConfig  `yaml:"display"`
	Raycast RaycastConfig  `yaml:"raycast"`
	World   WorldConfig    `yaml:"world"`
	Player  PlayerConfig   `yaml:"player"`
	Colors  ColorsConfig   `yaml:"colors"`
	Minimap MinimapConfig  `yaml:"minimap"`
	Voice   VoiceConfig    `yaml:"voice"`
	Audio   AudioConfig    `yaml:"audio"`
	Spells  SpellsConfig   `yaml:"spells"`
	Enemies EnemiesConfig  `yaml:"enemies"`
	Phases  []PhaseConfig  `yaml:"phases"`
	Storage StorageConfig  `yaml:"storage"`
	Log     LogConfig      `yaml:"log"`
	Term    TerminalConfig `yaml:"terminal"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	FPS          int    `yaml:"fps"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
}

// RaycastConfig is shared by the ray caster and the view projector. Both read
// it through the same Config value so the ray-to-column mapping cannot drift.
type RaycastConfig struct {
	FOVDegrees float64 `yaml:"fov_degrees"`
	NumRays    int     `yaml:"num_rays"`
	MaxDepth   float64 `yaml:"max_depth"`
	Workers    int     `yaml:"workers"` // 0 or 1 casts serially
}

type WorldConfig struct {
	TileSize int    `yaml:"tile_size"`
	Arena    string `yaml:"arena"` // empty selects the embedded reference arena
}

type PlayerConfig struct {
	StartX           float64 `yaml:"start_x"`
	StartY           float64 `yaml:"start_y"`
	StartAngle       float64 `yaml:"start_angle"`
	Speed            float64 `yaml:"speed"`
	RotSpeed         float64 `yaml:"rot_speed"`
	CollisionRadius  float64 `yaml:"collision_radius"`
	MaxHealth        int     `yaml:"max_health"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
}

type ColorsConfig struct {
	Sky            [3]int         `yaml:"sky"`
	Floor          [3]int         `yaml:"floor"`
	Walls          map[int][3]int `yaml:"walls"`
	WallDefault    [3]int         `yaml:"wall_default"`
	MinimapEmpty   [3]int         `yaml:"minimap_empty"`
	MinimapUnknown [3]int         `yaml:"minimap_unknown"`
	BrightnessMin  float64        `yaml:"brightness_min"`
}

type MinimapConfig struct {
	Enabled bool `yaml:"enabled"`
	Scale   int  `yaml:"scale"`
	X       int  `yaml:"x"`
	Y       int  `yaml:"y"`
	Alpha   int  `yaml:"alpha"`
}

type VoiceConfig struct {
	Enabled        bool            `yaml:"enabled"`
	Source         string          `yaml:"source"` // "-" reads stdin, otherwise a file or FIFO path
	Language       string          `yaml:"language"`
	TimeoutSeconds float64         `yaml:"timeout_seconds"`
	QueueSize      int             `yaml:"queue_size"`
	StopTimeoutMS  int             `yaml:"stop_timeout_ms"`
	Keywords       []KeywordConfig `yaml:"keywords"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0 mutes, 1 is full scale
}

// KeywordConfig maps a spoken phrase to a spell id. Order matters: the first
// phrase contained in an utterance wins.
type KeywordConfig struct {
	Phrase string `yaml:"phrase"`
	Spell  string `yaml:"spell"`
}

type SpellsConfig struct {
	Fireball  SpellConfig `yaml:"fireball"`
	Lightning SpellConfig `yaml:"lightning"`
}

type SpellConfig struct {
	Damage int     `yaml:"damage"`
	Speed  float64 `yaml:"speed"`
}

type EnemiesConfig struct {
	DetectionRange float64                `yaml:"detection_range"`
	AttackRange    float64                `yaml:"attack_range"`
	AttackCooldown float64                `yaml:"attack_cooldown"`
	Radius         float64                `yaml:"radius"`
	Kinds          map[string]EnemyConfig `yaml:"kinds"`
}

type EnemyConfig struct {
	Health int     `yaml:"health"`
	Damage int     `yaml:"damage"`
	Speed  float64 `yaml:"speed"`
}

type PhaseConfig struct {
	Name          string        `yaml:"name"`
	Objective     string        `yaml:"objective"`
	RequiredSpell string        `yaml:"required_spell"` // empty accepts any spell
	Targets       int           `yaml:"targets"`
	Spawns        []SpawnConfig `yaml:"spawns"`
}

// SpawnConfig places an enemy at the center of a tile.
type SpawnConfig struct {
	Kind string `yaml:"kind"`
	Col  int    `yaml:"col"`
	Row  int    `yaml:"row"`
}

type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type TerminalConfig struct {
	FrameMS int    `yaml:"frame_ms"`
	Ramp    string `yaml:"ramp"` // wall glyphs from near to far
}

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Load reads the embedded defaults and overlays the YAML file at filename on
// top of them. An empty filename returns the defaults unchanged. Fields absent
// from the file keep their default value.
func Load(filename string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if filename == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

// MustLoad loads the configuration and panics on error
func MustLoad(filename string) *Config {
	cfg, err := Load(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

// Validate reports the first value that would break the renderer or the
// simulation.
func (c *Config) Validate() error {
	switch {
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.Display.ScreenWidth, c.Display.ScreenHeight)
	case c.Raycast.NumRays <= 0:
		return fmt.Errorf("%w: num_rays must be positive, got %d", ErrInvalidConfig, c.Raycast.NumRays)
	case c.Raycast.FOVDegrees <= 0 || c.Raycast.FOVDegrees >= 180:
		return fmt.Errorf("%w: fov_degrees must be in (0, 180), got %g", ErrInvalidConfig, c.Raycast.FOVDegrees)
	case c.Raycast.MaxDepth <= 0:
		return fmt.Errorf("%w: max_depth must be positive, got %g", ErrInvalidConfig, c.Raycast.MaxDepth)
	case c.World.TileSize <= 0:
		return fmt.Errorf("%w: tile_size must be positive, got %d", ErrInvalidConfig, c.World.TileSize)
	case c.Player.MaxHealth <= 0:
		return fmt.Errorf("%w: max_health must be positive, got %d", ErrInvalidConfig, c.Player.MaxHealth)
	case c.Voice.QueueSize <= 0:
		return fmt.Errorf("%w: voice queue_size must be positive, got %d", ErrInvalidConfig, c.Voice.QueueSize)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio volume must be in [0, 1], got %g", ErrInvalidConfig, c.Audio.Volume)
	case c.Colors.BrightnessMin < 0 || c.Colors.BrightnessMin > 1:
		return fmt.Errorf("%w: brightness_min must be in [0, 1], got %g", ErrInvalidConfig, c.Colors.BrightnessMin)
	}
	for i, phase := range c.Phases {
		if phase.Targets <= 0 {
			return fmt.Errorf("%w: phase %d needs at least one target", ErrInvalidConfig, i+1)
		}
		if len(phase.Spawns) == 0 {
			return fmt.Errorf("%w: phase %d spawns no enemies", ErrInvalidConfig, i+1)
		}
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetTileSize() float64 {
	return float64(c.World.TileSize)
}

// FOV returns the horizontal field of view in radians.
func (c *Config) FOV() float64 {
	return c.Raycast.FOVDegrees * math.Pi / 180
}

func (c *Config) HalfFOV() float64 {
	return c.FOV() / 2
}

// DeltaAngle is the angular step between adjacent rays.
func (c *Config) DeltaAngle() float64 {
	return c.FOV() / float64(c.Raycast.NumRays)
}

func (c *Config) VoiceTimeout() time.Duration {
	if c.Voice.TimeoutSeconds <= 0 {
		return 3 * time.Second // Default fallback
	}
	return time.Duration(c.Voice.TimeoutSeconds * float64(time.Second))
}

func (c *Config) VoiceStopTimeout() time.Duration {
	if c.Voice.StopTimeoutMS <= 0 {
		return 500 * time.Millisecond // Default fallback
	}
	return time.Duration(c.Voice.StopTimeoutMS) * time.Millisecond
}

func (c *Config) TerminalFrame() time.Duration {
	if c.Term.FrameMS <= 0 {
		return 16 * time.Millisecond
	}
	return time.Duration(c.Term.FrameMS) * time.Millisecond
}

// StoragePath expands a leading ~ in the configured database path.
func (c *Config) StoragePath() string {
	path := c.Storage.Path
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetEnemyConfig returns the stats for an enemy kind name.
func (c *Config) GetEnemyConfig(kind string) (EnemyConfig, bool) {
	ec, ok := c.Enemies.Kinds[kind]
	return ec, ok
}
