package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/toxichemicals/GO/pooltable/scene"
)

// Config holds asset locations, window settings and scene tuning.
type Config struct {
	// Assets
	AssetDir    string `json:"asset_dir"`
	MeshPattern string `json:"mesh_pattern"`
	BallCount   int    `json:"ball_count"`

	// Window
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`

	MaxTextureSize int    `json:"max_texture_size"`
	ScreenshotDir  string `json:"screenshot_dir"`

	// Scene
	BallSpeed         float32 `json:"ball_speed"`
	CollisionDistance float32 `json:"collision_distance"`
	SpawnRange        float32 `json:"spawn_range"`
	BoundsX           float32 `json:"bounds_x"`
	BoundsY           float32 `json:"bounds_y"`
	Seed              int64   `json:"seed"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	AssetDir      string
	BallCount     int
	Width, Height int
	ScreenshotDir string
	Seed          int64
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI overrides and fills empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.BallCount > 0 {
		c.BallCount = flags.BallCount
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.ScreenshotDir != "" {
		c.ScreenshotDir = flags.ScreenshotDir
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}

	if c.AssetDir == "" {
		c.AssetDir = "PoolBalls/"
	}
	// mesh paths are built by prefix concatenation
	if !strings.HasSuffix(c.AssetDir, "/") {
		c.AssetDir += "/"
	}
	if c.MeshPattern == "" {
		c.MeshPattern = "Ball%d.obj"
	}
	if c.BallCount <= 0 {
		c.BallCount = 15
	}

	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.Title == "" {
		c.Title = "Pool Table"
	}
	if c.MaxTextureSize <= 0 {
		c.MaxTextureSize = 2048
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "."
	}

	if c.BallSpeed <= 0 {
		c.BallSpeed = scene.BallSpeed
	}
	if c.CollisionDistance <= 0 {
		c.CollisionDistance = scene.CollisionDistance
	}
	if c.SpawnRange <= 0 {
		c.SpawnRange = scene.SpawnRange
	}
	if c.BoundsX <= 0 {
		c.BoundsX = scene.TableBounds.MaxX
	}
	if c.BoundsY <= 0 {
		c.BoundsY = scene.TableBounds.MaxY
	}
}

// SceneOptions converts the resolved config into manager options.
func (c Config) SceneOptions() scene.Options {
	opts := scene.DefaultOptions()
	opts.MeshPattern = c.MeshPattern
	opts.Count = c.BallCount
	opts.Speed = c.BallSpeed
	opts.CollisionDistance = c.CollisionDistance
	opts.Bounds = scene.Bounds{MinX: -c.BoundsX, MaxX: c.BoundsX, MinY: -c.BoundsY, MaxY: c.BoundsY}
	opts.SpawnBounds = scene.Bounds{MinX: -c.SpawnRange, MaxX: c.SpawnRange, MinY: -c.SpawnRange, MaxY: c.SpawnRange}
	opts.MaxTextureSize = c.MaxTextureSize
	opts.Seed = c.Seed
	return opts
}
