// Package config loads render settings from a JSON file and CLI flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidBackground is returned for background strings not of the form "R,G,B".
var ErrInvalidBackground = errors.New("background must be R,G,B with values 0-255")

// Config holds all configurable render settings.
type Config struct {
	// Surface
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	PixelSize  int    `json:"pixel_size"`
	Background string `json:"background"`

	// Animation
	FPS    int `json:"fps"`
	Frames int `json:"frames"`

	// Scene
	Model     string  `json:"model"`
	Shade     float64 `json:"shade"`
	Wireframe bool    `json:"wireframe"`

	// Output
	Output   string `json:"output"`
	LogLevel string `json:"log_level"`
}

// Defaults applied by Resolve to fields left unset.
const (
	DefaultWidth      = 320
	DefaultHeight     = 240
	DefaultPixelSize  = 1
	DefaultBackground = "0,0,0"
	DefaultFPS        = 30
	DefaultFrames     = 1
	DefaultShade      = 0.75
	DefaultOutput     = "frame-%04d.png"
	DefaultLogLevel   = "info"
)

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

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width      int
	Height     int
	PixelSize  int
	Background string
	FPS        int
	Frames     int
	Model      string
	Shade      float64
	Wireframe  bool
	Output     string
	LogLevel   string
}

// Resolve applies flag overrides, then fills any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.PixelSize > 0 {
		c.PixelSize = flags.PixelSize
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Model != "" {
		c.Model = flags.Model
	}
	if flags.Shade > 0 {
		c.Shade = flags.Shade
	}
	if flags.Wireframe {
		c.Wireframe = true
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.PixelSize <= 0 {
		c.PixelSize = DefaultPixelSize
	}
	if c.Background == "" {
		c.Background = DefaultBackground
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	if c.Frames <= 0 {
		c.Frames = DefaultFrames
	}
	if c.Shade <= 0 {
		c.Shade = DefaultShade
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate reports settings that cannot be rendered.
func (c *Config) Validate() error {
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if c.Shade > 1 {
		return fmt.Errorf("config: shade %v exceeds 1", c.Shade)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// BackgroundColor parses Background as an opaque color.
func (c *Config) BackgroundColor() (color.RGBA, error) {
	parts := strings.Split(c.Background, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("config: %q: %w", c.Background, ErrInvalidBackground)
	}

	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("config: %q: %w", c.Background, ErrInvalidBackground)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}

// Level parses LogLevel into a slog level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log level: %w", err)
	}
	return l, nil
}
