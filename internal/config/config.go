// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/meshview/internal/viewer/transform"
)

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig     `yaml:"window"`
	View        ViewConfig       `yaml:"view"`
	Controls    ControlsConfig   `yaml:"controls"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// ViewConfig holds projection and clear color settings.
type ViewConfig struct {
	FOVDegrees float32    `yaml:"fov_degrees"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	ClearColor [3]float32 `yaml:"clear_color"`
}

// ControlsConfig holds per-frame steps and key bindings.
// Keys maps action names to SDL key names ("Up", "W", "F12", ...).
type ControlsConfig struct {
	RotateStep float32           `yaml:"rotate_step"`
	MoveStep   float32           `yaml:"move_step"`
	ScaleStep  float32           `yaml:"scale_step"`
	BlendStep  float32           `yaml:"blend_step"`
	Keys       map[string]string `yaml:"keys"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	steps := transform.DefaultSteps()
	return &Config{
		Window: WindowConfig{
			Title:      "meshview",
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
		},
		View: ViewConfig{
			FOVDegrees: 45,
			Near:       0.1,
			Far:        100,
			ClearColor: [3]float32{0.0, 0.1, 0.2},
		},
		Controls: ControlsConfig{
			RotateStep: steps.Rotate,
			MoveStep:   steps.Move,
			ScaleStep:  steps.Scale,
			BlendStep:  steps.Blend,
			Keys:       transform.DefaultBindings(),
		},
		Screenshots: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "meshview",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Steps returns the controls as reducer steps.
func (c *Config) Steps() transform.Steps {
	return transform.Steps{
		Rotate: c.Controls.RotateStep,
		Move:   c.Controls.MoveStep,
		Scale:  c.Controls.ScaleStep,
		Blend:  c.Controls.BlendStep,
	}
}

// Validate checks settings that would otherwise produce undefined math.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.View.FOVDegrees <= 0 || c.View.FOVDegrees >= 180 {
		return fmt.Errorf("fov_degrees must be in (0, 180), got %v", c.View.FOVDegrees)
	}
	if c.View.Near <= 0 || c.View.Far <= c.View.Near {
		return fmt.Errorf("need 0 < near < far, got near=%v far=%v", c.View.Near, c.View.Far)
	}
	for name := range c.Controls.Keys {
		if _, err := transform.ParseAction(name); err != nil {
			return fmt.Errorf("controls.keys: %w", err)
		}
	}
	return nil
}
