// Package config loads the scene configuration from config/scene.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"scrollscene/internal/page"
)

// DefaultPath is the config file path, relative to the process working directory.
const DefaultPath = "config/scene.yaml"

// Shapes the primitive builder knows.
const (
	ShapeTorus  = "torus"
	ShapeCube   = "cube"
	ShapeSphere = "sphere"
)

// Window is the raylib window setup.
type Window struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	Resizable  bool   `yaml:"resizable"`
	TargetFPS  int    `yaml:"target_fps"`
}

// Camera is the perspective camera.
type Camera struct {
	Fovy float32 `yaml:"fovy"`
	Z    float32 `yaml:"z"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// Scroll tunes wheel handling and page scrolling.
type Scroll struct {
	Debounce time.Duration `yaml:"debounce"`
	Nudge    float32       `yaml:"nudge"`
	Smooth   time.Duration `yaml:"smooth"`
	// WheelScale converts one raylib wheel notch to a browser-style deltaY.
	WheelScale float32 `yaml:"wheel_scale"`
}

// Scene tunes the background and the object animations.
type Scene struct {
	Background string `yaml:"background,omitempty"`
	// BackgroundBlur is a gaussian radius in pixels, BackgroundDim a brightness
	// change in [-1, 1].
	BackgroundBlur float64       `yaml:"background_blur,omitempty"`
	BackgroundDim  float64       `yaml:"background_dim,omitempty"`
	Spin           float32       `yaml:"spin"`
	SwapScale      float32       `yaml:"swap_scale"`
	SwapDuration   time.Duration `yaml:"swap_duration"`
}

// Model is the model loaded at startup. Source is a path, an http(s) URL, or a zip bundle.
type Model struct {
	Source   string  `yaml:"source"`
	Scale    float32 `yaml:"scale"`
	CacheDir string  `yaml:"cache_dir"`
}

// ObjectDef describes one pooled display object.
type ObjectDef struct {
	Name    string  `yaml:"name"`
	Shape   string  `yaml:"shape"`
	Size    float32 `yaml:"size,omitempty"`
	Radius  float32 `yaml:"radius,omitempty"`
	Tube    float32 `yaml:"tube,omitempty"`
	Color   string  `yaml:"color,omitempty"`
	Texture string  `yaml:"texture,omitempty"`
}

// Style is the page look: a CSS file for the sections and an optional font family
// looked up in the system font directories.
type Style struct {
	Stylesheet string `yaml:"stylesheet,omitempty"`
	Font       string `yaml:"font,omitempty"`
}

// Debug toggles the overlays.
type Debug struct {
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	ShowState    bool `yaml:"show_state"`
}

// Log configures logging.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// Config is the whole file.
type Config struct {
	Window   Window         `yaml:"window"`
	Camera   Camera         `yaml:"camera"`
	Scroll   Scroll         `yaml:"scroll"`
	Scene    Scene          `yaml:"scene"`
	Model    Model          `yaml:"model"`
	Objects  []ObjectDef    `yaml:"objects"`
	Sections []page.Section `yaml:"sections"`
	Style    Style          `yaml:"style"`
	Debug    Debug          `yaml:"debug"`
	Log      Log            `yaml:"log"`
}

// Default returns the stock scene: a ring, a cube and a textured earth, four sections.
func Default() Config {
	return Config{
		Window: Window{
			Title:     "scrollscene",
			Width:     1280,
			Height:    720,
			Resizable: true,
			TargetFPS: 60,
		},
		Camera: Camera{Fovy: 75, Z: 25, Near: 0.1, Far: 1000},
		Scroll: Scroll{
			Debounce:   100 * time.Millisecond,
			Nudge:      10,
			Smooth:     600 * time.Millisecond,
			WheelScale: 100,
		},
		Scene: Scene{
			Background:    "assets/textures/background.jpg",
			BackgroundDim: -0.3,
			Spin:          0.005,
			SwapScale:     1.25,
			SwapDuration:  900 * time.Millisecond,
		},
		Model: Model{
			Source:   "assets/models/eagle/source/eagle.glb",
			Scale:    8,
			CacheDir: "cache",
		},
		Objects: []ObjectDef{
			{Name: "ring", Shape: ShapeTorus, Radius: 10, Tube: 3, Color: "#FF6347"},
			{Name: "cube", Shape: ShapeCube, Size: 10, Color: "#0000FF"},
			{Name: "earth", Shape: ShapeSphere, Radius: 8, Texture: "assets/textures/earth_albedo.jpg"},
		},
		Sections: []page.Section{
			{ID: "section1", Title: "Hello", Body: "Scroll to meet the shapes."},
			{ID: "section2", Title: "About", Body: "A ring, a cube and a small planet."},
			{ID: "section3", Title: "Work", Body: "Everything here is drawn in real time."},
			{ID: "section4", Title: "Contact", Body: "Scroll up to go back."},
		},
		Style: Style{Stylesheet: "assets/page.css"},
		Debug: Debug{ShowState: true},
		Log:   Log{Level: "info", File: "logs/scene.txt"},
	}
}

// Load reads the config at path on top of Default(). A missing file is not an
// error; a malformed or invalid one is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every problem in cfg.
func (c Config) Validate() error {
	var errs []error
	if len(c.Objects) == 0 {
		errs = append(errs, errors.New("objects: at least one object is required"))
	}
	for i, o := range c.Objects {
		switch o.Shape {
		case ShapeTorus, ShapeCube, ShapeSphere:
		default:
			errs = append(errs, fmt.Errorf("objects[%d]: unknown shape %q", i, o.Shape))
		}
		if o.Color != "" {
			if _, err := ParseColor(o.Color); err != nil {
				errs = append(errs, fmt.Errorf("objects[%d]: %w", i, err))
			}
		}
	}
	if c.Scroll.Debounce <= 0 {
		errs = append(errs, errors.New("scroll.debounce must be positive"))
	}
	if c.Scroll.Smooth < 0 {
		errs = append(errs, errors.New("scroll.smooth must not be negative"))
	}
	if c.Model.Scale <= 0 {
		errs = append(errs, errors.New("model.scale must be positive"))
	}
	if c.Scene.BackgroundBlur < 0 {
		errs = append(errs, errors.New("scene.background_blur must not be negative"))
	}
	if c.Scene.BackgroundDim < -1 || c.Scene.BackgroundDim > 1 {
		errs = append(errs, errors.New("scene.background_dim must be in [-1, 1]"))
	}
	if c.Camera.Fovy <= 0 || c.Camera.Fovy >= 180 {
		errs = append(errs, fmt.Errorf("camera.fovy %v out of range", c.Camera.Fovy))
	}
	return errors.Join(errs...)
}

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// ParseColor parses "#RRGGBB" or "0xRRGGBB".
func ParseColor(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "#"), "0x")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("color %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
