// package config loads the file-backed description of a wave grid demo: window, grid, wave, camera, colors and shaders.
// TOML and YAML files are supported and selected by extension. Every field is optional; unset fields keep the values of Default().
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/Carmen-Shannon/wavegrid/engine/solid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned when a config path has an extension other than .toml, .yaml or .yml.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Format identifies the encoding of a config file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Config is the root of a demo description.
type Config struct {
	Window WindowConfig `toml:"window" yaml:"window"`
	Grid   GridConfig   `toml:"grid" yaml:"grid"`
	Wave   WaveConfig   `toml:"wave" yaml:"wave"`
	Camera CameraConfig `toml:"camera" yaml:"camera"`
	Colors ColorConfig  `toml:"colors" yaml:"colors"`
	Shader ShaderConfig `toml:"shader" yaml:"shader"`
}

// WindowConfig describes the window and swapchain.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`

	// PresentMode is "fifo" (vsync) or "immediate".
	PresentMode string `toml:"present_mode" yaml:"present_mode"`
	MSAA        bool   `toml:"msaa" yaml:"msaa"`

	// FrameLimit caps rendered frames per second, 0 means uncapped.
	FrameLimit int `toml:"frame_limit" yaml:"frame_limit"`
}

// GridConfig describes the arrangement of solids.
type GridConfig struct {
	Rows      int         `toml:"rows" yaml:"rows"`
	Columns   int         `toml:"columns" yaml:"columns"`
	Spacing   float32     `toml:"spacing" yaml:"spacing"`
	Size      common.Vec3 `toml:"size" yaml:"size"`
	PhaseStep float32     `toml:"phase_step" yaml:"phase_step"`
	Workers   int         `toml:"workers" yaml:"workers"`

	// Layout is "full", "no_tint" or "minimal".
	Layout string `toml:"layout" yaml:"layout"`
}

// WaveConfig holds the wave parameters fed to the vertex shader. These may be hot-reloaded.
type WaveConfig struct {
	Amplitude float32 `toml:"amplitude" yaml:"amplitude"`
	Frequency float32 `toml:"frequency" yaml:"frequency"`
}

// CameraConfig describes the perspective camera. FOV is in degrees.
type CameraConfig struct {
	Eye    common.Vec3 `toml:"eye" yaml:"eye"`
	Target common.Vec3 `toml:"target" yaml:"target"`
	Up     common.Vec3 `toml:"up" yaml:"up"`
	FOV    float32     `toml:"fov" yaml:"fov"`
	Near   float32     `toml:"near" yaml:"near"`
	Far    float32     `toml:"far" yaml:"far"`
}

// ColorConfig holds face colors, the solid tint and the clear color.
type ColorConfig struct {
	XY    common.Color `toml:"xy" yaml:"xy"`
	XZ    common.Color `toml:"xz" yaml:"xz"`
	YZ    common.Color `toml:"yz" yaml:"yz"`
	Tint  common.Color `toml:"tint" yaml:"tint"`
	Clear common.Color `toml:"clear" yaml:"clear"`
}

// ShaderConfig optionally overrides the embedded wave shaders with files on disk.
type ShaderConfig struct {
	Vertex   string `toml:"vertex" yaml:"vertex"`
	Fragment string `toml:"fragment" yaml:"fragment"`
}

// Default returns the demo configuration: a 20 × 20 grid with spacing 6, a camera at (-50, -50, 50)
// looking at the origin with z up, white background and red/green/blue faces.
//
// Returns:
//   - *Config: a fresh default configuration
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:       "Wavegrid",
			Width:       1280,
			Height:      720,
			PresentMode: "fifo",
			MSAA:        true,
		},
		Grid: GridConfig{
			Rows:      20,
			Columns:   20,
			Spacing:   6,
			Size:      common.Vec3{1, 1, 1},
			PhaseStep: 0.3,
			Layout:    solid.LayoutFull.String(),
		},
		Wave: WaveConfig{
			Amplitude: 2,
			Frequency: 2,
		},
		Camera: CameraConfig{
			Eye:    common.Vec3{-50, -50, 50},
			Target: common.Vec3{0, 0, 0},
			Up:     common.Vec3{0, 0, 1},
			FOV:    45,
			Near:   0.1,
			Far:    1000,
		},
		Colors: ColorConfig{
			XY:    common.ColorRed,
			XZ:    common.ColorGreen,
			YZ:    common.ColorBlue,
			Tint:  common.ColorWhite,
			Clear: common.ColorWhite,
		},
	}
}

// FormatFromPath selects the config format from the file extension.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Format: the detected format
//   - error: ErrUnsupportedFormat if the extension is not recognised
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads the config file at path over the defaults and validates the result.
// Unknown keys are rejected so typos surface as errors rather than silently using defaults.
//
// Parameters:
//   - path: the config file path (.toml, .yaml or .yml)
//
// Returns:
//   - *Config: the loaded configuration
//   - error: an error if the file cannot be read, decoded or validated
func Load(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data of the given format over the defaults and validates the result.
//
// Parameters:
//   - data: the encoded config
//   - format: FormatTOML or FormatYAML
//
// Returns:
//   - *Config: the decoded configuration
//   - error: an error if decoding or validation fails
func Decode(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// an empty document leaves the defaults untouched
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode serializes the config in the given format.
//
// Parameters:
//   - format: FormatTOML or FormatYAML
//
// Returns:
//   - []byte: the encoded config
//   - error: an error if the format is unsupported or encoding fails
func (c *Config) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(c)
	case FormatYAML:
		return yaml.Marshal(c)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Validate checks that the configuration describes a drawable scene.
//
// Returns:
//   - error: every problem found joined into one error, or nil
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	switch c.Window.PresentMode {
	case "fifo", "immediate":
	default:
		errs = append(errs, fmt.Errorf("unknown present mode %q", c.Window.PresentMode))
	}
	if c.Window.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("frame limit must not be negative, got %d", c.Window.FrameLimit))
	}
	if c.Grid.Rows < 0 || c.Grid.Columns < 0 {
		errs = append(errs, fmt.Errorf("grid dimensions must not be negative, got %dx%d", c.Grid.Rows, c.Grid.Columns))
	}
	if _, err := solid.ParseLayout(c.Grid.Layout); err != nil {
		errs = append(errs, err)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov must be within (0, 180) degrees, got %v", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes must satisfy 0 < near < far, got near=%v far=%v", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Eye == c.Camera.Target {
		errs = append(errs, errors.New("camera eye and target must differ"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Layout returns the parsed vertex layout of the grid.
//
// Returns:
//   - solid.Layout: the layout, LayoutFull if the name is empty or unknown
func (c *Config) Layout() solid.Layout {
	layout, _ := solid.ParseLayout(c.Grid.Layout)
	return layout
}

// FaceColors returns the configured face colors keyed by axis pair.
func (c *Config) FaceColors() map[solid.FaceKey]common.Color {
	return map[solid.FaceKey]common.Color{
		solid.FaceXY: c.Colors.XY,
		solid.FaceXZ: c.Colors.XZ,
		solid.FaceYZ: c.Colors.YZ,
	}
}
