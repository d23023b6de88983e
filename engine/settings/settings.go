// Package settings loads and saves engine configuration as TOML. The
// zero-config path is first-class: Load on a missing file hands back the
// defaults, and absent keys keep their default values.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/prism3d/prism-go/common"
)

// AppSettings holds the host-application configuration consumed by the
// window and renderer setup.
type AppSettings struct {
	// Title is the window title.
	Title string `toml:"title"`

	// Width and Height are the initial window dimensions in screen
	// coordinates.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Vsync synchronizes buffer swaps to the display refresh rate.
	Vsync bool `toml:"vsync"`

	// MsaaSamples is the multisample count requested for the default
	// framebuffer. Zero disables multisampling.
	MsaaSamples int `toml:"msaa_samples"`

	// GammaCorrection enables sRGB encoding of the main framebuffer when
	// the hardware supports it.
	GammaCorrection bool `toml:"gamma_correction"`

	// DebugValidation enables the renderer's per-call error checks and
	// NaN/Inf uniform validation. Expensive; development only.
	DebugValidation bool `toml:"debug_validation"`

	// DefaultAnisotropy is the anisotropic filter level applied to textures
	// that do not carry their own. Must be at least 1.
	DefaultAnisotropy int `toml:"default_anisotropy"`
}

// Default returns the settings used when no configuration file exists.
//
// Returns:
//   - *AppSettings: the default configuration
func Default() *AppSettings {
	return &AppSettings{
		Title:             "prism3d",
		Width:             1280,
		Height:            720,
		Vsync:             true,
		MsaaSamples:       4,
		GammaCorrection:   true,
		DebugValidation:   false,
		DefaultAnisotropy: 1,
	}
}

// Load reads settings from a TOML file. A missing file is not an error: the
// defaults come back so a fresh checkout runs without any configuration.
// Keys absent from the file keep their default values.
//
// Parameters:
//   - path: the TOML file path
//
// Returns:
//   - *AppSettings: the loaded configuration
//   - error: an error if the file exists but cannot be read or parsed
func Load(path string) (*AppSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	s := Default()
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	s.normalize()
	return s, nil
}

// Save writes the settings to a TOML file, creating or truncating it.
//
// Parameters:
//   - path: the TOML file path
//
// Returns:
//   - error: an error if marshalling or writing fails
func (s *AppSettings) Save(path string) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", path, err)
	}
	return nil
}

// normalize replaces values that cannot be meant literally with their
// defaults. Booleans pass through untouched since false is always a valid
// choice.
func (s *AppSettings) normalize() {
	d := Default()
	s.Title = common.Coalesce(s.Title, d.Title)
	s.Width = common.Coalesce(s.Width, d.Width)
	s.Height = common.Coalesce(s.Height, d.Height)
	s.DefaultAnisotropy = common.Coalesce(s.DefaultAnisotropy, d.DefaultAnisotropy)
	if s.Width < 0 {
		s.Width = d.Width
	}
	if s.Height < 0 {
		s.Height = d.Height
	}
	if s.MsaaSamples < 0 {
		s.MsaaSamples = 0
	}
	if s.DefaultAnisotropy < 1 {
		s.DefaultAnisotropy = 1
	}
}
