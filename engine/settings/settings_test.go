package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadKeepsDefaultsForAbsentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("width = 1920\nvsync = false\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1920, s.Width)
	assert.False(t, s.Vsync)

	// Everything not in the file stays at its default.
	assert.Equal(t, Default().Height, s.Height)
	assert.Equal(t, Default().Title, s.Title)
	assert.Equal(t, Default().MsaaSamples, s.MsaaSamples)
}

func TestLoadNormalizesNonsenseValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := "width = -5\nmsaa_samples = -2\ndefault_anisotropy = 0\ntitle = \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Width, s.Width)
	assert.Equal(t, 0, s.MsaaSamples)
	assert.Equal(t, 1, s.DefaultAnisotropy)
	assert.Equal(t, Default().Title, s.Title)
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("width = = 3"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")

	want := Default()
	want.Width = 800
	want.Height = 600
	want.Vsync = false
	want.DebugValidation = true
	require.NoError(t, want.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
