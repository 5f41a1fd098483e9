package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultLimit, cfg.Undo.Limit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Undo.Limit = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLimit)

	cfg = Default()
	cfg.Log.Level = "loud"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLogLevel)
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
[undo]
limit = 25

[log]
level = "DEBUG"
no_color = true
`)
	cfg, err := Parse("test.toml", FormatTOML, data)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Undo.Limit)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.NoColor)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
undo:
  limit: 0
log:
  level: warn
`)
	cfg, err := Parse("test.yaml", FormatYAML, data)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Undo.Limit)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Log.NoColor)
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse("empty.toml", FormatTOML, []byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseIgnoresUnknownKeys(t *testing.T) {
	cfg, err := Parse("x.toml", FormatTOML, []byte("[editor]\ntabSize = 4\n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsInvalidLimit(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"negative toml", FormatTOML, "[undo]\nlimit = -5\n"},
		{"fraction toml", FormatTOML, "[undo]\nlimit = 2.5\n"},
		{"string toml", FormatTOML, "[undo]\nlimit = \"ten\"\n"},
		{"bool yaml", FormatYAML, "undo:\n  limit: true\n"},
		{"negative yaml", FormatYAML, "undo:\n  limit: -1\n"},
		{"list yaml", FormatYAML, "undo:\n  limit: [1, 2]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad", tt.format, []byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidLimit)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "undo.limit", verr.Field)
		})
	}
}

func TestParseAcceptsWholeFloatAndNumericString(t *testing.T) {
	cfg, err := Parse("f.toml", FormatTOML, []byte("[undo]\nlimit = 10.0\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Undo.Limit)

	cfg, err = Parse("s.yaml", FormatYAML, []byte("undo:\n  limit: \"12\"\n"))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Undo.Limit)
}

func TestParseRejectsBadLogSettings(t *testing.T) {
	_, err := Parse("l.toml", FormatTOML, []byte("[log]\nlevel = 3\n"))
	assert.ErrorIs(t, err, ErrInvalidLogLevel)

	_, err = Parse("l.toml", FormatTOML, []byte("[log]\nlevel = \"chatty\"\n"))
	assert.ErrorIs(t, err, ErrInvalidLogLevel)

	_, err = Parse("l.toml", FormatTOML, []byte("[log]\nno_color = \"yes\"\n"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "log.no_color", verr.Field)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("broken.toml", FormatTOML, []byte("[undo\nlimit = "))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "broken.toml", perr.Path)
	assert.Contains(t, perr.Error(), "broken.toml")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "undostack.toml")
	require.NoError(t, os.WriteFile(path, []byte("[undo]\nlimit = 7\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Undo.Limit)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load("settings.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{"a.toml", FormatTOML},
		{"a.TOML", FormatTOML},
		{"a.yaml", FormatYAML},
		{"dir/a.yml", FormatYAML},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, tt.path)
	}
}
