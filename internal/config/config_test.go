package config

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, runtime.NumCPU(), cfg.Divisions)
	assert.Equal(t, "balanced", cfg.Split)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte(
		"backend: postgres\npg_dsn: postgres://localhost/music\ndivisions: 3\nsplit: reference\nextensions: [.mp3, .flac]\n"), 0o644))

	t.Setenv("PLAYLIST_MAKER_DIVISIONS", "5")
	t.Setenv("PLAYLIST_MAKER_LISTEN", ":9000")

	cfg, err := Load(New(), file)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Backend)
	assert.Equal(t, "postgres://localhost/music", cfg.PGDSN)
	assert.Equal(t, 5, cfg.Divisions)
	assert.Equal(t, "reference", cfg.Split)
	assert.Equal(t, []string{".mp3", ".flac"}, cfg.Extensions)
	assert.Equal(t, ":9000", cfg.Listen)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PLAYLIST_MAKER_SPLIT", "random")
	_, err := Load(New(), "")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Defaults()
	c.Backend = "redis"
	assert.Error(t, c.Validate())

	c = Defaults()
	c.SQLiteDriver = "sqlite4"
	assert.Error(t, c.Validate())

	assert.NoError(t, Defaults().Validate())
}

func TestWriteYAML(t *testing.T) {
	c := Defaults()
	c.Divisions, c.Workers = 2, 4
	var buf bytes.Buffer
	require.NoError(t, c.WriteYAML(&buf))
	out := buf.String()
	assert.Contains(t, out, "backend: sqlite\n")
	assert.Contains(t, out, "divisions: 2\n")
	assert.Contains(t, out, "split: balanced\n")
	assert.NotContains(t, out, "pg_dsn")

	var back Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, c, back)
}
