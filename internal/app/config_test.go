package app_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otrctx/internal/app"
	"otrctx/internal/domain"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(app.EnvHome, "")
	t.Setenv(app.EnvLogLevel, "")

	c, err := app.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, app.DefaultConfig(), c)
	assert.Equal(t, ".otrctx", filepath.Base(c.Home))
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("home: /var/lib/otr\nlog_level: warn\nlog_format: json\n"), 0o600))

	t.Setenv(app.EnvHome, "")
	t.Setenv(app.EnvLogLevel, "")
	c, err := app.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, app.Config{Home: "/var/lib/otr", LogLevel: "warn", LogFormat: "json"}, c)

	t.Setenv(app.EnvHome, dir)
	t.Setenv(app.EnvLogLevel, "debug")
	c, err = app.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, dir, c.Home)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv(app.EnvHome, "")
	t.Setenv(app.EnvLogLevel, "")
	dir := t.TempDir()

	_, err := app.LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("log_level: [\n"), 0o600))
	_, err = app.LoadConfig(bad)
	assert.ErrorContains(t, err, "config unmarshal")

	level := filepath.Join(dir, "level.yaml")
	require.NoError(t, os.WriteFile(level, []byte("log_level: loud\n"), 0o600))
	_, err = app.LoadConfig(level)
	assert.ErrorContains(t, err, "loud")

	format := filepath.Join(dir, "format.yaml")
	require.NoError(t, os.WriteFile(format, []byte("log_format: xml\n"), 0o600))
	_, err = app.LoadConfig(format)
	assert.ErrorContains(t, err, "xml")
}

func TestNewWire_PersistsTagsAcrossRuns(t *testing.T) {
	cfg := app.Config{Home: filepath.Join(t.TempDir(), "state"), LogLevel: "debug", LogFormat: "text"}

	w, err := app.NewWire(cfg, io.Discard)
	require.NoError(t, err)
	tag, err := w.Tags.Generate("alice@example.org", "xmpp")
	require.NoError(t, err)

	w2, err := app.NewWire(cfg, io.Discard)
	require.NoError(t, err)
	got, ok := w2.Tags.Lookup("alice@example.org", "xmpp")
	require.True(t, ok)
	assert.Equal(t, tag, got)

	r := w2.NewRegistry()
	c, _, err := r.FindOrCreate("bob", "alice@example.org", "xmpp", domain.InstanceMaster, nil)
	require.NoError(t, err)
	assert.Equal(t, tag, c.OurInstance())
}
