package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, 2*time.Second, cfg.Interval)
	assert.Equal(t, 1500*time.Millisecond, cfg.CommandTimeout)
	assert.Equal(t, 20, cfg.HistorySize)
	assert.Equal(t, "synthetic", cfg.Estimation)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.Empty(t, cfg.Interface)
	assert.NoError(t, Validate(cfg))
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
version: 1
interval: 5s
command_timeout: 3s
history_size: 60
interface: wlan1
estimation: unavailable
log:
  level: debug
  file: /tmp/wifimon.log
output:
  color: never
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Interval)
	assert.Equal(t, 3*time.Second, cfg.CommandTimeout)
	assert.Equal(t, 60, cfg.HistorySize)
	assert.Equal(t, "wlan1", cfg.Interface)
	assert.Equal(t, "unavailable", cfg.Estimation)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/wifimon.log", cfg.Log.File)
	assert.Equal(t, "never", cfg.Output.Color)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "interface: wlp2s0\n"))
	require.NoError(t, err)

	assert.Equal(t, "wlp2s0", cfg.Interface)
	assert.Equal(t, DefaultInterval, cfg.Interval)
	assert.Equal(t, DefaultCommandTimeout, cfg.CommandTimeout)
	assert.Equal(t, DefaultHistorySize, cfg.HistorySize)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("WIFIMON_INTERVAL", "10s")
	t.Setenv("WIFIMON_LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, "interval: 5s\n"))
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Interval)
	assert.Equal(t, "warn", cfg.Log.Level)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Interval)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
	}{
		{name: "missing file", missing: true},
		{name: "invalid yaml", content: "interval: [5s\n"},
		{name: "bad duration", content: "interval: soon\n"},
		{name: "timeout longer than interval", content: "interval: 1s\ncommand_timeout: 2s\n"},
		{name: "interval too short", content: "interval: 100ms\ncommand_timeout: 50ms\n"},
		{name: "bad estimation", content: "estimation: dice\n"},
		{name: "bad color", content: "output:\n  color: rainbow\n"},
		{name: "bad level", content: "log:\n  level: loud\n"},
		{name: "zero history", content: "history_size: 0\n"},
		{name: "future version", content: "version: 99\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nope.yaml")
			if !tt.missing {
				path = writeConfig(t, tt.content)
			}

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig), "got %v", err)
		})
	}
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := writeConfig(t, "interval: 3s\n")
		found, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("interval: 3s\n"), 0o644))
		t.Setenv("HOME", t.TempDir())
		testChdir(t, dir)

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, ConfigFileName), found)
	})

	t.Run("global config", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		testChdir(t, t.TempDir())
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		require.NoError(t, os.MkdirAll(filepath.Dir(global), 0o755))
		require.NoError(t, os.WriteFile(global, []byte("interval: 4s\n"), 0o644))

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, global, found)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		testChdir(t, t.TempDir())

		cfg, path, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, DefaultInterval, cfg.Interval)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Interval = 3 * time.Second
	cfg.Interface = "wlan0"
	cfg.Estimation = "unavailable"

	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)
	require.NoError(t, Save(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "interval: 3s")
	assert.Contains(t, string(data), "command_timeout: 1.5s")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveRejectsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CommandTimeout = 5 * time.Second

	path := filepath.Join(t.TempDir(), ConfigFileName)
	assert.Error(t, Save(cfg, path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestValidateHints(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		hint   string
	}{
		{"estimation typo", func(c *Config) { c.Estimation = "synthtic" }, "did you mean 'synthetic'?"},
		{"log level typo", func(c *Config) { c.Log.Level = "eror" }, "did you mean 'error'?"},
		{"color typo", func(c *Config) { c.Output.Color = "nevr" }, "did you mean 'never'?"},
		{"no near match", func(c *Config) { c.Output.Color = "rainbow" }, "use one of: auto, always, never"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.hint)
		})
	}

	cfg := DefaultConfig()
	cfg.Output.Color = "ALWAYS"
	assert.NoError(t, Validate(cfg))
}

// testChdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
