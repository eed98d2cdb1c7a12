package config_test

import (
	"os"
	"path/filepath"
	"startpage/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStorePath(t *testing.T) {
	t.Run("respects XDG_DATA_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/custom/data")

		assert.Equal(t, "/custom/data/startpage/store.yaml", config.DefaultStorePath("yaml"))
	})

	t.Run("falls back to ~/.local/share when XDG_DATA_HOME is empty", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "")

		got := config.DefaultStorePath("yaml")

		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "share", "startpage", "store.yaml"), got)
	})

	t.Run("sqlite backend gets its own file", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/custom/data")

		assert.Equal(t, "/custom/data/startpage/store.db", config.DefaultStorePath("sqlite"))
	})

	t.Run("handles XDG_DATA_HOME with trailing slash", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/custom/data/")

		assert.Equal(t, "/custom/data/startpage/store.yaml", config.DefaultStorePath("yaml"))
	})
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	assert.Equal(t, "/custom/config/startpage", config.ConfigDir())
}

func TestExpandPath(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		home     string
		expected func(home, cwd string) string
	}{
		{
			name:     "tilde expansion with subpath",
			input:    "~/links.json",
			home:     "/home/test",
			expected: func(home, _ string) string { return filepath.Join(home, "links.json") },
		},
		{
			name:     "tilde only",
			input:    "~",
			home:     "/home/test",
			expected: func(home, _ string) string { return home },
		},
		{
			name:     "relative path becomes absolute",
			input:    "backups/start.json",
			expected: func(_, cwd string) string { return filepath.Join(cwd, "backups/start.json") },
		},
		{
			name:     "absolute path unchanged",
			input:    "/absolute/path",
			expected: func(_, _ string) string { return "/absolute/path" },
		},
		{
			name:     "tilde in middle not expanded",
			input:    "foo/~/bar",
			expected: func(_, cwd string) string { return filepath.Join(cwd, "foo/~/bar") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.home != "" {
				t.Setenv("HOME", tt.home)
			}

			got, err := config.ExpandPath(tt.input)

			require.NoError(t, err)
			home, _ := os.UserHomeDir()
			assert.Equal(t, tt.expected(home, cwd), got)
		})
	}
}

func TestShortenPath(t *testing.T) {
	t.Setenv("HOME", "/home/test")

	assert.Equal(t, "~/.local/share/startpage/store.yaml", config.ShortenPath("/home/test/.local/share/startpage/store.yaml"))
	assert.Equal(t, "~", config.ShortenPath("/home/test"))
	assert.Equal(t, "/home/testing/x", config.ShortenPath("/home/testing/x"))
	assert.Equal(t, "/srv/store.db", config.ShortenPath("/srv/store.db"))
}
