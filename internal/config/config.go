package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"startpage/internal/kv"
)

type Config struct {
	Backend   string
	StorePath string
	LogLevel  string
	LogJSON   bool
	Addr      string

	pathSet bool
}

// Load reads STARTPAGE_* environment variables and an optional startpage.yaml
// from the config directory. Command-line flags are applied on top by the
// caller.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STARTPAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(filepath.Join(ConfigDir(), appName+".yaml"))

	v.SetDefault("store.backend", "yaml")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.json", false)
	v.SetDefault("http.addr", "127.0.0.1:8787")

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		Backend:   strings.ToLower(v.GetString("store.backend")),
		StorePath: v.GetString("store.path"),
		LogLevel:  v.GetString("log.level"),
		LogJSON:   v.GetBool("log.json"),
		Addr:      v.GetString("http.addr"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.StorePath == "" {
		cfg.StorePath = DefaultStorePath(cfg.Backend)
		return cfg, nil
	}

	// viper leaves ~ alone.
	path, err := ExpandPath(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("store.path: %w", err)
	}
	cfg.StorePath = path
	cfg.pathSet = true
	return cfg, nil
}

// UseBackend switches to kind. A store path that was only the default follows
// the new backend; a configured one is kept.
func (c *Config) UseBackend(kind string) {
	c.Backend = strings.ToLower(kind)
	if !c.pathSet {
		c.StorePath = DefaultStorePath(c.Backend)
	}
}

func (c *Config) Validate() error {
	kinds := kv.Kinds()
	if !slices.Contains(kinds, kv.Kind(c.Backend)) {
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = string(k)
		}
		return fmt.Errorf("STARTPAGE_STORE_BACKEND must be one of %s, got %q",
			strings.Join(names, ", "), c.Backend)
	}
	return nil
}
