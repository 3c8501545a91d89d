// Package cliconfig loads configuration for the rgbim CLI from file and
// environment, with priority Env > File > Default.
package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces the CLI's environment variables, e.g.
// RGBIM_BACKEND_BASE_URL.
const EnvPrefix = "RGBIM_"

// Config is the CLI configuration.
type Config struct {
	Backend BackendConfig `koanf:"backend"`
	Storage StorageConfig `koanf:"storage"`
	Log     LogConfig     `koanf:"log"`
}

type BackendConfig struct {
	BaseURL string `koanf:"base_url"`
	Timeout string `koanf:"timeout"`
}

type StorageConfig struct {
	// Dir holds the local session database. Defaults under the
	// user config dir.
	Dir string `koanf:"dir"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// Default returns the configuration used when no file or environment
// overrides exist.
func Default() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:5000",
			Timeout: "30s",
		},
		Storage: StorageConfig{
			Dir: defaultStorageDir(),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rgbim", "cli.yaml")
}

func defaultStorageDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "rgbim-session")
	}
	return filepath.Join(dir, "rgbim", "session")
}

// Load reads the config file (when it exists) and the environment over the
// defaults. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path == "" {
		path = DefaultConfigPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return cfg, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	// RGBIM_BACKEND_BASE_URL -> backend.base_url. Only the first underscore
	// per section separates; the rest stay, so base_url survives.
	envTransformer := func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		for _, section := range []string{"backend_", "storage_", "log_"} {
			if strings.HasPrefix(s, section) {
				return strings.TrimSuffix(section, "_") + "." + strings.TrimPrefix(s, section)
			}
		}
		return strings.ReplaceAll(s, "_", ".")
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformer), nil); err != nil {
		return cfg, fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
