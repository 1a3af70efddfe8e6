// Package config loads playlist-maker settings from defaults, an optional
// config file, PLAYLIST_MAKER_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/FilipeMCruz/playlist-maker/maker/partition"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PLAYLIST_MAKER"

// Config is the effective configuration.
type Config struct {
	Backend      string   `mapstructure:"backend" yaml:"backend"`
	SQLitePath   string   `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	SQLiteDriver string   `mapstructure:"sqlite_driver" yaml:"sqlite_driver"`
	PGDSN        string   `mapstructure:"pg_dsn" yaml:"pg_dsn,omitempty"`
	PGSchema     string   `mapstructure:"pg_schema" yaml:"pg_schema,omitempty"`
	Divisions    int      `mapstructure:"divisions" yaml:"divisions"`
	Workers      int      `mapstructure:"workers" yaml:"workers"`
	Split        string   `mapstructure:"split" yaml:"split"`
	Extensions   []string `mapstructure:"extensions" yaml:"extensions"`
	Listen       string   `mapstructure:"listen" yaml:"listen"`
	LogLevel     string   `mapstructure:"log_level" yaml:"log_level,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Backend:      "sqlite",
		SQLitePath:   ".",
		SQLiteDriver: "sqlite",
		Divisions:    runtime.NumCPU(),
		Workers:      runtime.NumCPU(),
		Split:        string(partition.SplitBalanced),
		Extensions:   []string{".mp3"},
		Listen:       ":8080",
	}
}

// New returns a viper instance with defaults and environment lookup set up.
// Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("backend", d.Backend)
	v.SetDefault("sqlite_path", d.SQLitePath)
	v.SetDefault("sqlite_driver", d.SQLiteDriver)
	v.SetDefault("pg_dsn", d.PGDSN)
	v.SetDefault("pg_schema", d.PGSchema)
	v.SetDefault("divisions", d.Divisions)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("split", d.Split)
	v.SetDefault("extensions", d.Extensions)
	v.SetDefault("listen", d.Listen)
	v.SetDefault("log_level", d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads the config file, if any, and decodes the merged settings.
// An explicit file must exist; otherwise playlist-maker.yaml is looked up
// in the working directory and in $HOME/.config/playlist-maker.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("playlist-maker")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "playlist-maker"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown backend %q (want sqlite or postgres)", c.Backend)
	}
	switch c.SQLiteDriver {
	case "sqlite", "sqlite3":
	default:
		return fmt.Errorf("unknown sqlite driver %q (want sqlite or sqlite3)", c.SQLiteDriver)
	}
	if _, err := partition.ParseSplit(c.Split); err != nil {
		return err
	}
	return nil
}

// WriteYAML encodes c as YAML.
func (c Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
