package cliopt

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/FilipeMCruz/playlist-maker/internal/config"
)

// GlobalOptions are parsed once at the CLI root and shared by subcommands.
// Storage settings are not held here: their flags are bound to the viper
// instance so a flag overrides PLAYLIST_MAKER_* variables and the config file.
//
// NOTE: This is a separate package to avoid import cycles between the root
// command and per-command helpers.
type GlobalOptions struct {
	ConfigFile string
	LogJSON    bool
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"backend":       "backend",
	"sqlite-path":   "sqlite_path",
	"sqlite-driver": "sqlite_driver",
	"pg-dsn":        "pg_dsn",
	"pg-schema":     "pg_schema",
	"log-level":     "log_level",
}

func BindGlobalFlags(fs *pflag.FlagSet, g *GlobalOptions) {
	d := config.Defaults()

	fs.StringVar(&g.ConfigFile, "config", "", "config file (default: ./playlist-maker.yaml or ~/.config/playlist-maker/playlist-maker.yaml)")
	fs.BoolVar(&g.LogJSON, "log-json", false, "log one JSON object per line instead of console output")
	fs.String("log-level", d.LogLevel, "log level: trace|debug|info|warn|error")

	fs.String("backend", d.Backend, "library backend: sqlite|postgres")
	fs.String("sqlite-path", d.SQLitePath, "sqlite directory or explicit .db file path")
	fs.String("sqlite-driver", d.SQLiteDriver, "sqlite driver: sqlite (pure Go) or sqlite3 (cgo)")
	fs.String("pg-dsn", d.PGDSN, "postgres DSN")
	fs.String("pg-schema", d.PGSchema, "postgres schema (default: the library name)")
}

// BindViper registers the global flags of fs as the top-precedence source of
// their config keys.
func BindViper(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}
