package cliutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/FilipeMCruz/playlist-maker/internal/config"
	"github.com/FilipeMCruz/playlist-maker/maker"
	"github.com/FilipeMCruz/playlist-maker/maker/storage"
	"github.com/FilipeMCruz/playlist-maker/maker/storage/postgres"
	"github.com/FilipeMCruz/playlist-maker/maker/storage/sqlite"
)

// ResolveLibraryRef transforms the user-provided --library value into a backend-specific reference.
//
//   - sqlite: if name contains a path separator or ends with .db, treat as explicit path.
//     else: <SQLitePath>/<name>.db
//   - postgres: the schema, which is --pg-schema when set and the name otherwise.
func ResolveLibraryRef(cfg config.Config, name string) string {
	switch storage.Backend(strings.ToLower(cfg.Backend)) {
	case storage.BackendPostgres:
		if cfg.PGSchema != "" {
			return cfg.PGSchema
		}
		return name
	default:
		if strings.Contains(name, string(filepath.Separator)) || strings.HasSuffix(name, ".db") {
			return name
		}
		return filepath.Join(cfg.SQLitePath, name+".db")
	}
}

// NewAdapter builds the storage adapter for the named library.
func NewAdapter(cfg config.Config, name string) (storage.Adapter, error) {
	if name == "" {
		return nil, maker.New(maker.ErrConfig, "missing --library")
	}
	ref := ResolveLibraryRef(cfg, name)
	switch storage.Backend(strings.ToLower(cfg.Backend)) {
	case storage.BackendSQLite:
		return sqlite.NewWithDriver(ref, cfg.SQLiteDriver), nil
	case storage.BackendPostgres:
		if cfg.PGDSN == "" {
			return nil, maker.New(maker.ErrConfig, "postgres backend requires --pg-dsn")
		}
		if !postgres.ValidSchema(ref) {
			return nil, maker.New(maker.ErrConfig, fmt.Sprintf("invalid postgres schema name %q", ref))
		}
		return postgres.New(cfg.PGDSN, ref), nil
	default:
		return nil, maker.New(maker.ErrConfig, fmt.Sprintf("unknown backend %q", cfg.Backend))
	}
}

// OpenLibrary opens the named library, creating it first when create is set.
func OpenLibrary(ctx context.Context, cfg config.Config, name string, create bool) (*maker.Library, error) {
	adapter, err := NewAdapter(cfg, name)
	if err != nil {
		return nil, err
	}
	if create {
		return maker.CreateLibrary(ctx, adapter)
	}
	if a, ok := adapter.(*sqlite.Adapter); ok {
		if _, err := os.Stat(a.Path); err != nil {
			return nil, maker.NotFoundError("library " + a.Path)
		}
	}
	return maker.OpenLibrary(ctx, adapter)
}
