package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/FilipeMCruz/playlist-maker/maker/storage/sqlbuilder"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Meta keys written when a library is created.
const (
	MagicKey      = "playlist_maker_magic"
	MagicValue    = "playlist-maker"
	VersionKey    = "playlist_maker_version"
	SchemaVersion = "1"
)

// ErrNotLibrary is returned when a database does not carry the library marker.
var ErrNotLibrary = errors.New("not a playlist-maker library")

// Adapter abstracts database-specific operations
type Adapter interface {
	Backend() Backend
	PlaceholderStyle() sqlbuilder.PlaceholderStyle
	LibraryID() string

	Connect(ctx context.Context) (*sql.DB, error)
	Close() error

	CreateLibrary(ctx context.Context, db *sql.DB) error
	OpenLibrary(ctx context.Context, db *sql.DB) error

	SQL() SQL
}

// SQL holds prepared SQL templates for common operations
type SQL struct {
	GetMeta string
	SetMeta string

	// UpsertTrack takes the nine track columns in Columns order.
	UpsertTrack  string
	SelectTracks string
	SelectPaths  string
	CountTracks  string
	// DeleteTracksPrefix is completed with a placeholder list and ")".
	DeleteTracksPrefix string
}

// Columns is the column order of the tracks table.
var Columns = []string{"path", "title", "artist", "album", "album_artist", "year", "genre", "disc", "track"}

// WriteMeta stamps db with the library marker and schema version.
func WriteMeta(ctx context.Context, db *sql.DB, sqlt SQL) error {
	if _, err := db.ExecContext(ctx, sqlt.SetMeta, MagicKey, MagicValue); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, sqlt.SetMeta, VersionKey, SchemaVersion)
	return err
}

// CheckMeta verifies the library marker written by WriteMeta.
func CheckMeta(ctx context.Context, db *sql.DB, sqlt SQL) error {
	var magic string
	if err := db.QueryRowContext(ctx, sqlt.GetMeta, MagicKey).Scan(&magic); err != nil {
		return fmt.Errorf("%w: %v", ErrNotLibrary, err)
	}
	if magic != MagicValue {
		return ErrNotLibrary
	}
	var version string
	if err := db.QueryRowContext(ctx, sqlt.GetMeta, VersionKey).Scan(&version); err != nil {
		return err
	}
	if version != SchemaVersion {
		return fmt.Errorf("unsupported library version %q", version)
	}
	return nil
}
