package maker

import (
	"context"
	"database/sql"

	"github.com/FilipeMCruz/playlist-maker/maker/storage"
	"github.com/FilipeMCruz/playlist-maker/maker/storage/sqlbuilder"
	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

// deleteBatch bounds the number of placeholders in one DELETE statement.
const deleteBatch = 500

// Library is a persistent store of track metadata
type Library struct {
	adapter storage.Adapter
	db      *sql.DB
}

// CreateLibrary creates the library tables if needed and opens the library.
// Creating an existing library is not an error.
func CreateLibrary(ctx context.Context, adapter storage.Adapter) (*Library, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}
	if err := adapter.CreateLibrary(ctx, db); err != nil {
		db.Close()
		return nil, Wrap(ErrSQL, "create library", err)
	}
	return &Library{adapter: adapter, db: db}, nil
}

// OpenLibrary opens an existing library
func OpenLibrary(ctx context.Context, adapter storage.Adapter) (*Library, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}
	if err := adapter.OpenLibrary(ctx, db); err != nil {
		db.Close()
		return nil, WrapPath(ErrSchema, adapter.LibraryID(), "open library", err)
	}
	return &Library{adapter: adapter, db: db}, nil
}

// Close closes the library
func (l *Library) Close() error {
	if l.db != nil {
		l.db.Close()
	}
	return l.adapter.Close()
}

// ID identifies the underlying database.
func (l *Library) ID() string {
	return l.adapter.LibraryID()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// PutTracks inserts or replaces tracks, keyed by path, in one transaction.
func (l *Library) PutTracks(ctx context.Context, tracks []track.Track) (int, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, Wrap(ErrSQL, "begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, l.adapter.SQL().UpsertTrack)
	if err != nil {
		return 0, Wrap(ErrSQL, "prepare upsert", err)
	}
	defer stmt.Close()

	for _, t := range tracks {
		_, err := stmt.ExecContext(ctx,
			t.Path, nullable(t.Title), nullable(t.Artist), nullable(t.Album), nullable(t.AlbumArtist),
			nullable(t.Year), nullable(t.Genre), nullable(t.Disc), nullable(t.Track))
		if err != nil {
			return 0, WrapPath(ErrSQL, t.Path, "upsert track", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, Wrap(ErrSQL, "commit", err)
	}
	return len(tracks), nil
}

// Tracks returns every stored track ordered by path.
func (l *Library) Tracks(ctx context.Context) ([]track.Track, error) {
	rows, err := l.db.QueryContext(ctx, l.adapter.SQL().SelectTracks)
	if err != nil {
		return nil, Wrap(ErrSQL, "select tracks", err)
	}
	defer rows.Close()

	out := make([]track.Track, 0)
	for rows.Next() {
		var (
			t    track.Track
			cols [8]sql.NullString
		)
		if err := rows.Scan(&t.Path, &cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5], &cols[6], &cols[7]); err != nil {
			return nil, Wrap(ErrSQL, "scan track", err)
		}
		t.Title = cols[0].String
		t.Artist = cols[1].String
		t.Album = cols[2].String
		t.AlbumArtist = cols[3].String
		t.Year = cols[4].String
		t.Genre = cols[5].String
		t.Disc = cols[6].String
		t.Track = cols[7].String
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, Wrap(ErrSQL, "iterate tracks", err)
	}
	return out, nil
}

// Paths returns every stored path in order.
func (l *Library) Paths(ctx context.Context) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, l.adapter.SQL().SelectPaths)
	if err != nil {
		return nil, Wrap(ErrSQL, "select paths", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, Wrap(ErrSQL, "scan path", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, Wrap(ErrSQL, "iterate paths", err)
	}
	return out, nil
}

// Count returns the number of stored tracks.
func (l *Library) Count(ctx context.Context) (int, error) {
	var n int
	if err := l.db.QueryRowContext(ctx, l.adapter.SQL().CountTracks).Scan(&n); err != nil {
		return 0, Wrap(ErrSQL, "count tracks", err)
	}
	return n, nil
}

// DeletePaths removes the tracks stored under paths and returns how many
// rows were deleted.
func (l *Library) DeletePaths(ctx context.Context, paths []string) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, Wrap(ErrSQL, "begin transaction", err)
	}
	defer tx.Rollback()

	var deleted int64
	for start := 0; start < len(paths); start += deleteBatch {
		end := min(start+deleteBatch, len(paths))
		b := sqlbuilder.New(l.adapter.PlaceholderStyle())
		q := l.adapter.SQL().DeleteTracksPrefix + b.List(paths[start:end]) + ")"
		res, err := tx.ExecContext(ctx, q, b.Args()...)
		if err != nil {
			return 0, Wrap(ErrSQL, "delete tracks", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, Wrap(ErrSQL, "rows affected", err)
		}
		deleted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, Wrap(ErrSQL, "commit", err)
	}
	return int(deleted), nil
}

// Prune deletes every stored track whose path is not in keep.
func (l *Library) Prune(ctx context.Context, keep []track.Track) (int, error) {
	stored, err := l.Paths(ctx)
	if err != nil {
		return 0, err
	}
	wanted := make(map[string]struct{}, len(keep))
	for _, t := range keep {
		wanted[t.Path] = struct{}{}
	}
	var stale []string
	for _, p := range stored {
		if _, ok := wanted[p]; !ok {
			stale = append(stale, p)
		}
	}
	return l.DeletePaths(ctx, stale)
}
