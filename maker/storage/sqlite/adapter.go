package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/FilipeMCruz/playlist-maker/maker/storage"
	"github.com/FilipeMCruz/playlist-maker/maker/storage/sqlbuilder"
)

// Driver names accepted by NewWithDriver.
const (
	DriverModernc = "sqlite"  // modernc.org/sqlite, pure Go
	DriverCGo     = "sqlite3" // github.com/mattn/go-sqlite3
)

type Adapter struct {
	Path       string
	DriverName string
}

func New(path string) *Adapter {
	return &Adapter{Path: path, DriverName: DriverModernc}
}

func NewWithDriver(path, driver string) *Adapter {
	if driver == "" {
		driver = DriverModernc
	}
	return &Adapter{Path: path, DriverName: driver}
}

func (a *Adapter) Backend() storage.Backend {
	return storage.BackendSQLite
}

func (a *Adapter) PlaceholderStyle() sqlbuilder.PlaceholderStyle {
	return sqlbuilder.PlaceholderQuestion
}

func (a *Adapter) LibraryID() string {
	return a.Path
}

// dsn appends the busy timeout in the syntax of the selected driver.
func (a *Adapter) dsn() string {
	params := "_pragma=busy_timeout(5000)"
	if a.DriverName == DriverCGo {
		params = "_busy_timeout=5000"
	}
	if strings.Contains(a.Path, "?") {
		return a.Path + "&" + params
	}
	return a.Path + "?" + params
}

func (a *Adapter) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(a.DriverName, a.dsn())
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) SQL() storage.SQL {
	return SQLTemplates
}

func (a *Adapter) CreateLibrary(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, ddlBase); err != nil {
		return err
	}
	_, _ = db.ExecContext(ctx, "PRAGMA journal_mode=WAL;")
	_, _ = db.ExecContext(ctx, "PRAGMA synchronous=NORMAL;")

	return storage.WriteMeta(ctx, db, a.SQL())
}

func (a *Adapter) OpenLibrary(ctx context.Context, db *sql.DB) error {
	return storage.CheckMeta(ctx, db, a.SQL())
}
