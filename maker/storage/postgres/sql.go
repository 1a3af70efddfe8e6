package postgres

import "github.com/FilipeMCruz/playlist-maker/maker/storage"

const ddlBase = `
CREATE TABLE IF NOT EXISTS meta (
  key   TEXT PRIMARY KEY,
  value TEXT
);

CREATE TABLE IF NOT EXISTS tracks (
  path         TEXT PRIMARY KEY,
  title        TEXT,
  artist       TEXT,
  album        TEXT,
  album_artist TEXT,
  year         TEXT,
  genre        TEXT,
  disc         TEXT,
  track        TEXT
);
CREATE INDEX IF NOT EXISTS idx_tracks_artist ON tracks(artist);
CREATE INDEX IF NOT EXISTS idx_tracks_album  ON tracks(album);
`

var SQLTemplates = storage.SQL{
	GetMeta: "SELECT value FROM meta WHERE key = $1",
	SetMeta: "INSERT INTO meta(key,value) VALUES($1,$2) ON CONFLICT(key) DO UPDATE SET value=EXCLUDED.value",
	UpsertTrack: `INSERT INTO tracks(path, title, artist, album, album_artist, year, genre, disc, track)
	        VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
	        ON CONFLICT(path) DO UPDATE
	          SET title=EXCLUDED.title,
	              artist=EXCLUDED.artist,
	              album=EXCLUDED.album,
	              album_artist=EXCLUDED.album_artist,
	              year=EXCLUDED.year,
	              genre=EXCLUDED.genre,
	              disc=EXCLUDED.disc,
	              track=EXCLUDED.track`,
	SelectTracks:       "SELECT path, title, artist, album, album_artist, year, genre, disc, track FROM tracks ORDER BY path",
	SelectPaths:        "SELECT path FROM tracks ORDER BY path",
	CountTracks:        "SELECT COUNT(*) FROM tracks",
	DeleteTracksPrefix: "DELETE FROM tracks WHERE path IN (",
}
