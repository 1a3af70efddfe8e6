// Package snapshot reads and writes track metadata snapshots: CSV files
// with the header path,title,artist,album,album_artist,year,genre,disc,track.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

// Header is the column order written by Write.
var Header = []string{"path", "title", "artist", "album", "album_artist", "year", "genre", "disc", "track"}

// Read decodes a snapshot. Columns are matched by header name, so their
// order does not matter; unknown columns are ignored and rows without a
// path are skipped.
func Read(r io.Reader) ([]track.Track, error) {
	var rows []track.Track
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []track.Track{}, nil
		}
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	out := rows[:0]
	for _, t := range rows {
		if t.Path == "" {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// ReadFile decodes the snapshot stored at path.
func ReadFile(path string) ([]track.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Write encodes tracks as a snapshot, header first.
func Write(w io.Writer, tracks []track.Track) error {
	if len(tracks) == 0 {
		_, err := fmt.Fprintln(w, strings.Join(Header, ","))
		return err
	}
	if err := gocsv.Marshal(tracks, w); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// WriteFile writes tracks to path, replacing any existing file.
func WriteFile(path string, tracks []track.Track) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, tracks); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
