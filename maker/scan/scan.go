// Package scan walks directory trees and extracts track metadata from the
// tags embedded in audio files.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	audiotag "github.com/dhowden/tag"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

// DefaultExtensions are scanned when Scanner.Extensions is empty.
var DefaultExtensions = []string{".mp3"}

// ReadFunc extracts the metadata of one file.
type ReadFunc func(path string) (track.Track, error)

// Scanner finds audio files under a set of roots and reads their tags.
type Scanner struct {
	// Extensions selects files by extension, case-insensitively.
	Extensions []string
	// Workers bounds concurrent file reads. Values below 1 mean GOMAXPROCS.
	Workers int
	Logger  zerolog.Logger
	// Read overrides ReadFile.
	Read ReadFunc
}

// Stats summarizes a scan.
type Stats struct {
	Files  int
	Read   int
	Failed int
}

// Scan walks every root and returns the tracks it could read, sorted by
// path. Hidden files and directories are skipped. Files whose tags cannot
// be read are logged and counted in Stats.Failed; only a root that cannot
// be walked is an error.
func (s *Scanner) Scan(ctx context.Context, roots ...string) ([]track.Track, Stats, error) {
	var files []string
	for _, root := range roots {
		found, err := s.walk(root)
		if err != nil {
			return nil, Stats{}, err
		}
		files = append(files, found...)
	}

	read := s.Read
	if read == nil {
		read = ReadFile
	}
	workers := s.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]track.Track, len(files))
	ok := make([]bool, len(files))
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := read(path)
			if err != nil {
				failed.Add(1)
				s.Logger.Debug().Err(err).Str("path", path).Msg("skipping unreadable file")
				return nil
			}
			results[i], ok[i] = t, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}

	out := make([]track.Track, 0, len(files))
	for i, t := range results {
		if ok[i] {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	stats := Stats{Files: len(files), Read: len(out), Failed: int(failed.Load())}
	s.Logger.Debug().
		Strs("roots", roots).
		Int("files", stats.Files).
		Int("failed", stats.Failed).
		Msg("scan finished")
	return out, stats, nil
}

func (s *Scanner) walk(root string) ([]string, error) {
	exts := s.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.Logger.Warn().Err(err).Str("path", path).Msg("cannot walk entry")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && hasExtension(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

func hasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// ReadFile reads the embedded tags of the file at path.
func ReadFile(path string) (track.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return track.Track{}, err
	}
	defer f.Close()

	m, err := audiotag.ReadFrom(f)
	if err != nil {
		return track.Track{}, fmt.Errorf("read tags %s: %w", path, err)
	}
	return FromMetadata(path, m), nil
}

// FromMetadata converts decoded tags into a track. Text is normalized to
// NFC; zero years and numbers are treated as absent.
func FromMetadata(path string, m audiotag.Metadata) track.Track {
	trackNo, _ := m.Track()
	discNo, _ := m.Disc()
	return track.Track{
		Path:        path,
		Title:       clean(m.Title()),
		Artist:      clean(m.Artist()),
		Album:       clean(m.Album()),
		AlbumArtist: clean(m.AlbumArtist()),
		Year:        number(m.Year()),
		Genre:       clean(m.Genre()),
		Disc:        number(discNo),
		Track:       number(trackNo),
	}
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(strings.TrimRight(s, "\x00")))
}

func number(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
