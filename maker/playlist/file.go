package playlist

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for playlist files that are neither
// M3U nor WPL.
var ErrUnsupportedFormat = errors.New("unsupported playlist format")

// Load reads a playlist file, choosing the format by extension.
func Load(path string) (*Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".m3u", ".m3u8":
		return ReadM3U(name, f)
	case ".wpl":
		return ReadWPL(name, f)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// LoadAll loads every file into a table, keeping argument order.
func LoadAll(paths []string) (Table, error) {
	table := make(Table, 0, len(paths))
	for _, path := range paths {
		p, err := Load(path)
		if err != nil {
			return nil, err
		}
		table = append(table, p)
	}
	return table, nil
}

// ReadM3U reads newline-delimited paths. Comment and directive lines
// (starting with '#') and blank lines are skipped.
func ReadM3U(name string, r io.Reader) (*Playlist, error) {
	var paths []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read m3u %s: %w", name, err)
	}
	return New(name, paths), nil
}

// WPL structure of a Windows Media Player playlist
type wplDoc struct {
	XMLName xml.Name `xml:"smil"`
	Head    struct {
		Title string `xml:"title"`
	} `xml:"head"`
	Body struct {
		Seq struct {
			Media []struct {
				Src string `xml:"src,attr"`
			} `xml:"media"`
		} `xml:"seq"`
	} `xml:"body"`
}

// ReadWPL reads a WPL document. The <title> element, when present,
// overrides name.
func ReadWPL(name string, r io.Reader) (*Playlist, error) {
	var doc wplDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse wpl %s: %w", name, err)
	}
	if title := strings.TrimSpace(doc.Head.Title); title != "" {
		name = title
	}
	paths := make([]string, 0, len(doc.Body.Seq.Media))
	for _, m := range doc.Body.Seq.Media {
		if m.Src != "" {
			paths = append(paths, m.Src)
		}
	}
	return New(name, paths), nil
}
