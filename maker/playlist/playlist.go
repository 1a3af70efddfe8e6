// Package playlist holds named track lists referenced by InPlaylist and
// reads them from playlist files.
package playlist

import "github.com/FilipeMCruz/playlist-maker/maker/track"

// Playlist is a named, ordered list of track paths.
//
// A Playlist is read-only after New and may be shared between goroutines.
type Playlist struct {
	Name  string
	Paths []string

	members map[string]struct{}
}

// New builds a playlist and its membership set.
func New(name string, paths []string) *Playlist {
	p := &Playlist{
		Name:    name,
		Paths:   append([]string(nil), paths...),
		members: make(map[string]struct{}, len(paths)),
	}
	for _, path := range paths {
		p.members[path] = struct{}{}
	}
	return p
}

// Len returns the number of entries, duplicates included.
func (p *Playlist) Len() int { return len(p.Paths) }

// Contains reports whether path is listed. Comparison is exact.
func (p *Playlist) Contains(path string) bool {
	_, ok := p.members[path]
	return ok
}

// Filter keeps the tracks whose path is listed, in input order.
func (p *Playlist) Filter(tracks []track.Track) []track.Track {
	out := make([]track.Track, 0)
	for _, t := range tracks {
		if p.Contains(t.Path) {
			out = append(out, t)
		}
	}
	return out
}

// Table is the ordered set of playlists a query can reference.
type Table []*Playlist

// Lookup returns the first playlist named name.
func (t Table) Lookup(name string) (*Playlist, bool) {
	for _, p := range t {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Names lists playlist names in table order.
func (t Table) Names() []string {
	out := make([]string, 0, len(t))
	for _, p := range t {
		out = append(out, p.Name)
	}
	return out
}
