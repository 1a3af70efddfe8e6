// Package track defines the metadata record every query is evaluated against.
package track

// Track is the metadata of a single audio file, keyed by Path.
//
// Every optional field uses the empty string for "absent". The struct is
// comparable, so two records are structurally equal exactly when == holds.
type Track struct {
	Path        string `csv:"path" json:"path" yaml:"path"`
	Title       string `csv:"title" json:"title,omitempty" yaml:"title,omitempty"`
	Artist      string `csv:"artist" json:"artist,omitempty" yaml:"artist,omitempty"`
	Album       string `csv:"album" json:"album,omitempty" yaml:"album,omitempty"`
	AlbumArtist string `csv:"album_artist" json:"album_artist,omitempty" yaml:"album_artist,omitempty"`
	Year        string `csv:"year" json:"year,omitempty" yaml:"year,omitempty"`
	Genre       string `csv:"genre" json:"genre,omitempty" yaml:"genre,omitempty"`
	Disc        string `csv:"disc" json:"disc,omitempty" yaml:"disc,omitempty"`
	Track       string `csv:"track" json:"track,omitempty" yaml:"track,omitempty"`
}

// Paths returns the path of every track, in order.
func Paths(tracks []Track) []string {
	out := make([]string, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, t.Path)
	}
	return out
}

// Dedup removes structurally equal duplicates, keeping the first occurrence.
func Dedup(tracks []Track) []Track {
	seen := make(map[Track]struct{}, len(tracks))
	out := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
