package tag

import (
	"strings"

	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

// Type identifies the track field a tag match reads.
type Type int

const (
	Path Type = iota
	Title
	Artist
	Album
	AlbumArtist
	Date
	Genre
	Disc
	Track
)

func (t Type) String() string {
	switch t {
	case Path:
		return "path"
	case Title:
		return "title"
	case Artist:
		return "artist"
	case Album:
		return "album"
	case AlbumArtist:
		return "albumartist"
	case Date:
		return "date"
	case Genre:
		return "genre"
	case Disc:
		return "disc"
	case Track:
		return "track"
	default:
		return "unknown"
	}
}

// dateBound classifies the year pseudo-tags.
type dateBound int

const (
	noBound dateBound = iota
	before
	after
)

func boundOf(name string) dateBound {
	switch name {
	case "beforeyear", "beforedate":
		return before
	case "afteryear", "afterdate":
		return after
	default:
		return noBound
	}
}

// Resolve maps a tag name (any case) and search mode to a Type.
//
// The before/after year pseudo-tags resolve to Date only under Literal.
// Unknown names and disallowed combinations report ok=false.
func Resolve(name string, mode SearchMode) (Type, bool) {
	t, err := resolve(strings.ToLower(name), mode)
	return t, err == nil
}

func resolve(name string, mode SearchMode) (Type, error) {
	switch name {
	case "path":
		return Path, nil
	case "title":
		return Title, nil
	case "artist":
		return Artist, nil
	case "album":
		return Album, nil
	case "albumartist":
		return AlbumArtist, nil
	case "date", "year":
		return Date, nil
	case "beforedate", "afterdate", "beforeyear", "afteryear":
		if mode != Literal {
			return 0, ErrModeNotAllowed
		}
		return Date, nil
	case "genre":
		return Genre, nil
	case "disc", "discnumber":
		return Disc, nil
	case "track", "tracknumber":
		return Track, nil
	default:
		return 0, ErrUnknownTag
	}
}

// Field reads the value of t off a track. Path is always present; every
// other field is absent when empty.
func (t Type) Field(tr track.Track) (string, bool) {
	var v string
	switch t {
	case Path:
		return tr.Path, true
	case Title:
		v = tr.Title
	case Artist:
		v = tr.Artist
	case Album:
		v = tr.Album
	case AlbumArtist:
		v = tr.AlbumArtist
	case Date:
		v = tr.Year
	case Genre:
		v = tr.Genre
	case Disc:
		v = tr.Disc
	case Track:
		v = tr.Track
	default:
		return "", false
	}
	return v, v != ""
}
