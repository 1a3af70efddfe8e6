package maker

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/FilipeMCruz/playlist-maker/maker/scan"
	"github.com/FilipeMCruz/playlist-maker/maker/snapshot"
	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

// CollectOptions configures CollectTracks.
type CollectOptions struct {
	// Scanner reads directories; nil means a default scanner.
	Scanner *scan.Scanner
	Logger  zerolog.Logger
}

// CollectStats counts where collected tracks came from.
type CollectStats struct {
	Scanned    int
	ScanFailed int
	Decoded    int
	Skipped    int
	Duplicates int
}

// CollectTracks gathers tracks from every input. Directories are scanned
// for audio files, regular files are decoded as snapshots, and inputs that
// do not exist are logged and skipped. Structurally equal records are
// collapsed, keeping the first occurrence.
func CollectTracks(ctx context.Context, inputs []string, opts CollectOptions) ([]track.Track, CollectStats, error) {
	scanner := opts.Scanner
	if scanner == nil {
		scanner = &scan.Scanner{Logger: opts.Logger}
	}

	var (
		all   []track.Track
		stats CollectStats
	)
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				opts.Logger.Warn().Str("input", in).Msg("input does not exist, skipping")
				stats.Skipped++
				continue
			}
			return nil, stats, WrapPath(ErrIO, in, "stat input", err)
		}

		if info.IsDir() {
			found, st, err := scanner.Scan(ctx, in)
			if err != nil {
				return nil, stats, WrapPath(ErrScan, in, "scan directory", err)
			}
			stats.Scanned += st.Read
			stats.ScanFailed += st.Failed
			all = append(all, found...)
			continue
		}

		decoded, err := snapshot.ReadFile(in)
		if err != nil {
			return nil, stats, WrapPath(ErrSnapshot, in, "read snapshot", err)
		}
		stats.Decoded += len(decoded)
		all = append(all, decoded...)
	}

	out := track.Dedup(all)
	stats.Duplicates = len(all) - len(out)
	opts.Logger.Debug().
		Int("scanned", stats.Scanned).
		Int("decoded", stats.Decoded).
		Int("duplicates", stats.Duplicates).
		Int("tracks", len(out)).
		Msg("collected tracks")
	return out, stats, nil
}
