package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/FilipeMCruz/playlist-maker/internal/cliutil"
	"github.com/FilipeMCruz/playlist-maker/internal/metrics"
	"github.com/FilipeMCruz/playlist-maker/maker"
	"github.com/FilipeMCruz/playlist-maker/maker/partition"
	"github.com/FilipeMCruz/playlist-maker/maker/playlist"
	"github.com/FilipeMCruz/playlist-maker/maker/scan"
	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

// evalFlags are the partitioning flags shared by query and serve.
type evalFlags struct {
	divisions int
	workers   int
	split     string
}

func (f *evalFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.divisions, "divisions", 0, "number of partitions (default: config divisions)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "concurrent evaluations and tag reads (default: config workers)")
	cmd.Flags().StringVar(&f.split, "split", "", "partitioning: balanced|reference (default: config split)")
}

// driver resolves the partition driver; flags set on the command line
// override the configuration.
func (f *evalFlags) driver(cmd *cobra.Command, opts *RootOptions, log zerolog.Logger) (partition.Driver, error) {
	d := partition.Driver{
		Divisions: opts.Config.Divisions,
		Workers:   opts.Config.Workers,
		Logger:    log,
	}
	if cmd.Flags().Changed("divisions") {
		d.Divisions = f.divisions
	}
	if cmd.Flags().Changed("workers") {
		d.Workers = f.workers
	}
	split := opts.Config.Split
	if cmd.Flags().Changed("split") {
		split = f.split
	}
	s, err := partition.ParseSplit(split)
	if err != nil {
		return partition.Driver{}, WrapExitError(ExitCommandError, "invalid --split", err)
	}
	d.Split = s
	return d, nil
}

func loadPlaylists(paths []string) (playlist.Table, error) {
	table, err := playlist.LoadAll(paths)
	if err != nil {
		return nil, maker.Wrap(maker.ErrPlaylist, "load playlists", err)
	}
	return table, nil
}

// loadTracks gathers the query input: every -i input plus, when library is
// set, every track stored in it.
func loadTracks(ctx context.Context, opts *RootOptions, inputs []string, library string, workers int, log zerolog.Logger) ([]track.Track, error) {
	var tracks []track.Track
	if len(inputs) > 0 {
		scanner := &scan.Scanner{
			Extensions: opts.Config.Extensions,
			Workers:    workers,
			Logger:     log,
		}
		found, stats, err := maker.CollectTracks(ctx, inputs, maker.CollectOptions{Scanner: scanner, Logger: log})
		metrics.RecordCollect(stats)
		if err != nil {
			return nil, err
		}
		tracks = found
	}

	if library != "" {
		lib, err := cliutil.OpenLibrary(ctx, opts.Config, library, false)
		if err != nil {
			return nil, err
		}
		defer lib.Close()
		stored, err := lib.Tracks(ctx)
		if err != nil {
			return nil, err
		}
		tracks = track.Dedup(append(tracks, stored...))
	}

	if len(inputs) == 0 && library == "" {
		log.Warn().Msg("no input given, the query runs over an empty collection")
	}
	return tracks, nil
}
