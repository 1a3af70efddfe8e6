package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/FilipeMCruz/playlist-maker/internal/cliutil"
	"github.com/FilipeMCruz/playlist-maker/internal/logging"
	"github.com/FilipeMCruz/playlist-maker/internal/metrics"
	"github.com/FilipeMCruz/playlist-maker/maker"
	"github.com/FilipeMCruz/playlist-maker/maker/query"
)

type queryOptions struct {
	query       string
	inputs      []string
	playlists   []string
	output      string
	library     string
	format      string
	metricsFile string
	eval        evalFlags
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	o := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a query and print the matching tracks",
		Long: `Run a query over tracks read from the inputs and, optionally, a stored library.

Inputs are directories (scanned for audio files) or CSV snapshots. Play
queries print one path per line; Index queries print full records as a CSV
snapshot, JSON or YAML. An empty result is not an error.`,
		Example: `  playlist-maker query -i ~/Music -q 'Play(Artist("Drake"))'
  playlist-maker query -i songs.csv -p gym.m3u -q 'Index(!InPlaylist("gym"))' -o rest.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, rootOpts, o)
		},
	}

	cmd.Flags().StringVarP(&o.query, "query", "q", "", "query to execute (required)")
	cmd.Flags().StringArrayVarP(&o.inputs, "input", "i", nil, "directory with songs or snapshot file (repeatable)")
	cmd.Flags().StringArrayVarP(&o.playlists, "playlist", "p", nil, "m3u or wpl playlist usable in the query (repeatable)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "file to write results to (default: stdout)")
	cmd.Flags().StringVar(&o.library, "library", "", "stored library to query in addition to the inputs")
	cmd.Flags().StringVar(&o.format, "format", "csv", "Index output format: csv|json|yaml")
	cmd.Flags().StringVar(&o.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile after the run")
	o.eval.bind(cmd)

	return cmd
}

func runQuery(cmd *cobra.Command, rootOpts *RootOptions, o *queryOptions) error {
	ctx := cmd.Context()
	if o.query == "" {
		return NewExitError(ExitCommandError, "missing --query")
	}
	log, _ := logging.WithRunID(rootOpts.Logger)

	format, err := cliutil.ParseOutputFormat(o.format)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --format", err)
	}
	driver, err := o.eval.driver(cmd, rootOpts, log)
	if err != nil {
		return err
	}
	playlists, err := loadPlaylists(o.playlists)
	if err != nil {
		return err
	}
	tracks, err := loadTracks(ctx, rootOpts, o.inputs, o.library, driver.Workers, log)
	if err != nil {
		return err
	}

	engine := &maker.Engine{
		Driver:    driver,
		Playlists: playlists,
		Logger:    log,
		Observer:  metrics.Observer{},
	}
	res, err := engine.Run(ctx, o.query, tracks)
	if err != nil {
		return err
	}

	if err := writeResult(cmd.OutOrStdout(), o.output, format, res); err != nil {
		return maker.WrapPath(maker.ErrIO, o.output, "write results", err)
	}

	if o.metricsFile != "" {
		if err := metrics.WriteTextfile(o.metricsFile); err != nil {
			return maker.WrapPath(maker.ErrIO, o.metricsFile, "write metrics", err)
		}
	}
	return nil
}

func writeResult(stdout io.Writer, path string, format cliutil.OutputFormat, res *maker.Result) error {
	if path == "" {
		return printResult(stdout, format, res)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := printResult(f, format, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printResult(w io.Writer, format cliutil.OutputFormat, res *maker.Result) error {
	if res.Mode() == query.Play {
		return cliutil.PrintPaths(w, res.Paths())
	}
	return cliutil.WriteTracks(w, format, res.Tracks)
}
