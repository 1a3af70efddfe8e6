package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/FilipeMCruz/playlist-maker/internal/cliutil"
	"github.com/FilipeMCruz/playlist-maker/internal/metrics"
	"github.com/FilipeMCruz/playlist-maker/internal/server"
	"github.com/FilipeMCruz/playlist-maker/maker"
)

type serveOptions struct {
	library   string
	playlists []string
	listen    string
	eval      evalFlags
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	o := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer queries over HTTP from a stored library",
		Long: `Serve queries over the tracks of a stored library.

  POST /api/query      {"query": "Play(...)"}
  GET  /api/check?q=   problems that make a query match nothing
  GET  /api/playlists  playlists loaded with -p
  GET  /metrics        Prometheus metrics
  GET  /healthz        liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootOpts, o)
		},
	}

	cmd.Flags().StringVar(&o.library, "library", "", "library to serve (required)")
	cmd.Flags().StringArrayVarP(&o.playlists, "playlist", "p", nil, "m3u or wpl playlist usable in queries (repeatable)")
	cmd.Flags().StringVar(&o.listen, "listen", "", "listen address (default: config listen)")
	o.eval.bind(cmd)

	return cmd
}

func runServe(cmd *cobra.Command, rootOpts *RootOptions, o *serveOptions) error {
	if o.library == "" {
		return NewExitError(ExitCommandError, "missing --library")
	}
	listen := rootOpts.Config.Listen
	if cmd.Flags().Changed("listen") {
		listen = o.listen
	}
	log := rootOpts.Logger

	driver, err := o.eval.driver(cmd, rootOpts, log)
	if err != nil {
		return err
	}
	playlists, err := loadPlaylists(o.playlists)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lib, err := cliutil.OpenLibrary(ctx, rootOpts.Config, o.library, false)
	if err != nil {
		return err
	}
	defer lib.Close()

	if n, err := lib.Count(ctx); err == nil {
		metrics.LibraryTracks.Set(float64(n))
		log.Info().Str("library", lib.ID()).Int("tracks", n).Int("playlists", len(playlists)).Msg("library opened")
	}

	engine := &maker.Engine{
		Driver:    driver,
		Playlists: playlists,
		Logger:    log,
		Observer:  metrics.Observer{},
	}
	srv := server.New(engine, lib, log)
	if err := srv.ListenAndServe(ctx, listen); err != nil {
		return maker.Wrap(maker.ErrIO, "serve", err)
	}
	return nil
}
