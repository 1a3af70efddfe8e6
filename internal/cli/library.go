package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FilipeMCruz/playlist-maker/internal/cliutil"
	"github.com/FilipeMCruz/playlist-maker/internal/metrics"
	"github.com/FilipeMCruz/playlist-maker/maker"
	"github.com/FilipeMCruz/playlist-maker/maker/snapshot"
)

// NewLibraryCommand creates the library command group.
func NewLibraryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage stored track libraries",
		Long: `A library keeps scanned track metadata in SQLite or PostgreSQL so later
queries do not have to read every audio file again.`,
	}

	cmd.AddCommand(newLibraryImportCommand(rootOpts))
	cmd.AddCommand(newLibraryExportCommand(rootOpts))
	cmd.AddCommand(newLibraryInfoCommand(rootOpts))
	cmd.AddCommand(newLibraryValuesCommand(rootOpts))

	return cmd
}

func newLibraryImportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		inputs  []string
		library string
		workers int
		prune   bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Scan directories and snapshots into a library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if library == "" {
				return NewExitError(ExitCommandError, "missing --library")
			}
			if len(inputs) == 0 {
				return NewExitError(ExitCommandError, "missing --input")
			}
			if !cmd.Flags().Changed("workers") {
				workers = rootOpts.Config.Workers
			}
			ctx := cmd.Context()
			log := rootOpts.Logger.With().Str("library", library).Logger()

			tracks, err := loadTracks(ctx, rootOpts, inputs, "", workers, log)
			if err != nil {
				return err
			}

			lib, err := cliutil.OpenLibrary(ctx, rootOpts.Config, library, true)
			if err != nil {
				return err
			}
			defer lib.Close()

			stored, err := lib.PutTracks(ctx, tracks)
			if err != nil {
				return err
			}
			removed := 0
			if prune {
				if removed, err = lib.Prune(ctx, tracks); err != nil {
					return err
				}
			}
			total, err := lib.Count(ctx)
			if err != nil {
				return err
			}
			metrics.LibraryTracks.Set(float64(total))

			log.Info().Int("stored", stored).Int("pruned", removed).Int("total", total).Msg("library imported")
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tracks into %s (%d pruned, %d total)\n", stored, lib.ID(), removed, total)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "directory with songs or snapshot file (repeatable)")
	cmd.Flags().StringVar(&library, "library", "", "library name (required)")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent tag reads (default: config workers)")
	cmd.Flags().BoolVar(&prune, "prune", false, "delete stored tracks that are not in the imported set")

	return cmd
}

func newLibraryExportCommand(rootOpts *RootOptions) *cobra.Command {
	var library, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a library as a CSV snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if library == "" {
				return NewExitError(ExitCommandError, "missing --library")
			}
			ctx := cmd.Context()
			lib, err := cliutil.OpenLibrary(ctx, rootOpts.Config, library, false)
			if err != nil {
				return err
			}
			defer lib.Close()

			tracks, err := lib.Tracks(ctx)
			if err != nil {
				return err
			}
			if output == "" {
				if err := snapshot.Write(cmd.OutOrStdout(), tracks); err != nil {
					return maker.Wrap(maker.ErrIO, "write snapshot", err)
				}
				return nil
			}
			if err := snapshot.WriteFile(output, tracks); err != nil {
				return maker.WrapPath(maker.ErrIO, output, "write snapshot", err)
			}
			rootOpts.Logger.Info().Str("file", output).Int("tracks", len(tracks)).Msg("library exported")
			return nil
		},
	}

	cmd.Flags().StringVar(&library, "library", "", "library name (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "snapshot file (default: stdout)")

	return cmd
}

func newLibraryInfoCommand(rootOpts *RootOptions) *cobra.Command {
	var library string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the number of stored tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if library == "" {
				return NewExitError(ExitCommandError, "missing --library")
			}
			ctx := cmd.Context()
			lib, err := cliutil.OpenLibrary(ctx, rootOpts.Config, library, false)
			if err != nil {
				return err
			}
			defer lib.Close()

			n, err := lib.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Library: %s\nBackend: %s\nTracks: %d\n", lib.ID(), rootOpts.Config.Backend, n)
			return nil
		},
	}

	cmd.Flags().StringVar(&library, "library", "", "library name (required)")

	return cmd
}

func newLibraryValuesCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		library, field string
		top            int
		asJSON         bool
	)
	cmd := &cobra.Command{
		Use:   "values",
		Short: "List the most frequent values of a tag",
		Long: `List the most frequent values of a tag in a library, which helps when
writing literal matches such as Artist("...") or Genre("...").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if library == "" || field == "" {
				return NewExitError(ExitCommandError, "missing --library or --field")
			}
			ctx := cmd.Context()
			lib, err := cliutil.OpenLibrary(ctx, rootOpts.Config, library, false)
			if err != nil {
				return err
			}
			defer lib.Close()

			values, err := lib.TopValues(ctx, field, top)
			if err != nil {
				if maker.IsKind(err, maker.ErrNotFound) {
					return WrapExitError(ExitCommandError, "invalid --field", err)
				}
				return err
			}
			if asJSON {
				return cliutil.PrintJSON(cmd.OutOrStdout(), values)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Top values for field '%s':\n", field)
			for _, v := range values {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d\n", v.Value, v.Count)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&library, "library", "", "library name (required)")
	cmd.Flags().StringVar(&field, "field", "", "tag name: title|artist|album|albumartist|year|genre|disc|track (required)")
	cmd.Flags().IntVar(&top, "top", maker.DefaultTop, "number of values to return")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print values as JSON")

	return cmd
}
