package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/FilipeMCruz/playlist-maker/internal/cliopt"
	"github.com/FilipeMCruz/playlist-maker/internal/config"
	"github.com/FilipeMCruz/playlist-maker/internal/logging"
)

// RootOptions holds global state shared by all commands. Config and Logger
// are filled in before any subcommand runs.
type RootOptions struct {
	Global cliopt.GlobalOptions
	Viper  *viper.Viper
	Config config.Config
	Logger zerolog.Logger
}

// NewRootCommand creates the root command of the playlist-maker CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{
		Viper:  config.New(),
		Logger: zerolog.Nop(),
	}

	cmd := &cobra.Command{
		Use:   "playlist-maker",
		Short: "Create playlists using a query language",
		Long: `playlist-maker selects tracks from audio directories, CSV snapshots or a
stored library with a small query language, for example:

  Play(Artist("Drake") & !InPlaylist("gym") | R_Title("^Nice"))

Play queries print matching paths; Index queries print full records.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.Viper, opts.Global.ConfigFile)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}
			opts.Config = cfg
			opts.Logger = logging.New(cmd.ErrOrStderr(), logging.Options{
				Level: cfg.LogLevel,
				JSON:  opts.Global.LogJSON,
			})
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid arguments", err)
	})

	// Global flags
	cliopt.BindGlobalFlags(cmd.PersistentFlags(), &opts.Global)
	if err := cliopt.BindViper(opts.Viper, cmd.PersistentFlags()); err != nil {
		panic(err)
	}

	// Add subcommands
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewLibraryCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// Execute runs the CLI and returns an exit code.
func Execute(argv []string) int {
	cmd := NewRootCommand()
	cmd.SetArgs(argv)
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return GetExitCode(err)
}
