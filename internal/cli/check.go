package cli

import (
	"github.com/spf13/cobra"

	"github.com/FilipeMCruz/playlist-maker/internal/cliutil"
	"github.com/FilipeMCruz/playlist-maker/maker"
	"github.com/FilipeMCruz/playlist-maker/maker/eval"
)

type checkOptions struct {
	query     string
	playlists []string
	json      bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	o := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report tokens that would make a query match nothing",
		Long: `Parse a query and list every tag that cannot be resolved (unknown name,
prefix not allowed, invalid regex or year) and every playlist that was not
given with -p. Such tokens never fail a query; they only make it yield
nothing, so check is the way to find them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, rootOpts, o)
		},
	}

	cmd.Flags().StringVarP(&o.query, "query", "q", "", "query to check (required)")
	cmd.Flags().StringArrayVarP(&o.playlists, "playlist", "p", nil, "m3u or wpl playlist usable in the query (repeatable)")
	cmd.Flags().BoolVar(&o.json, "json", false, "print problems as JSON")

	return cmd
}

func runCheck(cmd *cobra.Command, rootOpts *RootOptions, o *checkOptions) error {
	if o.query == "" {
		return NewExitError(ExitCommandError, "missing --query")
	}
	playlists, err := loadPlaylists(o.playlists)
	if err != nil {
		return err
	}

	engine := &maker.Engine{Playlists: playlists, Logger: rootOpts.Logger}
	q, problems, err := engine.Check(o.query)
	if err != nil {
		return err
	}
	rootOpts.Logger.Debug().Str("query", q.String()).Int("problems", len(problems)).Msg("query checked")

	if o.json {
		return cliutil.PrintJSON(cmd.OutOrStdout(), map[string]any{
			"query":    q.String(),
			"mode":     q.Mode.String(),
			"problems": problemsOrEmpty(problems),
		})
	}
	return cliutil.PrintProblems(cmd.OutOrStdout(), problems)
}

func problemsOrEmpty(problems []eval.Problem) []eval.Problem {
	if problems == nil {
		return []eval.Problem{}
	}
	return problems
}
