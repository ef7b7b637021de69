package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/writewithwrabit/wordstreak/notify"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check today's note and report the streak",
		Long: `Evaluates today's note if it has not been evaluated yet today, saves the
new streak and prints it. Running check again on the same day only reports
the streak.

If the notes cannot be read the streak is left as it was and check exits
with an error, so the day is evaluated again on the next run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			a, err := newApp(cmd.Context(), cfg, logger, notify.NewWriter(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.tracker.Trigger(cmd.Context())
			if err != nil {
				return err
			}

			if opts.verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s (%d words)\n", res.State.LastCheckedDate, res.Outcome, res.Words)
			}
			return nil
		},
	}
}
