package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/writewithwrabit/wordstreak/streak"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current streak without checking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg, newLogger(cmd.ErrOrStderr(), cfg.LogLevel))
			if err != nil {
				return err
			}
			defer a.Close()

			state, err := a.tracker.Current(cmd.Context())
			if err != nil {
				return err
			}

			lastChecked := state.LastCheckedDate
			if lastChecked == "" {
				lastChecked = "never"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, streak.StatusText(state))
			fmt.Fprintf(out, "  Current streak:    %d\n", state.Streak)
			fmt.Fprintf(out, "  Last checked date: %s\n", lastChecked)
			return nil
		},
	}
}
