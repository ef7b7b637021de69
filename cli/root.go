// Package cli implements the wordstreak command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile   string
	notesDir  string
	engine    string
	storePath string
	verbose   bool
}

// NewRootCmd builds the wordstreak command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "wordstreak",
		Short: "Track a daily 750 words writing streak",
		Long: `wordstreak checks the note named after today's date once per day.
A note with at least 750 words extends the streak; a shorter or missing
note resets it to zero.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Environment file to load")
	root.PersistentFlags().StringVar(&opts.notesDir, "notes", "", "Directory holding the daily notes (overrides NOTES_DIR)")
	root.PersistentFlags().StringVar(&opts.engine, "store", "", "Settings store engine: json, sqlite, postgres, memory (overrides STORE_ENGINE)")
	root.PersistentFlags().StringVar(&opts.storePath, "store-path", "", "Settings file for json and sqlite stores (overrides STORE_PATH)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newWordsCmd())

	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
