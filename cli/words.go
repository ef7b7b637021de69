package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/writewithwrabit/wordstreak/streak"
)

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words [file...]",
		Short: "Count words the way the streak check does",
		Long: `Prints the word count of each file, and whether it reaches the daily goal.
With no files, or with "-", reads standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}

			out := cmd.OutOrStdout()
			for _, name := range args {
				text, err := readInput(cmd.InOrStdin(), name)
				if err != nil {
					return err
				}

				n := streak.WordCount(text)
				mark := " "
				if streak.GoalMet(n) {
					mark = "✓"
				}
				fmt.Fprintf(out, "%s %6d  %s\n", mark, n, name)
			}
			return nil
		},
	}
}

func readInput(stdin io.Reader, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}
