package main

import (
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old.cfg> <new.cfg>",
	Short: "Show the differences between two generated configurations",
	Long: `Diff compares two rendered configuration files line by line and prints
the changes. Useful for reviewing what a regeneration would alter on a
deployed fusion router before pushing it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldData, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		newData, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[1], err)
		}

		dmp := diffmatchpatch.New()
		oldChars, newChars, lines := dmp.DiffLinesToChars(string(oldData), string(newData))
		diffs := dmp.DiffCharsToLines(dmp.DiffMain(oldChars, newChars, false), lines)

		changed := false
		for _, d := range diffs {
			if d.Type != diffmatchpatch.DiffEqual {
				changed = true
				break
			}
		}
		if !changed {
			fmt.Fprintln(cmd.OutOrStdout(), "Configurations are identical")
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), dmp.DiffPrettyText(diffs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
