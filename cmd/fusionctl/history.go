package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fabricware/fusiongen/pkg/store"
)

var historyFlags struct {
	dbPath string
	limit  int
	show   string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or show past generations from the history database",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(historyFlags.dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		if historyFlags.show != "" {
			gen, err := st.GetGeneration(cmd.Context(), historyFlags.show)
			if err != nil {
				return err
			}
			if gen == nil {
				return fmt.Errorf("generation not found: %s", historyFlags.show)
			}
			fmt.Fprint(cmd.OutOrStdout(), gen.ConfigText)
			return nil
		}

		generations, err := st.ListGenerations(cmd.Context(), historyFlags.limit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tROUTER\tMODE\tCREATED")
		for _, g := range generations {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				g.ID, g.RouterHostname, g.InterfaceMode,
				g.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyFlags.dbPath, "db", "/var/lib/fusiongen/fusiongen.db",
		"Path to the generation history database")
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20,
		"Maximum number of history entries to list")
	historyCmd.Flags().StringVar(&historyFlags.show, "show", "",
		"Print the full configuration of one generation by id")
	rootCmd.AddCommand(historyCmd)
}
