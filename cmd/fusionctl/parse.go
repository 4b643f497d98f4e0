package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fabricware/fusiongen/pkg/bordernode"
)

var parseCmd = &cobra.Command{
	Use:   "parse <config-file>...",
	Short: "Parse border node configurations and print the extracted facts",
	Long: `Parse reads one or more Cisco IOS running configuration exports and
prints the extracted border node facts (hostname, Loopback0, BGP AS and
neighbors, /30 VLAN interfaces, physical interfaces) as JSON.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		models := make([]*bordernode.Model, 0, len(args))
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			model, err := bordernode.Parse(string(data))
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}
			models = append(models, model)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(models)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
