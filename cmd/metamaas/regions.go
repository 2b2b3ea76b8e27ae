package main

import (
	"fmt"

	"github.com/nvandessel/metamaas/internal/ui"
	"github.com/spf13/cobra"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the configured regions",
	Long:  "List every region in meta-maas.yaml with its API URL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		names := cfg.RegionNames()
		if len(names) == 0 {
			ui.Warning("No regions configured")
			return nil
		}

		ui.Section(fmt.Sprintf("Regions (%d)", len(names)))
		for _, name := range names {
			ui.Item(name, cfg.Regions[name].URL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}
