package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nvandessel/metamaas/internal/config"
	"github.com/nvandessel/metamaas/internal/logging"
	"github.com/nvandessel/metamaas/internal/ui"
	"github.com/spf13/cobra"
)

var (
	// Version information (set during build)
	Version   = "dev"
	BuildTime = "unknown"
)

var (
	configPath     string
	verbose        bool
	nonInteractive bool

	// loader is replaced in tests.
	loader config.ConfigLoader = config.NewConfigLoader()
)

var rootCmd = &cobra.Command{
	Use:   "metamaas",
	Short: "metamaas - Tool to manage multiple MAAS regions",
	Long: `metamaas keeps a set of MAAS regions in sync from a single
meta-maas.yaml file describing the regions, their users and the boot
images they should carry.

If --config is not passed the tool first searches the current directory
for a meta-maas.yaml. If not found it searches the executing user's home
directory for meta-maas.yaml.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
		ui.SetNonInteractive(nonInteractive)
		logging.Setup(verbose, cmd.ErrOrStderr())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  "Display metamaas version, build time, and Go version",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "metamaas %s\n", Version)
		fmt.Fprintf(out, "Built:      %s\n", BuildTime)
		fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration to load (`PATH`)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().BoolVarP(&nonInteractive, "non-interactive", "y", false, "never prompt or open the pager")
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the configuration named by --config and reports the
// path it came from.
func loadConfig() (*config.Config, string, error) {
	cfg, path, err := loader.LoadResolved(configPath)
	if err != nil {
		logging.Debug("config failed to load", "requested", configPath, "path", path, "error", err)
		return nil, path, err
	}
	logging.Debug("resolved config", "path", path)
	return cfg, path, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		os.Exit(exitCode(err))
	}
}
