package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/nvandessel/metamaas/internal/config"
	"github.com/nvandessel/metamaas/internal/logging"
	"github.com/nvandessel/metamaas/internal/ui"
	"github.com/nvandessel/metamaas/internal/validation"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	validateStrict bool
	showReveal     bool
	showNoPager    bool
	initAPIKey     string
	initForce      bool
)

// confirmOverwrite asks before replacing an existing file. Replaced in tests.
var confirmOverwrite = func(path string) (bool, error) {
	var overwrite bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
				Affirmative("Yes").
				Negative("No").
				Value(&overwrite),
		),
	).Run()
	return overwrite, err
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the meta-maas.yaml configuration",
	Long:  "Commands for locating, validating and creating meta-maas.yaml",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate meta-maas.yaml",
	Long: `Load meta-maas.yaml and check it against the configuration schema.

Values the schema accepts but that look wrong (an unset API key, a relative
image path, a malformed email) are reported as warnings. With --strict any
warning fails validation.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}

		ui.Info("Loaded config from: %s", path)
		ui.Success("Configuration is valid")
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "  Regions:       %d\n", len(cfg.Regions))
		fmt.Fprintf(out, "  Users:         %d\n", len(cfg.Users))
		fmt.Fprintf(out, "  Selections:    %d\n", len(cfg.SelectionNames()))
		fmt.Fprintf(out, "  Custom images: %d\n", len(cfg.CustomImageNames()))

		findings := validation.Check(cfg)
		for _, f := range findings {
			ui.Warning("%s", f)
		}
		if validateStrict && len(findings) > 0 {
			logging.Warn("strict validation rejected config", "path", path, "warnings", len(findings))
			return fmt.Errorf("%d warning(s) in %s", len(findings), path)
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display configuration contents",
	Long: `Display the validated configuration as YAML. API keys and passwords
are masked unless --reveal is given. In an interactive terminal the output
opens in a pager.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}

		if !showReveal {
			cfg = cfg.Redacted()
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		rc := ui.NewRunContext().WithConfig(path)
		if rc.Interactive && !showNoPager {
			return ui.RunPager(rc.ConfigPath, string(data))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", path)
		_, err = out.Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file that would be loaded",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := loader.Resolve(configPath)
		if err != nil {
			if configPath == "" {
				ui.Warning("No %s found. Searched:", config.ConfigFileName)
				for _, candidate := range loader.Candidates() {
					ui.Warning("  %s", candidate)
				}
			}
			return err
		}

		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = path
		}
		fmt.Fprintln(cmd.OutOrStdout(), abs)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a sample meta-maas.yaml",
	Long: `Write a sample meta-maas.yaml showing every section. The file is
written to ./meta-maas.yaml unless a path is given. --apikey fills in the
API key of every sample region.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := config.ConfigFileName
		if len(args) > 0 {
			target = args[0]
		}

		err := config.WriteSample(target, initAPIKey, initForce)
		if errors.Is(err, config.ErrExists) {
			if !ui.IsInteractive() {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			overwrite, promptErr := confirmOverwrite(target)
			if promptErr != nil {
				return promptErr
			}
			if !overwrite {
				ui.Info("Aborted.")
				return nil
			}
			logging.Debug("overwriting existing config", "path", target)
			err = config.WriteSample(target, initAPIKey, true)
		}
		if err != nil {
			return err
		}

		ui.Success("Wrote sample config to %s", target)
		if initAPIKey == "" {
			ui.Info("Replace %s with each region's API key before use.", config.APIKeyPlaceholder)
		}
		return nil
	},
}

func init() {
	configValidateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat warnings as errors")
	configShowCmd.Flags().BoolVar(&showReveal, "reveal", false, "show API keys and passwords")
	configShowCmd.Flags().BoolVar(&showNoPager, "no-pager", false, "print instead of opening the pager")
	configInitCmd.Flags().StringVar(&initAPIKey, "apikey", "", "API key to write for the sample regions")
	configInitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}
