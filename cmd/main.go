/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/adaryorg/dotmix/internal/config"
	"github.com/adaryorg/dotmix/internal/entity"
	"github.com/adaryorg/dotmix/internal/hooks"
	"github.com/adaryorg/dotmix/internal/logging"
	"github.com/adaryorg/dotmix/internal/ui"
	"github.com/adaryorg/dotmix/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds what the subcommands share. It is loaded on first use so that
// `config init` works before any config exists.
type app struct {
	cfg    *config.Config
	reg    *entity.Registry
	logger zerolog.Logger
}

func (a *app) load() error {
	if a.reg != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	l := cfg.Logging
	if err := logging.InitLogger(l.File, l.Level, l.MaxAge, l.MaxSize, l.MaxBackups); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	mode, err := cfg.ColorMode()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.GetLogger()
	a.reg = entity.NewRegistry(cfg.General.DataPath, mode, a.logger)
	logging.Debug("loaded config: data=%s out=%s colormode=%s", cfg.General.DataPath, cfg.General.OutPath, mode)
	return nil
}

func (a *app) newHooks(out io.Writer) *hooks.Hooks {
	h := hooks.New(a.cfg.HooksPath(), a.logger)
	h.Stdout = out
	return h
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "dotmix",
		Short:         "Mix colorschemes, fonts and appearance settings into your dotfiles",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("dotmix version {{.Version}}\n")

	root.AddCommand(
		newConfigCmd(),
		newKindCmd(a, entity.Colorscheme),
		newKindCmd(a, entity.Typography),
		newKindCmd(a, entity.Appearance),
		newKindCmd(a, entity.Fileset),
		newHookCmd(a),
		newApplyCmd(a),
	)
	return root
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the dotmix configuration",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default config and data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			configDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			dataDir, err := config.DataDir()
			if err != nil {
				return err
			}

			path, err := config.CreateDefault(configDir, dataDir, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "[OK] Created config file %s\n", path)

			created, err := config.Scaffold(dataDir)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(out, "[OK] Created data directory %s\n", dataDir)
			} else {
				fmt.Fprintf(out, "[INFO] Data directory %s is not empty, leaving it alone\n", dataDir)
			}
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	cmd.AddCommand(initCmd)
	return cmd
}

func newHookCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Inspect pre/post apply hooks",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available hooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			ids, err := a.newHooks(cmd.OutOrStdout()).List()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	})
	return cmd
}

// completeIDs completes catalog ids of kind. Load errors give no candidates.
func completeIDs(a *app, kind entity.Kind) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if err := a.load(); err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		catalog, err := a.reg.Catalog(kind)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return catalog.IDs(), cobra.ShellCompDirectiveNoFileComp
	}
}

func completeHooks(a *app) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if err := a.load(); err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		ids, _ := a.newHooks(io.Discard).List()
		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}

// firstArg completes only the first positional argument.
func firstArg(fn func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective)) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return fn(cmd, args, toComplete)
	}
}

func newPrinter(cmd *cobra.Command) *ui.Printer {
	return ui.NewPrinter(cmd.OutOrStdout())
}
