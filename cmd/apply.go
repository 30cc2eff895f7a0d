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
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/adaryorg/dotmix/internal/entity"
	"github.com/adaryorg/dotmix/internal/logging"
	"github.com/adaryorg/dotmix/internal/runner"
	"github.com/adaryorg/dotmix/internal/ui"
)

var errNotInteractive = errors.New("not running in a terminal, pass --yes to apply without confirmation")

func newApplyCmd(a *app) *cobra.Command {
	var opts runner.Options

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Render a fileset into the output directory",
		Long: `Render a fileset with the selected colorscheme, typography and appearance.

The previous output is kept in .out.backup inside the data directory. Hooks
receive the output directory in $DOTMIX_OUT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			if opts.Verbose {
				logging.SetLevel("debug")
				a.logger = logging.GetLogger()
			}

			r := runner.New(a.cfg, a.reg, a.newHooks(cmd.OutOrStdout()), newPrinter(cmd), a.logger)
			r.Confirm = func(prompt string) (bool, error) {
				if !ui.DetectTerminalCapabilities().Interactive {
					return false, errNotInteractive
				}
				return ui.Confirm(prompt, os.Stdin, os.Stdout)
			}
			return r.Apply(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Fileset, "fileset", "f", "", "Fileset id")
	addSelectionFlags(cmd, a, &opts)
	flags.StringVar(&opts.PreHook, "pre", "", "Hook to run before replacing the output")
	flags.StringVar(&opts.PostHook, "post", "", "Hook to run after replacing the output")
	flags.BoolVarP(&opts.Force, "force", "F", false, "Overwrite output files that were modified since the last apply")
	flags.BoolVarP(&opts.Yes, "yes", "y", false, "Do not ask for confirmation")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Print every variable and file used")

	_ = cmd.RegisterFlagCompletionFunc("fileset", completeIDs(a, entity.Fileset))
	_ = cmd.RegisterFlagCompletionFunc("pre", completeHooks(a))
	_ = cmd.RegisterFlagCompletionFunc("post", completeHooks(a))
	return cmd
}
