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
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/adaryorg/dotmix/internal/clipboard"
	"github.com/adaryorg/dotmix/internal/entity"
	"github.com/adaryorg/dotmix/internal/render"
	"github.com/adaryorg/dotmix/internal/runner"
	"github.com/adaryorg/dotmix/internal/ui"
)

var kindShort = map[entity.Kind]string{
	entity.Colorscheme: "Colorschemes in colors/",
	entity.Typography:  "Typography settings in fonts/",
	entity.Appearance:  "Appearance settings in themes/",
	entity.Fileset:     "Template filesets in templates/",
}

func newKindCmd(a *app, kind entity.Kind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind.String(),
		Short: kindShort[kind],
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available " + kind.String() + " ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			catalog, err := a.reg.Catalog(kind)
			if err != nil {
				return err
			}
			newPrinter(cmd).Entries(catalog.Entries())
			return nil
		},
	})

	var format string
	show := &cobra.Command{
		Use:               "show <id>",
		Short:             "Show the effective " + kind.String() + " after inheritance",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: firstArg(completeIDs(a, kind)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			return showEntity(cmd, a.reg, kind, args[0], format)
		},
	}
	show.Flags().StringVar(&format, "format", "text", "Output format: text, yaml or json")
	_ = show.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"text", "yaml", "json"}, cobra.ShellCompDirectiveNoFileComp))
	cmd.AddCommand(show)

	switch kind {
	case entity.Colorscheme:
		cmd.AddCommand(newCopyCmd(a))
	case entity.Fileset:
		cmd.AddCommand(newPreviewCmd(a))
	}
	return cmd
}

func showEntity(cmd *cobra.Command, reg *entity.Registry, kind entity.Kind, id, format string) error {
	p := newPrinter(cmd)

	var data any
	switch kind {
	case entity.Colorscheme:
		cs, err := reg.Colorscheme(id)
		if err != nil {
			return err
		}
		if format == "text" {
			p.Palette(cs.Data().Palette)
			if len(cs.Data().Custom) > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
				p.Heading("custom")
				p.Pairs(cs.Data().Custom)
			}
			return nil
		}
		data = map[string]any{
			"id":     cs.ID(),
			"name":   cs.Name(),
			"colors": cs.Data().Palette.Map(),
			"custom": cs.Data().Custom,
		}

	case entity.Typography, entity.Appearance:
		e, err := reg.Custom(kind, id)
		if err != nil {
			return err
		}
		if format == "text" {
			p.Pairs(e.Data())
			return nil
		}
		data = map[string]any{
			"id":     e.ID(),
			"name":   e.Name(),
			"custom": e.Data(),
		}

	case entity.Fileset:
		fs, err := reg.Fileset(id)
		if err != nil {
			return err
		}
		if format == "text" {
			p.Fileset(fs)
			return nil
		}
		files := map[string]string{}
		for relPath, rec := range fs.Data() {
			files[relPath] = rec.Owner
		}
		data = map[string]any{
			"id":    fs.ID(),
			"name":  fs.Name(),
			"files": files,
		}
	}

	return encode(cmd.OutOrStdout(), format, data)
}

func encode(w io.Writer, format string, data any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown format %q, use text, yaml or json", format)
}

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <id> <field>",
		Short: "Copy a palette color to the clipboard",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return completeIDs(a, entity.Colorscheme)(cmd, args, toComplete)
			}
			if len(args) == 1 {
				var names []string
				if err := a.load(); err == nil {
					if cs, err := a.reg.Colorscheme(args[0]); err == nil {
						for _, f := range cs.Data().Palette.Fields() {
							names = append(names, f.Name)
						}
					}
				}
				return names, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			cs, err := a.reg.Colorscheme(args[0])
			if err != nil {
				return err
			}
			value, err := clipboard.CopyColor(cs.Data().Palette, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[OK] Copied %s %s\n", args[1], value)
			return nil
		},
	}
}

func newPreviewCmd(a *app) *cobra.Command {
	var opts runner.Options
	var style string

	cmd := &cobra.Command{
		Use:   "preview <fileset> <path>",
		Short: "Render one template of a fileset to stdout",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return completeIDs(a, entity.Fileset)(cmd, args, toComplete)
			}
			if len(args) == 1 {
				var ids []string
				if err := a.load(); err == nil {
					if fs, err := a.reg.Fileset(args[0]); err == nil {
						ids = fs.Data().IDs()
					}
				}
				return ids, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}

			opts.Fileset = args[0]
			r := runner.New(a.cfg, a.reg, a.newHooks(cmd.OutOrStdout()), newPrinter(cmd), a.logger)
			sel, err := r.Select(opts)
			if err != nil {
				return err
			}

			rec, ok := sel.Fileset.Data()[args[1]]
			if !ok {
				return fmt.Errorf("%s is not part of fileset %q", args[1], sel.Fileset.ID())
			}
			out, err := render.File(rec, sel.Variables())
			if err != nil {
				return err
			}

			if caps := ui.DetectTerminalCapabilities(); caps.SupportsColor && caps.Interactive {
				if lang, ok := ui.DetectLanguage(rec.ID, out); ok {
					if lines, err := ui.Highlight(out, lang, style); err == nil {
						newPrinter(cmd).Code(lines)
						return nil
					}
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	addSelectionFlags(cmd, a, &opts)
	cmd.Flags().StringVar(&style, "style", ui.DefaultHighlightStyle, "Chroma style used to highlight the output")
	return cmd
}

// addSelectionFlags registers -c/-t/-a and -N with completion.
func addSelectionFlags(cmd *cobra.Command, a *app, opts *runner.Options) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.Colorscheme, "colorscheme", "c", "", "Colorscheme id")
	flags.StringVarP(&opts.Typography, "typography", "t", "", "Typography id")
	flags.StringVarP(&opts.Appearance, "appearance", "a", "", "Appearance id")
	flags.BoolVarP(&opts.NoDefaults, "no-defaults", "N", false, "Ignore the [defaults] section of the config")

	_ = cmd.RegisterFlagCompletionFunc("colorscheme", completeIDs(a, entity.Colorscheme))
	_ = cmd.RegisterFlagCompletionFunc("typography", completeIDs(a, entity.Typography))
	_ = cmd.RegisterFlagCompletionFunc("appearance", completeIDs(a, entity.Appearance))
}
