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

package runner

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"

	"github.com/adaryorg/dotmix/internal/config"
	"github.com/adaryorg/dotmix/internal/entity"
	"github.com/adaryorg/dotmix/internal/hooks"
	"github.com/adaryorg/dotmix/internal/render"
	"github.com/adaryorg/dotmix/internal/storage"
	"github.com/adaryorg/dotmix/internal/ui"
)

var (
	ErrNoFileset      = errors.New("no fileset specified")
	ErrModifiedOutput = errors.New("output files were modified since the last apply, use --force to overwrite them")
	ErrAborted        = errors.New("aborted")
)

// HookError reports a hook that exited with a non-zero code.
type HookError struct {
	Stage string
	ID    string
	Code  int
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook %q exited with code %d", e.Stage, e.ID, e.Code)
}

// Options are the apply flags. Empty ids fall back to the configured
// defaults unless NoDefaults is set.
type Options struct {
	Fileset     string
	Colorscheme string
	Typography  string
	Appearance  string
	PreHook     string
	PostHook    string

	NoDefaults bool
	Force      bool
	Yes        bool
	Verbose    bool
}

// Selection is what an apply will use. Nil entities and empty hooks are
// skipped.
type Selection struct {
	Fileset     *entity.Entity[entity.Files]
	Colorscheme *entity.Entity[entity.ColorschemeData]
	Typography  *entity.Entity[map[string]any]
	Appearance  *entity.Entity[map[string]any]
	PreHook     string
	PostHook    string
}

// Runner wires the registry, hooks, renderer and checksum store into the
// apply pipeline.
type Runner struct {
	Config   *config.Config
	Registry *entity.Registry
	Hooks    *hooks.Hooks
	Printer  *ui.Printer
	Logger   zerolog.Logger

	// Confirm asks before writing. Nil means always proceed.
	Confirm func(prompt string) (bool, error)
}

// New creates a runner. Confirm is left unset.
func New(cfg *config.Config, reg *entity.Registry, h *hooks.Hooks, p *ui.Printer, logger zerolog.Logger) *Runner {
	return &Runner{
		Config:   cfg,
		Registry: reg,
		Hooks:    h,
		Printer:  p,
		Logger:   logger,
	}
}

func (r *Runner) pick(explicit, name string, noDefaults bool) string {
	if explicit != "" || noDefaults {
		return explicit
	}
	return r.Config.Default(name)
}

// Select resolves the entities and hooks an apply will use.
func (r *Runner) Select(opts Options) (*Selection, error) {
	sel := &Selection{
		PreHook:  r.pick(opts.PreHook, "pre_hook", opts.NoDefaults),
		PostHook: r.pick(opts.PostHook, "post_hook", opts.NoDefaults),
	}

	filesetID := r.pick(opts.Fileset, entity.Fileset.String(), opts.NoDefaults)
	if filesetID == "" {
		return nil, ErrNoFileset
	}
	fs, err := r.Registry.Fileset(filesetID)
	if err != nil {
		return nil, err
	}
	sel.Fileset = fs

	if id := r.pick(opts.Colorscheme, entity.Colorscheme.String(), opts.NoDefaults); id != "" {
		if sel.Colorscheme, err = r.Registry.Colorscheme(id); err != nil {
			return nil, err
		}
	} else {
		r.Logger.Warn().Msg("no colorscheme specified, colors will be empty")
	}

	if id := r.pick(opts.Typography, entity.Typography.String(), opts.NoDefaults); id != "" {
		if sel.Typography, err = r.Registry.Typography(id); err != nil {
			return nil, err
		}
	} else {
		r.Logger.Warn().Msg("no typography specified, typography will be empty")
	}

	if id := r.pick(opts.Appearance, entity.Appearance.String(), opts.NoDefaults); id != "" {
		if sel.Appearance, err = r.Registry.Appearance(id); err != nil {
			return nil, err
		}
	} else {
		r.Logger.Warn().Msg("no appearance specified, appearance will be empty")
	}

	return sel, nil
}

// Variables builds the template context for a selection.
func (sel *Selection) Variables() map[string]any {
	return render.Variables(sel.Colorscheme, sel.Typography, sel.Appearance)
}

func (r *Runner) printSummary(sel *Selection, vars map[string]any, verbose bool) {
	p := r.Printer
	p.Summary("Fileset", sel.Fileset.Name(), sel.Fileset.ID())
	if sel.Colorscheme != nil {
		p.Summary("Colorscheme", sel.Colorscheme.Name(), sel.Colorscheme.ID())
	} else {
		p.Summary("Colorscheme", "", "")
	}
	if sel.Typography != nil {
		p.Summary("Typography", sel.Typography.Name(), sel.Typography.ID())
	} else {
		p.Summary("Typography", "", "")
	}
	if sel.Appearance != nil {
		p.Summary("Appearance", sel.Appearance.Name(), sel.Appearance.ID())
	} else {
		p.Summary("Appearance", "", "")
	}
	p.Field("Pre hook", sel.PreHook)
	p.Field("Post hook", sel.PostHook)

	if !verbose {
		return
	}
	p.Fileset(sel.Fileset)
	for _, group := range []string{"colors", "typography", "appearance"} {
		p.Heading(group)
		if data, ok := vars[group].(map[string]any); ok {
			p.Pairs(data)
		}
	}
}

// Apply renders the selection into the output dir, running hooks around the
// swap and keeping the previous output as a backup.
func (r *Runner) Apply(ctx context.Context, opts Options) error {
	sel, err := r.Select(opts)
	if err != nil {
		return err
	}

	outDir := r.Config.General.OutPath
	checksums, err := storage.OpenChecksums(r.Config.ChecksumsPath(), outDir)
	if err != nil {
		return err
	}
	defer checksums.Close()

	modified, err := checksums.Verify()
	if err != nil {
		return err
	}
	if len(modified) > 0 {
		r.Printer.List("Modified files:", modified)
		if !opts.Force {
			return ErrModifiedOutput
		}
		r.Logger.Warn().Int("files", len(modified)).Msg("overwriting modified output")
	}

	vars := sel.Variables()
	r.printSummary(sel, vars, opts.Verbose)

	if !opts.Yes && r.Confirm != nil {
		ok, err := r.Confirm("Apply these settings?")
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	staging, err := os.MkdirTemp("", "dotmix_out")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := render.Fileset(osfs.New(staging), sel.Fileset.Data(), vars); err != nil {
		return err
	}
	r.Logger.Debug().Str("staging", staging).Int("files", len(sel.Fileset.Data())).Msg("rendered fileset")

	if err := r.runHook(ctx, "pre", sel.PreHook, outDir); err != nil {
		return err
	}

	backup := r.Config.BackupPath()
	if err := swap(staging, outDir, backup); err != nil {
		return err
	}

	if err := r.runHook(ctx, "post", sel.PostHook, outDir); err != nil {
		if restoreErr := restore(outDir, backup); restoreErr != nil {
			r.Logger.Error().Err(restoreErr).Msg("failed to restore previous output")
		}
		return err
	}

	if err := checksums.Record(); err != nil {
		return err
	}

	r.Logger.Info().Str("out", outDir).Msg("applied")
	return nil
}

func (r *Runner) runHook(ctx context.Context, stage, id, outDir string) error {
	if id == "" {
		return nil
	}
	code, err := r.Hooks.Run(ctx, id, outDir)
	if err != nil {
		return err
	}
	if code != 0 {
		return &HookError{Stage: stage, ID: id, Code: code}
	}
	return nil
}

// swap moves outDir to backup and copies staging into a fresh outDir.
func swap(staging, outDir, backup string) error {
	if err := os.RemoveAll(backup); err != nil {
		return fmt.Errorf("failed to remove old backup: %w", err)
	}
	if _, err := os.Stat(outDir); err == nil {
		if err := os.Rename(outDir, backup); err != nil {
			return fmt.Errorf("failed to back up output: %w", err)
		}
	}
	if err := copyTree(osfs.New(staging), osfs.New(outDir)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// restore puts the backup back in place of outDir.
func restore(outDir, backup string) error {
	if err := os.RemoveAll(outDir); err != nil {
		return err
	}
	if _, err := os.Stat(backup); err != nil {
		return nil
	}
	return os.Rename(backup, outDir)
}

func copyTree(src, dst billy.Filesystem) error {
	return util.Walk(src, "/", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return dst.MkdirAll(path, 0755)
		}
		data, err := util.ReadFile(src, path)
		if err != nil {
			return err
		}
		return util.WriteFile(dst, path, data, info.Mode().Perm())
	})
}
