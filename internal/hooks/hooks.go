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

package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
)

// EnvOutDir is set for every hook to the directory being written.
const EnvOutDir = "DOTMIX_OUT"

var (
	ErrHookNotFound      = errors.New("hook not found")
	ErrHookNotExecutable = errors.New("hook is not executable")
)

// Hooks runs the executables in a hooks directory. A hook's id is its file
// name.
type Hooks struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
	Logger zerolog.Logger
}

// New returns hooks for dir writing to the process stdout and stderr.
func New(dir string, logger zerolog.Logger) *Hooks {
	return &Hooks{
		Dir:    dir,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// List returns the sorted ids of every regular file in the hooks dir. A
// missing dir has no hooks.
func (h *Hooks) List() ([]string, error) {
	entries, err := os.ReadDir(h.Dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read hooks directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Path returns the path of hook id after checking it exists and can be run.
func (h *Hooks) Path(id string) (string, error) {
	path := filepath.Join(h.Dir, id)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || filepath.Base(id) != id {
		return "", fmt.Errorf("%w: %q", ErrHookNotFound, id)
	}
	if info.Mode().Perm()&0111 == 0 {
		return "", fmt.Errorf("%w: %s (try chmod +x)", ErrHookNotExecutable, path)
	}
	return path, nil
}

// Run executes hook id with EnvOutDir set to outDir and returns its exit code.
// A non-nil error means the hook could not be started at all.
func (h *Hooks) Run(ctx context.Context, id, outDir string) (int, error) {
	path, err := h.Path(id)
	if err != nil {
		return -1, err
	}

	cmd := exec.CommandContext(ctx, path)
	cmd.Dir = h.Dir
	cmd.Env = append(os.Environ(), EnvOutDir+"="+outDir)
	cmd.Stdout = h.Stdout
	cmd.Stderr = h.Stderr

	h.Logger.Debug().Str("hook", id).Str("out", outDir).Msg("running hook")
	err = cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		h.Logger.Warn().Str("hook", id).Int("code", exitErr.ExitCode()).Msg("hook failed")
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("failed to run hook %q: %w", id, err)
	}
	return 0, nil
}
