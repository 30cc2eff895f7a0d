package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaryorg/dotmix/internal/colors"
	"github.com/adaryorg/dotmix/internal/config"
	"github.com/adaryorg/dotmix/internal/entity"
	"github.com/adaryorg/dotmix/internal/hooks"
	"github.com/adaryorg/dotmix/internal/ui"
)

const testScheme = `name = "Dark"

[colors.base16]
base00 = "#1d1f21"
base01 = "#282a2e"
base02 = "#373b41"
base03 = "#969896"
base04 = "#b4b7b4"
base05 = "#c5c8c6"
base06 = "#e0e0e0"
base07 = "#ffffff"
base08 = "#cc6666"
base09 = "#de935f"
base0A = "#f0c674"
base0B = "#b5bd68"
base0C = "#8abeb7"
base0D = "#81a2be"
base0E = "#b294bb"
base0F = "#a3685a"
`

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

type testEnv struct {
	runner *Runner
	cfg    *config.Config
	out    *bytes.Buffer
}

func createTestRunner(t *testing.T) *testEnv {
	t.Helper()

	dataDir := t.TempDir()
	writeFile(t, filepath.Join(dataDir, "colors", "dark.toml"), testScheme, 0644)
	writeFile(t, filepath.Join(dataDir, "fonts", "mono.toml"), "name = \"Mono\"\n[custom]\nfamily = \"Iosevka\"\n", 0644)
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "themes"), 0755))
	writeFile(t, filepath.Join(dataDir, "templates", "desktop", entity.SettingsFile), `name = "Desktop"`, 0644)
	writeFile(t, filepath.Join(dataDir, "templates", "desktop", "term", "term.conf"),
		"bg={{colors.bg}}\nfont={{typography.family}}\n", 0644)

	writeFile(t, filepath.Join(dataDir, "hooks", "ok.sh"), "#!/bin/sh\necho \"hook saw $DOTMIX_OUT\"\n", 0755)
	writeFile(t, filepath.Join(dataDir, "hooks", "fail.sh"), "#!/bin/sh\nexit 2\n", 0755)

	cfg := &config.Config{
		General: config.GeneralConfig{
			DataPath: dataDir,
			OutPath:  filepath.Join(dataDir, "out"),
		},
		Colors: config.ColorsConfig{ColorMode: "base16"},
		Defaults: config.DefaultsConfig{
			Fileset:     "desktop",
			Colorscheme: "dark",
			Typography:  "mono",
		},
	}

	var out bytes.Buffer
	h := hooks.New(cfg.HooksPath(), zerolog.Nop())
	h.Stdout = &out
	h.Stderr = &out

	reg := entity.NewRegistry(dataDir, colors.ModeBase16, zerolog.Nop())
	r := New(cfg, reg, h, ui.NewPrinter(&out), zerolog.Nop())
	return &testEnv{runner: r, cfg: cfg, out: &out}
}

func (e *testEnv) outFile(rel string) string {
	return filepath.Join(e.cfg.General.OutPath, rel)
}

func TestApply_RendersWithDefaults(t *testing.T) {
	env := createTestRunner(t)

	require.NoError(t, env.runner.Apply(context.Background(), Options{Yes: true}))

	content, err := os.ReadFile(env.outFile("term/term.conf"))
	require.NoError(t, err)
	assert.Equal(t, "bg=#1d1f21\nfont=Iosevka\n", string(content))
	assert.Contains(t, env.out.String(), "Fileset -> Desktop (desktop)")
	assert.Contains(t, env.out.String(), "Appearance -> none")

	_, err = os.Stat(env.cfg.ChecksumsPath())
	assert.NoError(t, err)
}

func TestApply_NoFileset(t *testing.T) {
	env := createTestRunner(t)

	err := env.runner.Apply(context.Background(), Options{Yes: true, NoDefaults: true})
	assert.ErrorIs(t, err, ErrNoFileset)
}

func TestApply_NoDefaultsSkipsOptionalKinds(t *testing.T) {
	env := createTestRunner(t)

	err := env.runner.Apply(context.Background(), Options{Yes: true, NoDefaults: true, Fileset: "desktop"})
	require.NoError(t, err)
	assert.Equal(t, "bg=\nfont=\n", readFile(t, env.outFile("term/term.conf")))
}

func TestApply_UnknownDefault(t *testing.T) {
	env := createTestRunner(t)
	env.cfg.Defaults.Colorscheme = "ghost"

	err := env.runner.Apply(context.Background(), Options{Yes: true})
	assert.ErrorIs(t, err, entity.ErrNotFound)
	_, statErr := os.Stat(env.cfg.General.OutPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestApply_RefusesModifiedOutput(t *testing.T) {
	env := createTestRunner(t)
	require.NoError(t, env.runner.Apply(context.Background(), Options{Yes: true}))

	writeFile(t, env.outFile("term/term.conf"), "my own edits", 0644)

	err := env.runner.Apply(context.Background(), Options{Yes: true})
	assert.ErrorIs(t, err, ErrModifiedOutput)
	assert.Contains(t, env.out.String(), "term/term.conf")
	assert.Equal(t, "my own edits", readFile(t, env.outFile("term/term.conf")))

	require.NoError(t, env.runner.Apply(context.Background(), Options{Yes: true, Force: true}))
	assert.Equal(t, "bg=#1d1f21\nfont=Iosevka\n", readFile(t, env.outFile("term/term.conf")))
	assert.Equal(t, "my own edits", readFile(t, filepath.Join(env.cfg.BackupPath(), "term", "term.conf")))
}

func TestApply_HooksGetOutDir(t *testing.T) {
	env := createTestRunner(t)

	err := env.runner.Apply(context.Background(), Options{Yes: true, PreHook: "ok.sh", PostHook: "ok.sh"})
	require.NoError(t, err)
	assert.Contains(t, env.out.String(), "hook saw "+env.cfg.General.OutPath)
}

func TestApply_PreHookFailureKeepsOutput(t *testing.T) {
	env := createTestRunner(t)
	require.NoError(t, env.runner.Apply(context.Background(), Options{Yes: true}))
	env.cfg.Defaults.Colorscheme = ""

	err := env.runner.Apply(context.Background(), Options{Yes: true, PreHook: "fail.sh"})
	var hookErr *HookError
	require.True(t, errors.As(err, &hookErr), "%v", err)
	assert.Equal(t, "pre", hookErr.Stage)
	assert.Equal(t, 2, hookErr.Code)
	assert.Equal(t, "bg=#1d1f21\nfont=Iosevka\n", readFile(t, env.outFile("term/term.conf")))
}

func TestApply_PostHookFailureRestoresBackup(t *testing.T) {
	env := createTestRunner(t)
	require.NoError(t, env.runner.Apply(context.Background(), Options{Yes: true}))
	env.cfg.Defaults.Colorscheme = ""

	err := env.runner.Apply(context.Background(), Options{Yes: true, PostHook: "fail.sh"})
	var hookErr *HookError
	require.True(t, errors.As(err, &hookErr), "%v", err)
	assert.Equal(t, "post", hookErr.Stage)

	assert.Equal(t, "bg=#1d1f21\nfont=Iosevka\n", readFile(t, env.outFile("term/term.conf")))
	_, statErr := os.Stat(env.cfg.BackupPath())
	assert.True(t, os.IsNotExist(statErr), "backup should have been moved back")
}

func TestApply_MissingHook(t *testing.T) {
	env := createTestRunner(t)

	err := env.runner.Apply(context.Background(), Options{Yes: true, PreHook: "ghost.sh"})
	assert.ErrorIs(t, err, hooks.ErrHookNotFound)
}

func TestApply_ConfirmDeclined(t *testing.T) {
	env := createTestRunner(t)
	asked := ""
	env.runner.Confirm = func(prompt string) (bool, error) {
		asked = prompt
		return false, nil
	}

	err := env.runner.Apply(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrAborted)
	assert.NotEmpty(t, asked)
	_, statErr := os.Stat(env.cfg.General.OutPath)
	assert.True(t, os.IsNotExist(statErr))

	// --yes skips the prompt entirely
	asked = ""
	require.NoError(t, env.runner.Apply(context.Background(), Options{Yes: true}))
	assert.Empty(t, asked)
}

func TestApply_VerbosePrintsVariables(t *testing.T) {
	env := createTestRunner(t)

	require.NoError(t, env.runner.Apply(context.Background(), Options{Yes: true, Verbose: true}))
	assert.Contains(t, env.out.String(), "Files from Desktop")
	assert.Contains(t, env.out.String(), "bg -> #1d1f21")
	assert.Contains(t, env.out.String(), "family -> Iosevka")
}

func TestSelect_ExplicitOverridesDefault(t *testing.T) {
	env := createTestRunner(t)
	writeFile(t, filepath.Join(env.cfg.General.DataPath, "fonts", "serif.toml"), `name = "Serif"`, 0644)

	sel, err := env.runner.Select(Options{Typography: "serif"})
	require.NoError(t, err)
	assert.Equal(t, "serif", sel.Typography.ID())
	assert.Equal(t, "dark", sel.Colorscheme.ID())
	assert.Nil(t, sel.Appearance)
}
