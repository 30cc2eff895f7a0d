package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/adaryorg/dotmix/internal/colors"
)

const (
	EnvConfigDir = "DOTMIX_CONFIG_DIR"
	EnvDataDir   = "DOTMIX_DATA_DIR"
	EnvColorMode = "DOTMIX_COLORMODE"

	FileName = "config.toml"
	appName  = "dotmix"
)

// ErrNoConfig is returned by Load when config.toml does not exist yet.
var ErrNoConfig = errors.New("config file not found, run `dotmix config init` first")

// ErrConfigExists is returned by CreateDefault when it would overwrite a config.
var ErrConfigExists = errors.New("config file already exists")

type Config struct {
	General  GeneralConfig  `toml:"general"`
	Colors   ColorsConfig   `toml:"colors"`
	Defaults DefaultsConfig `toml:"defaults"`
	Logging  LoggingConfig  `toml:"logging"`
}

type GeneralConfig struct {
	DataPath string `toml:"data_path"`
	OutPath  string `toml:"out_path"`
}

type ColorsConfig struct {
	ColorMode string `toml:"colormode"`
}

// DefaultsConfig holds the ids used by apply when none is given.
type DefaultsConfig struct {
	Fileset     string `toml:"fileset"`
	Colorscheme string `toml:"colorscheme"`
	Typography  string `toml:"typography"`
	Appearance  string `toml:"appearance"`
	PreHook     string `toml:"pre_hook"`
	PostHook    string `toml:"post_hook"`
}

type LoggingConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSize    int    `toml:"max_size"`
	MaxAge     int    `toml:"max_age"`
	MaxBackups int    `toml:"max_backups"`
}

// ConfigDir returns $DOTMIX_CONFIG_DIR, $XDG_CONFIG_HOME/dotmix or ~/.config/dotmix.
func ConfigDir() (string, error) {
	return dirFromEnv(EnvConfigDir, "XDG_CONFIG_HOME", ".config")
}

// DataDir returns $DOTMIX_DATA_DIR, $XDG_DATA_HOME/dotmix or ~/.local/share/dotmix.
func DataDir() (string, error) {
	return dirFromEnv(EnvDataDir, "XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func dirFromEnv(override, xdg, homeFallback string) (string, error) {
	if dir := os.Getenv(override); dir != "" {
		return dir, nil
	}
	if dir := os.Getenv(xdg); dir != "" {
		return filepath.Join(dir, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, homeFallback, appName), nil
}

// Load reads config.toml from ConfigDir.
func Load() (*Config, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(configDir, FileName))
}

// LoadFrom decodes the config file at path and fills in defaults.
func LoadFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNoConfig, configPath)
	}

	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", configPath, err)
	}

	if config.General.DataPath == "" {
		dataDir, err := DataDir()
		if err != nil {
			return nil, err
		}
		config.General.DataPath = dataDir
	}
	if config.General.OutPath == "" {
		config.General.OutPath = filepath.Join(config.General.DataPath, "out")
	}
	config.General.DataPath = expandHome(config.General.DataPath)
	config.General.OutPath = expandHome(config.General.OutPath)

	if config.Colors.ColorMode == "" {
		config.Colors.ColorMode = string(colors.ModeBase16)
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "warn"
	}
	if config.Logging.File == "" {
		config.Logging.File = filepath.Join(config.General.DataPath, "logs", "dotmix.log")
	}
	if config.Logging.MaxSize <= 0 {
		config.Logging.MaxSize = 5
	}
	if config.Logging.MaxAge <= 0 {
		config.Logging.MaxAge = 30
	}
	if config.Logging.MaxBackups <= 0 {
		config.Logging.MaxBackups = 3
	}

	return &config, nil
}

// ColorMode resolves the colormode. A valid $DOTMIX_COLORMODE wins over the
// config file.
func (c *Config) ColorMode() (colors.Mode, error) {
	if env := os.Getenv(EnvColorMode); env != "" {
		if mode, err := colors.ParseMode(env); err == nil {
			return mode, nil
		}
	}

	mode, err := colors.ParseMode(c.Colors.ColorMode)
	if err != nil {
		return "", fmt.Errorf("invalid [colors] colormode in config: %w", err)
	}
	return mode, nil
}

// Default returns the default id configured for name, one of fileset,
// colorscheme, typography, appearance, pre_hook or post_hook.
func (c *Config) Default(name string) string {
	switch name {
	case "fileset":
		return c.Defaults.Fileset
	case "colorscheme":
		return c.Defaults.Colorscheme
	case "typography":
		return c.Defaults.Typography
	case "appearance":
		return c.Defaults.Appearance
	case "pre_hook":
		return c.Defaults.PreHook
	case "post_hook":
		return c.Defaults.PostHook
	}
	return ""
}

// BackupPath is where the previous output is moved while applying.
func (c *Config) BackupPath() string {
	return filepath.Join(c.General.DataPath, ".out.backup")
}

// ChecksumsPath is the output checksum database.
func (c *Config) ChecksumsPath() string {
	return filepath.Join(c.General.DataPath, ".checksums.db")
}

// HooksPath is the directory holding pre/post hook executables.
func (c *Config) HooksPath() string {
	return filepath.Join(c.General.DataPath, "hooks")
}

// CreateDefault writes a default config.toml into configDir. An existing file
// is only replaced when force is set.
func CreateDefault(configDir, dataDir string, force bool) (string, error) {
	configPath := filepath.Join(configDir, FileName)

	if _, err := os.Stat(configPath); err == nil && !force {
		return configPath, fmt.Errorf("%w: %s", ErrConfigExists, configPath)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return configPath, err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return configPath, err
	}
	defer file.Close()

	_, err = fmt.Fprintf(file, `[general]
data_path = %q
out_path = %q

[colors]
colormode = "base16"

[defaults]
fileset = ""
colorscheme = ""
typography = ""
appearance = ""
pre_hook = ""
post_hook = ""

[logging]
level = "warn"
max_size = 5
max_age = 30
max_backups = 3
`, dataDir, filepath.Join(dataDir, "out"))

	return configPath, err
}

// ScaffoldDirs are created inside an empty data directory.
var ScaffoldDirs = []string{
	"templates",
	filepath.Join("templates", "base"),
	"colors",
	"fonts",
	"themes",
	"hooks",
}

// Scaffold creates the data directory layout. It returns false without
// touching anything when dataDir already has content.
func Scaffold(dataDir string) (bool, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return false, fmt.Errorf("failed to create data directory: %w", err)
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return false, fmt.Errorf("failed to read data directory: %w", err)
	}
	if len(entries) > 0 {
		return false, nil
	}

	for _, dir := range ScaffoldDirs {
		if err := os.MkdirAll(filepath.Join(dataDir, dir), 0755); err != nil {
			return false, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	settings := filepath.Join(dataDir, "templates", "base", "settings.toml")
	if err := os.WriteFile(settings, []byte("name = \"Base\"\n"), 0644); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", settings, err)
	}

	return true, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}
