// Package config loads, normalizes, and validates lexis configuration.
//
// Settings come from a TOML file (explicit path, ~/.config/lexis/config.toml,
// or ./lexis.toml) layered over built-in defaults. The category table maps
// each category name either to a set of 20 Newsgroups groups or to a
// directory of documents.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Paths contains directory configuration.
type Paths struct {
	DataDir      string `toml:"data_dir" validate:"required"`
	DocumentsDir string `toml:"documents_dir"`
}

// Dataset configures the 20 Newsgroups fetcher.
type Dataset struct {
	URL    string   `toml:"url" validate:"required,url"`
	Subset string   `toml:"subset" validate:"oneof=train test all"`
	Remove []string `toml:"remove" validate:"dive,oneof=headers footers quotes"`
}

// Category maps one category name to its documents. Exactly one of
// Newsgroups and Dir is set.
type Category struct {
	Newsgroups []string `toml:"newsgroups" validate:"dive,required"`
	Dir        string   `toml:"dir"`
}

// Score contains scoring defaults.
type Score struct {
	TopK  int `toml:"top_k" validate:"gte=1,lte=1000"`
	MinDF int `toml:"min_df" validate:"gte=1"`
}

// Server contains HTTP API settings.
type Server struct {
	Addr string `toml:"addr" validate:"required"`
}

// Logging contains log output settings.
type Logging struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=text json"`
}

// Config encapsulates all configuration values for lexis.
type Config struct {
	Paths      Paths               `toml:"paths"`
	Dataset    Dataset             `toml:"dataset"`
	Categories map[string]Category `toml:"categories" validate:"dive"`
	Score      Score               `toml:"score"`
	Server     Server              `toml:"server"`
	Logging    Logging             `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the per-user configuration file.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lexis/config.toml")
}

// Load locates, parses, normalizes, and validates a configuration file. A
// missing file is not an error; defaults are used. It returns the resolved
// path and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

// Parse decodes TOML data over the defaults, then normalizes and validates.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("lexis.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// StorePath returns the SQLite file holding imported dataset documents.
func (c *Config) StorePath() string {
	return filepath.Join(c.Paths.DataDir, "newsgroups.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath applies the configuration path rules (tilde, absolute, clean).
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
