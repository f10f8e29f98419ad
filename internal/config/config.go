// Package config loads CLI defaults from a .innoconv.yml file. Flags always
// take precedence over config values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/innodoc/innoconv-mintmod/internal/fileutil"
	"github.com/innodoc/innoconv-mintmod/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// DefaultFileName is searched in the working directory and the user's home
// directory when no explicit config path is given.
const DefaultFileName = ".innoconv.yml"

// Config holds CLI defaults.
type Config struct {
	OutputDirBase   string `yaml:"output_dir"`
	Lang            string `yaml:"language"`
	InputFormat     string `yaml:"from"`
	OutputFormat    string `yaml:"to"`
	Workers         int    `yaml:"workers"`
	Debug           bool   `yaml:"debug"`
	IgnoreExercises bool   `yaml:"ignore_exercises"`
	RemoveExercises bool   `yaml:"remove_exercises"`
	NoSplit         bool   `yaml:"no_split"`
}

// Load reads the config at path. An empty path searches the default
// locations and returns a zero Config when nothing is found.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = search()
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, path)
		}
		return &Config{}, nil
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	return &cfg, nil
}

func search() string {
	if fileutil.FileExists(DefaultFileName) {
		return DefaultFileName
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultFileName)
		if fileutil.FileExists(p) {
			return p
		}
	}
	return ""
}
