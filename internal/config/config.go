// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config resolves and persists .fnpool/project.yaml, the file a
// working directory carries to remember its pool root, default author, and
// default language tag.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/fnpool/internal/errors"
)

const (
	defaultConfigDir  = ".fnpool"
	defaultConfigFile = "project.yaml"
	configVersion     = "1"
)

// Config is the shape of .fnpool/project.yaml.
type Config struct {
	Version         string `yaml:"version"`
	ProjectID       string `yaml:"project_id"`
	Root            string `yaml:"root"`             // pool storage root, relative to the project dir (parent of .fnpool/) unless absolute
	DefaultLanguage string `yaml:"default_language"`  // used when a CLI command omits --lang
	DefaultAuthor   string `yaml:"default_author"`    // used when a CLI command omits --author
	Exclude         []string `yaml:"exclude,omitempty"` // path patterns import-dir skips (a trailing "/**" is dropped, the rest matched as a substring)

	// ConfigPath is the path this Config was loaded from; not persisted.
	ConfigPath string `yaml:"-"`
}

// DefaultConfig returns a config with sensible defaults for a freshly
// initialized project.
func DefaultConfig(projectID string) *Config {
	return &Config{
		Version:         configVersion,
		ProjectID:       projectID,
		Root:            "pool",
		DefaultLanguage: getEnv("FNPOOL_DEFAULT_LANGUAGE", "eng"),
		DefaultAuthor:   getEnv("FNPOOL_DEFAULT_AUTHOR", ""),
		Exclude: []string{
			".git/**",
			"node_modules/**",
			"vendor/**",
			".fnpool/**",
		},
	}
}

// LoadConfig loads configuration from configPath, or finds it automatically
// by walking up from the working directory. FNPOOL_CONFIG_PATH overrides the
// search when configPath is empty; FNPOOL_ROOT overrides Root unconditionally.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = os.Getenv("FNPOOL_CONFIG_PATH")
	}
	if configPath == "" {
		var err error
		configPath, err = findConfigFile()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // path from user config or discovery
	if err != nil {
		return nil, errors.NewConfigError(
			"Cannot read configuration file",
			fmt.Sprintf("Failed to read %s", configPath),
			"Check file permissions and ensure the file exists",
			err,
		)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewConfigError(
			"Invalid configuration format",
			"YAML parsing failed - the config file contains syntax errors",
			fmt.Sprintf("Edit %s to fix syntax errors, or run 'fnpoolctl init --force' to recreate", configPath),
			err,
		)
	}

	if cfg.Version != configVersion {
		return nil, errors.NewConfigError(
			"Unsupported configuration version",
			fmt.Sprintf("Config version %q is not supported (expected %q)", cfg.Version, configVersion),
			"Run 'fnpoolctl init --force' to regenerate the configuration file",
			nil,
		)
	}

	cfg.ConfigPath = configPath
	cfg.applyEnvOverrides()
	return &cfg, nil
}

// SaveConfig writes cfg to configPath as YAML, creating the parent
// directory if needed.
func SaveConfig(cfg *Config, configPath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewInternalError(
			"Cannot encode configuration",
			"YAML marshaling failed unexpectedly",
			"This is a bug. Please report it with your configuration details",
			err,
		)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.NewPermissionError(
			"Cannot create configuration directory",
			fmt.Sprintf("Permission denied creating %s", dir),
			"Check directory permissions or run with appropriate privileges",
			err,
		)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.NewPermissionError(
			"Cannot write configuration file",
			fmt.Sprintf("Permission denied writing to %s", configPath),
			"Check file permissions and ensure sufficient disk space",
			err,
		)
	}

	return nil
}

// ConfigPath returns the path to the config file under dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, defaultConfigDir, defaultConfigFile)
}

// ConfigDir returns the .fnpool directory under dir.
func ConfigDir(dir string) string {
	return filepath.Join(dir, defaultConfigDir)
}

// StorageRoot resolves cfg.Root to an absolute path: relative roots are
// interpreted relative to the project directory, the parent of the .fnpool
// directory that holds the config file.
func (c *Config) StorageRoot() string {
	if filepath.IsAbs(c.Root) {
		return c.Root
	}
	return filepath.Join(filepath.Dir(filepath.Dir(c.ConfigPath)), c.Root)
}

func findConfigFile() (string, error) {
	if configPath := os.Getenv("FNPOOL_CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
		return "", errors.NewConfigError(
			"Configuration file not found",
			fmt.Sprintf("FNPOOL_CONFIG_PATH is set to %q but the file does not exist", configPath),
			"Fix the FNPOOL_CONFIG_PATH environment variable or run 'fnpoolctl init' to create a config",
			nil,
		)
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", errors.NewInternalError(
			"Cannot access working directory",
			"Failed to determine current directory path",
			"Check system permissions and try again",
			err,
		)
	}

	for {
		configPath := ConfigPath(dir)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.NewConfigError(
		"Configuration not found",
		"No .fnpool/project.yaml file found in current directory or any parent directory",
		"Run 'fnpoolctl init' to create a new configuration",
		nil,
	)
}

func (c *Config) applyEnvOverrides() {
	if root := os.Getenv("FNPOOL_ROOT"); root != "" {
		c.Root = root
	}
	if id := os.Getenv("FNPOOL_PROJECT_ID"); id != "" {
		c.ProjectID = id
	}
	if lang := os.Getenv("FNPOOL_DEFAULT_LANGUAGE"); lang != "" {
		c.DefaultLanguage = lang
	}
	if author := os.Getenv("FNPOOL_DEFAULT_AUTHOR"); author != "" {
		c.DefaultAuthor = author
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
