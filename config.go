// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cybrota/bstree/bst"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const configFileName = ".bstree.yaml"

type TraversalConfig struct {
	DefaultOrder string `yaml:"default_order"`
}

type DemoConfig struct {
	Keys   []int `yaml:"keys"`
	Find   int   `yaml:"find"`
	Delete []int `yaml:"delete"`
}

type LoaderConfig struct {
	// Key files larger than this get a progress bar.
	ProgressThresholdBytes int64 `yaml:"progress_threshold_bytes"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Traversal TraversalConfig `yaml:"traversal"`
	Demo      DemoConfig      `yaml:"demo"`
	Loader    LoaderConfig    `yaml:"loader"`
	Log       LogConfig       `yaml:"log"`
}

func defaultConfig() *Config {
	return &Config{
		Traversal: TraversalConfig{DefaultOrder: bst.InOrder.String()},
		Demo: DemoConfig{
			Keys:   []int{4, 3, 1, 23, 9, 11},
			Find:   1,
			Delete: []int{4, 23, 1, 1},
		},
		Loader: LoaderConfig{ProgressThresholdBytes: 1 << 20},
		Log:    LogConfig{Level: "info"},
	}
}

// Validate rejects values the rest of the tool cannot use.
func (c *Config) Validate() error {
	if _, err := bst.ParseOrder(c.Traversal.DefaultOrder); err != nil {
		return fmt.Errorf("traversal.default_order: %w", err)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Loader.ProgressThresholdBytes < 0 {
		return fmt.Errorf("loader.progress_threshold_bytes must not be negative")
	}
	return nil
}

// Order returns the configured default traversal order.
func (c *Config) Order() bst.Order {
	order, err := bst.ParseOrder(c.Traversal.DefaultOrder)
	if err != nil {
		return bst.InOrder
	}
	return order
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

// LoadConfig reads path, or ~/.bstree.yaml when path is empty. A missing
// default file yields the defaults; a missing explicit file is an error.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := getConfigPath()
		if err != nil {
			return defaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	config := defaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

func writeConfigFile(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// displaySettings prints the effective settings, creating the default
// config file first when none exists yet.
func displaySettings(w io.Writer, path string) error {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "📝 Configuration file not found. Creating default configuration...\n\n")
		if err := writeConfigFile(path, defaultConfig()); err != nil {
			return err
		}
		fmt.Fprintf(w, "✅ Created default configuration at: %s\n\n", path)
	}

	config, err := LoadConfig(path)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Fprintf(w, "🔧 bstree Configuration Settings\n")
	fmt.Fprintf(w, "═══════════════════════════════\n\n")
	fmt.Fprintf(w, "📍 Config file: %s\n\n", path)
	fmt.Fprintf(w, "%s%s%s\n", Green, string(data), Reset)
	return nil
}
