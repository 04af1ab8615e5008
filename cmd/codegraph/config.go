package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFileName is looked up in the project root. A missing file is not an
// error; flags then provide all settings.
const configFileName = ".codegraph.yml"

// ProjectConfig holds per-project defaults. Flags override Languages and
// extend Exclude.
type ProjectConfig struct {
	Languages []string `yaml:"languages"`
	Exclude   []string `yaml:"exclude"`
}

// loadProjectConfig reads .codegraph.yml from root if present.
func loadProjectConfig(root string) (ProjectConfig, error) {
	var cfg ProjectConfig
	data, err := os.ReadFile(filepath.Join(root, configFileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", configFileName, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", configFileName, err)
	}
	return cfg, nil
}
