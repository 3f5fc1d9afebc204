// Package pathcfg resolves logical file keys to filesystem paths from a
// YAML configuration file.
package pathcfg

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PathConfig maps logical names to folders and files.
//
// Expected file shape:
//
//	folders:
//	  - name: data
//	    subfolders: [data/feature, data/processed]
//	files:
//	  - stocks_list_path: data/feature/stocks_list.csv
type PathConfig struct {
	Folders []Folder            `yaml:"folders"`
	Files   []map[string]string `yaml:"files"`
}

// Folder is a named folder with subfolders created on Initialize.
type Folder struct {
	Name       string   `yaml:"name"`
	Subfolders []string `yaml:"subfolders"`
}

// Load reads and parses the path configuration file.
func Load(path string) (*PathConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read path config: %w", err)
	}

	var cfg PathConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse path config: %w", err)
	}
	return &cfg, nil
}

// Initialize creates every configured subfolder and every file's parent
// directory.
func (c *PathConfig) Initialize() error {
	for _, folder := range c.Folders {
		for _, sub := range folder.Subfolders {
			if err := os.MkdirAll(sub, 0o755); err != nil {
				return fmt.Errorf("creating folder %s: %w", sub, err)
			}
		}
	}
	for _, entry := range c.Files {
		for _, filePath := range entry {
			dir := filepath.Dir(filePath)
			if dir == "." {
				continue
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating directory for %s: %w", filePath, err)
			}
		}
	}
	return nil
}

// FilePath looks up the path registered under a logical key.
func (c *PathConfig) FilePath(key string) (string, bool) {
	for _, entry := range c.Files {
		if path, ok := entry[key]; ok {
			return path, true
		}
	}
	return "", false
}
