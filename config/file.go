package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

var ErrConfigExists = errors.New("config file already exists")

// WriteDefaultConfig writes the default config to path, or to the main
// config file inside it when path is a directory. Existing files are left alone.
func WriteDefaultConfig(path string) (string, error) {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return path, ErrConfigExists
		}
		path = filepath.Join(path, MainConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path, ErrConfigExists
		}
	}

	bb, err := json.MarshalIndent(DefaultServerConfig(), "", "  ")
	if err != nil {
		return path, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, err
	}
	return path, os.WriteFile(path, bb, 0644)
}
