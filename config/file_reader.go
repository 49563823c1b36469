package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/realDragonium/picocraft/mc"
)

type ServerConfigReader func() (ServerConfig, error)

type StatusReader func() (mc.StatusPayload, error)

func NewServerConfigFileReader(path string) ServerConfigReader {
	return serverConfigFileReader{
		path: path,
	}.Read
}

type serverConfigFileReader struct {
	path string
}

func (reader serverConfigFileReader) Read() (ServerConfig, error) {
	return ReadServerConfig(reader.path)
}

// NewStatusFileReader reads, verifies and converts the status section of the
// config file every time it is called.
func NewStatusFileReader(path string) StatusReader {
	readConfig := NewServerConfigFileReader(path)
	return func() (mc.StatusPayload, error) {
		cfg, err := readConfig()
		if err != nil {
			return mc.StatusPayload{}, err
		}
		if err := VerifyConfig(cfg); err != nil {
			return mc.StatusPayload{}, err
		}
		return cfg.Status.Payload(filepath.Dir(cfg.FilePath))
	}
}

// ReadServerConfig overlays the file at path on top of the defaults. When
// path is a directory the main config file inside of it is used, an empty
// path returns the defaults.
func ReadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return cfg, err
	}
	if info.IsDir() {
		path = filepath.Join(path, MainConfigFileName)
	}

	bb, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(bb, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.FilePath = path
	return cfg, nil
}
