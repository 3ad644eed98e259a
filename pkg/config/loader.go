package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrInvalidJSON  = errors.New("invalid JSON syntax")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
	ErrEmptyFile    = errors.New("configuration file is empty")
)

// LoadServerConfiguration reads a ServerConfiguration from a JSON or YAML
// file, auto-detected by extension. Fields not present in the file keep
// their defaults.
func LoadServerConfiguration(path string) (*ServerConfiguration, error) {
	cfg := DefaultServerConfiguration()
	if err := readConfigFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readConfigFile reads and decodes path into out. Format is detected by
// extension (.yaml/.yml for YAML, otherwise JSON).
func readConfigFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		return nil
	}

	if !json.Valid(data) {
		return fmt.Errorf("%w in file: %s", ErrInvalidJSON, path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}
