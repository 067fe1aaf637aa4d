package config

import (
	"os"
	"path/filepath"
)

// Dir returns the configuration directory path (~/.config/vocabmark).
// It can be overridden with the VOCABMARK_CONFIG_DIR environment variable.
func Dir() string {
	if d := os.Getenv("VOCABMARK_CONFIG_DIR"); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "vocabmark")
	}
	return filepath.Join(home, ".config", "vocabmark")
}

// DataDir returns the default directory for the note store.
func DataDir() string {
	return filepath.Join(Dir(), "data")
}

// ConfigFile returns the path to the config.yaml file.
func ConfigFile() string {
	return filepath.Join(Dir(), "config.yaml")
}

// LogFile returns the default log file path.
func LogFile() string {
	return filepath.Join(Dir(), "vocabmark.log")
}
