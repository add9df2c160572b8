package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/programmor/pbhook/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyProjectDir = "project_dir"
	KeyEnvFile    = "env_file"
	KeyLinkDir    = "link_dir"
)

// DefaultEnvFile is the env file location, relative to the project directory,
// used when neither a flag nor the config names one.
const DefaultEnvFile = ".pbhook/env.yaml"

// Dir returns the path to the config directory (~/.pbhook/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.pbhook/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyEnvFile, DefaultEnvFile)
	viper.SetDefault(KeyLinkDir, "")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ProjectDir resolves the firmware project directory. The configured value
// wins; otherwise the host's PROJECT_DIR variable, then the fallback.
func ProjectDir(fallback string) string {
	if v := Get(KeyProjectDir); v != "" {
		return v
	}
	if v := os.Getenv("PROJECT_DIR"); v != "" {
		return v
	}
	return fallback
}

// EnvFile resolves the env file path. Relative paths are taken relative to
// the project directory.
func EnvFile(projectDir string) string {
	path := Get(KeyEnvFile)
	if path == "" {
		path = DefaultEnvFile
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectDir, path)
}

// Keys returns the settable configuration keys.
func Keys() []string {
	return []string{KeyProjectDir, KeyEnvFile, KeyLinkDir}
}
