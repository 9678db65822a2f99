// Package paths resolves the configuration directory and the collection
// data file.
package paths

import (
	"os"
	"path/filepath"
)

// DefaultConfigDirName is the CWD-relative configuration directory used when
// no override is active.
const DefaultConfigDirName = ".garage"

// ConfigFileName is the configuration file inside the config directory.
const ConfigFileName = "config.yaml"

// Environment variable names for path overrides.
const (
	EnvConfigDir = "GARAGE_CONFIG_DIR"
	EnvDataFile  = "GARAGE_DATA_FILE"
)

// getwd can be overridden in tests.
var getwd = os.Getwd

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > GARAGE_CONFIG_DIR env > $(CWD)/.garage.
// The result is always absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultConfigDirName), nil
}

// ResolveDataFile returns the collection file following the precedence
// chain: flag > GARAGE_DATA_FILE env > configValue.
//
// The flag and the env value are taken relative to the working directory.
// A relative configValue is taken relative to configDir, so a config
// directory carries its data file with it.
func ResolveDataFile(flag, configValue, configDir string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvDataFile); env != "" {
		return filepath.Abs(env)
	}
	if filepath.IsAbs(configValue) {
		return filepath.Clean(configValue), nil
	}
	return filepath.Abs(filepath.Join(configDir, configValue))
}

// ConfigFile returns the path of config.yaml inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}
