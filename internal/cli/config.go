package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/garage/internal/paths"
	"github.com/mesh-intelligence/garage/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "GARAGE"

	cfgKeyBackend        = "backend"
	cfgKeyDataFile       = "data_file"
	cfgKeyHistorySize    = "history_size"
	cfgKeyMaxScriptDepth = "max_script_depth"
	cfgKeyLogLevel       = "log_level"
	cfgKeyLogFormat      = "log_format"

	defaultLogLevel  = "warn"
	defaultLogFormat = "text"
)

// configFile is the structure written to config.yaml.
type configFile struct {
	Backend        string `yaml:"backend"`
	DataFile       string `yaml:"data_file"`
	HistorySize    int    `yaml:"history_size"`
	MaxScriptDepth int    `yaml:"max_script_depth"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
}

const configHeader = "# Garage configuration\n" +
	"# Every key can be overridden by a GARAGE_<KEY> environment variable.\n\n"

// settings is the fully resolved configuration for one run.
type settings struct {
	configDir string
	dataFile  string
	config    types.Config
	logLevel  string
	logFormat string
}

// defaultConfigFile returns config.yaml content with every default applied.
func defaultConfigFile() configFile {
	d := types.DefaultConfig()
	return configFile{
		Backend:        d.Backend,
		DataFile:       d.DataFile,
		HistorySize:    d.HistorySize,
		MaxScriptDepth: d.MaxScriptDepth,
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
	}
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// config directory and a default config.yaml on first run. Environment
// variables with the GARAGE_ prefix override file values.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	d := defaultConfigFile()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, d.Backend)
	v.SetDefault(cfgKeyDataFile, d.DataFile)
	v.SetDefault(cfgKeyHistorySize, d.HistorySize)
	v.SetDefault(cfgKeyMaxScriptDepth, d.MaxScriptDepth)
	v.SetDefault(cfgKeyLogLevel, d.LogLevel)
	v.SetDefault(cfgKeyLogFormat, d.LogFormat)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile writes a default config.yaml if the file does not
// exist in configDir.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultConfigFile()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}

// resolveSettings resolves directories, loads config.yaml and validates
// the result. Problems are user errors.
func resolveSettings(flags *rootFlags) (settings, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return settings{}, userError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return settings{}, userError(err)
	}

	cfg := types.Config{
		Backend:        v.GetString(cfgKeyBackend),
		DataFile:       v.GetString(cfgKeyDataFile),
		HistorySize:    v.GetInt(cfgKeyHistorySize),
		MaxScriptDepth: v.GetInt(cfgKeyMaxScriptDepth),
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, userError(fmt.Errorf("invalid config: %w", err))
	}

	dataFile, err := paths.ResolveDataFile(flags.dataFile, cfg.DataFile, configDir)
	if err != nil {
		return settings{}, userError(fmt.Errorf("resolve data file: %w", err))
	}

	return settings{
		configDir: configDir,
		dataFile:  dataFile,
		config:    cfg,
		logLevel:  v.GetString(cfgKeyLogLevel),
		logFormat: v.GetString(cfgKeyLogFormat),
	}, nil
}
