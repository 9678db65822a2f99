package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// resolvedConfig is the YAML shape printed by "garage config".
type resolvedConfig struct {
	ConfigDir      string `yaml:"config_dir"`
	Backend        string `yaml:"backend"`
	DataFile       string `yaml:"data_file"`
	HistorySize    int    `yaml:"history_size"`
	MaxScriptDepth int    `yaml:"max_script_depth"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after applying config.yaml, GARAGE_ environment variables and flags.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(flags)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(resolvedConfig{
				ConfigDir:      s.configDir,
				Backend:        s.config.Backend,
				DataFile:       s.dataFile,
				HistorySize:    s.config.HistorySize,
				MaxScriptDepth: s.config.MaxScriptDepth,
				LogLevel:       s.logLevel,
				LogFormat:      s.logFormat,
			})
			if err != nil {
				return systemError(fmt.Errorf("marshal config: %w", err))
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
