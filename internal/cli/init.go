package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize garage storage",
		Long: "Create the configuration directory with a default config.yaml, then\n" +
			"create an empty collection at the configured data file if none exists.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}
}

func runInit(cmd *cobra.Command, flags *rootFlags) error {
	s, err := resolveSettings(flags)
	if err != nil {
		return err
	}
	logger, err := newLogger(s.logLevel, s.logFormat, cmd.ErrOrStderr())
	if err != nil {
		return userError(err)
	}

	if err := os.MkdirAll(filepath.Dir(s.dataFile), 0o755); err != nil {
		return systemError(fmt.Errorf("create data directory: %w", err))
	}
	created, err := createCollection(s.config.Backend, s.dataFile, logger)
	if err != nil {
		return systemError(fmt.Errorf("initialize storage: %w", err))
	}

	out := cmd.OutOrStdout()
	if created {
		fmt.Fprintf(out, "Created empty collection at %s\n", s.dataFile)
	} else {
		fmt.Fprintf(out, "Collection already exists at %s\n", s.dataFile)
	}
	fmt.Fprintln(out, "Garage initialized successfully")
	return nil
}
