// Package cli implements the garage command-line interface: the root
// command runs the interactive console, init prepares a config directory
// and an empty collection, config and version report settings.
package cli

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/garage/internal/collection"
	"github.com/mesh-intelligence/garage/internal/console"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error   { return &exitError{code: exitUserError, err: err} }
func systemError(err error) error { return &exitError{code: exitSysError, err: err} }

// exitCode maps an error returned by the root command to an exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataFile  string
}

// NewRootCmd creates the top-level "garage" command with global flags and
// all subcommands registered. Console input and output follow the command's
// In and Out streams; logs go to its Err stream.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "garage",
		Short: "An interactive console for a vehicle collection",
		Long: "Garage loads a vehicle collection and reads commands line by line.\n" +
			"Type help at the prompt for the list of commands.",
		Args: cobra.NoArgs,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .garage)")
	root.PersistentFlags().StringVar(&flags.dataFile, "data-file", "", "collection file (default: data_file from config.yaml)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newConfigCmd(flags))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "garage:", err)
		os.Exit(exitCode(err))
	}
}

func runConsole(cmd *cobra.Command, flags *rootFlags) error {
	s, err := resolveSettings(flags)
	if err != nil {
		return err
	}
	logger, err := newLogger(s.logLevel, s.logFormat, cmd.ErrOrStderr())
	if err != nil {
		return userError(err)
	}

	repo, closeRepo, err := openRepository(s.config.Backend, s.dataFile, logger)
	if err != nil {
		return systemError(fmt.Errorf("loading collection: %w", err))
	}
	defer closeRepo()

	store, err := collection.Open(repo)
	if err != nil {
		return systemError(fmt.Errorf("loading collection: %w", err))
	}
	logger.WithFields(log.Fields{
		"backend": s.config.Backend,
		"file":    s.dataFile,
		"count":   store.Len(),
	}).Info("collection loaded")

	c := console.New(store, cmd.InOrStdin(), cmd.OutOrStdout(),
		console.WithHistorySize(s.config.HistorySize),
		console.WithMaxScriptDepth(s.config.MaxScriptDepth),
		console.WithLogger(logger),
	)
	if err := c.Run(); err != nil {
		return systemError(err)
	}
	return nil
}
