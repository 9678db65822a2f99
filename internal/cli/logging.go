package cli

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// newLogger builds the process logger. format is "text" or "json".
func newLogger(level, format string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}

	logger := log.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)

	switch format {
	case "text":
		logger.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return nil, fmt.Errorf("log_format: unknown format %q (want text or json)", format)
	}
	return logger, nil
}
