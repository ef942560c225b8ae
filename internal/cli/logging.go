package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/timmybird/fogis-reporter/pkg/logger"
)

const logFilePermission = 0600

// SetupLogging initialises the global logger on stderr and, when logFile is
// set, mirrors every entry into that file. The returned func closes the file.
func SetupLogging(logFile string, jsonOutput bool) (func() error, error) {
	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return closeFn, fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, file)
		closeFn = file.Close
	}

	if err := logger.Init(logger.WithWriter(w), logger.WithJSON(jsonOutput)); err != nil {
		_ = closeFn()
		return func() error { return nil }, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if logFile != "" {
		logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	}
	return closeFn, nil
}
