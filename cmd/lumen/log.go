package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// newLogger builds the process logger. The view command owns the
// terminal, so it only logs when --log-file is given.
func (o *options) newLogger(cmd *cobra.Command) (*log.Logger, error) {
	level, err := log.ParseLevel(o.logLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var w io.Writer = os.Stderr
	switch {
	case o.logFile != "":
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		cobra.OnFinalize(func() { f.Close() })
		w = f
	case cmd.Name() == "view":
		w = io.Discard
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "lumen",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	}), nil
}
