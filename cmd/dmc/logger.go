package main

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rgonek/delta-md-converter/converter"
)

func newLogger(w io.Writer, level string, verbose bool) (*log.Logger, error) {
	lvl := log.WarnLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		lvl = parsed
	}
	if verbose {
		lvl = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           lvl,
		Prefix:          "dmc",
	}), nil
}

func logWarnings(logger *log.Logger, warnings []converter.Warning) {
	for _, w := range warnings {
		logger.Warn("conversion warning",
			"type", w.Type,
			"element", w.Element,
			"message", w.Message)
	}
}
