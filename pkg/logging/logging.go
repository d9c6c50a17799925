// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Level is the minimum level to log: trace, debug, info, warn or error.
	Level string `yaml:"level"`
	// JSON disables the human readable console output.
	JSON bool `yaml:"json"`
	// File is a log file to append to, in addition to the output.
	File string `yaml:"file"`
	// Output defaults to os.Stdout.
	Output io.Writer `yaml:"-"`
}

// Setup configures the global logger and returns it, together with a
// function closing the log file, if any.
func Setup(cfg Config) (zerolog.Logger, func() error, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if !cfg.JSON {
		out = zerolog.ConsoleWriter{Out: out}
	}

	// also output to logfile if specified
	logOutputs := []io.Writer{out}
	closeFile := func() error { return nil }
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			return zerolog.Nop(), closeFile, errors.Wrap(err, "cannot open log file")
		}
		logOutputs = append(logOutputs, f)
		closeFile = f.Close
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(logOutputs...)).
		Level(ParseLevel(cfg.Level)).
		With().Timestamp().Logger()
	log.Logger = logger
	return logger, closeFile, nil
}

// ParseLevel converts a level name. Empty or unknown names give the debug level.
func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return l
}
