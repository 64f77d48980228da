package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogFileMaxSizeMB  = 50
	defaultLogFileMaxBackups = 5
	defaultLogFileMaxAgeDays = 28
)

// Options mirrors the persistent logging flags of the CLI.
type Options struct {
	Level  string
	JSON   bool
	Source bool
	// File, when set, receives a copy of every entry and is rotated by size.
	File string
}

// Setup builds the process logger from CLI options and installs it as the
// fallback returned by FromContext.
func Setup(opts Options) Logger {
	level := LogLevel(opts.Level)
	switch level {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, DisabledLevel:
	default:
		level = InfoLevel
	}
	var out io.Writer = os.Stdout
	if opts.File != "" {
		out = io.MultiWriter(os.Stdout, newRotatingFile(opts.File))
	}
	return Init(&Config{
		Level:      level,
		Output:     out,
		JSON:       opts.JSON,
		AddSource:  opts.Source,
		TimeFormat: "15:04:05",
	})
}

func newRotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    defaultLogFileMaxSizeMB,
		MaxBackups: defaultLogFileMaxBackups,
		MaxAge:     defaultLogFileMaxAgeDays,
		Compress:   true,
	}
}

func GetLoggerOptions(cmd *cobra.Command) (Options, error) {
	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return Options{}, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return Options{}, fmt.Errorf("failed to get log-json flag: %w", err)
	}
	logSource, err := cmd.Flags().GetBool("log-source")
	if err != nil {
		return Options{}, fmt.Errorf("failed to get log-source flag: %w", err)
	}
	logFile, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return Options{}, fmt.Errorf("failed to get log-file flag: %w", err)
	}
	return Options{Level: logLevel, JSON: logJSON, Source: logSource, File: logFile}, nil
}
