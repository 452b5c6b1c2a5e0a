// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Level is a logrus level name. Empty means info.
	Level string

	// File, when set, adds a size-rotated log file next to stderr.
	File string

	// Stderr replaces os.Stderr as the console sink. Stdout is never used:
	// it carries tool protocol and result output.
	Stderr io.Writer

	NoColors bool
}

// New returns a logger writing to stderr and, optionally, a rotating file.
func New(opts Options) (*logrus.Logger, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		var err error
		level, err = logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&formatter.Formatter{
		NoColors:        opts.NoColors,
		TimestampFormat: "02 Jan 06 - 15:04:05",
		CallerFirst:     true,
		CustomCallerFormatter: func(f *runtime.Frame) string {
			s := strings.Split(f.Function, ".")
			return fmt.Sprintf(" [%s:%d][%s()]", path.Base(f.File), f.Line, s[len(s)-1])
		},
	})
	logger.SetReportCaller(true)

	console := opts.Stderr
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{console}
	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    50,
			MaxAge:     7,
			MaxBackups: 3,
		})
	}
	logger.SetOutput(io.MultiWriter(writers...))
	return logger, nil
}
