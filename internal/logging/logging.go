// Package logging configures the diagnostic logger. Loop progress lines are
// written separately; this logger carries warnings and startup details.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/LISSConsulting/flapper/internal/config"
)

// New builds a logger from cfg. Output goes to console unless cfg.File is
// set, in which case it goes to a size-rotated file. The returned closer
// releases the file and is safe to call when no file is open.
func New(cfg config.LogConfig, console io.Writer) (*logrus.Logger, io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: %w", err)
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if cfg.File == "" {
		logger.SetOutput(console)
		return logger, nopCloser{}, nil
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
	logger.SetOutput(file)
	return logger, file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
