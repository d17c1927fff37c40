// Package logger wires zerolog as the application-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"

	"docstore/internal/config"
)

var (
	logger   zerolog.Logger
	initOnce sync.Once
)

// Init configures the global logger once. Development mode gets a
// human-friendly console writer; other modes emit one JSON object per line.
// When cfg.Log.FilePath is set, output is duplicated to a rotated file.
func Init(cfg *config.AppConfig) {
	initOnce.Do(func() {
		lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
		if err != nil {
			lvl = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(lvl)

		var writers []io.Writer
		if cfg.IsDevelopment() {
			writers = append(writers, zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
				w.Out = os.Stderr
				w.TimeFormat = time.Kitchen
			}))
		} else {
			writers = append(writers, os.Stderr)
		}

		if cfg.Log.FilePath != "" {
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.Log.FilePath,
				MaxSize:    cfg.Log.MaxSizeMB,
				MaxBackups: cfg.Log.MaxBackups,
				MaxAge:     cfg.Log.MaxAgeDays,
				Compress:   true,
			})
		}

		logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	})
}

// L returns the global logger. Safe to call before Init; falls back to a
// plain stderr logger so early failures are never swallowed.
func L() *zerolog.Logger {
	initOnce.Do(func() {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	})
	return &logger
}
