// Package logx wraps log/slog so that a nil logger silently disables logging.
package logx

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	errorsGo "github.com/go-errors/errors"
)

// Log emits msg at lvl, attributing the record to the caller skip frames up.
func Log(msg string, logger *slog.Logger, lvl slog.Level, skip int, args ...any) {
	if logger == nil || !logger.Enabled(context.Background(), lvl) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(skip, pcs[:])
	r := slog.NewRecord(time.Now(), lvl, msg, pcs[0])
	r.Add(args...)
	_ = logger.Handler().Handle(context.Background(), r)
}

func Debug(msg string, logger *slog.Logger, args ...any) {
	Log(msg, logger, slog.LevelDebug, 3, args...)
}

func Info(msg string, logger *slog.Logger, args ...any) {
	Log(msg, logger, slog.LevelInfo, 3, args...)
}

func Error(msg string, logger *slog.Logger, args ...any) {
	Log(msg, logger, slog.LevelError, 3, args...)
}

// TimeIt runs fn and logs its duration at info level.
// Failures are logged at error level and returned unchanged.
func TimeIt[T any](fn func() (T, error), msg string, logger *slog.Logger, args ...any) (T, error) {
	var ret T
	if fn == nil {
		return ret, errorsGo.New(`provided nil func`)
	}
	if len(msg) == 0 {
		msg = `duration measurement for function`
	}
	start := time.Now()
	ret, err := fn()
	args = append([]any{`duration`, time.Since(start)}, args...)
	if err != nil {
		Log(msg+` failed`, logger, slog.LevelError, 3, append(args, `error`, err.Error())...)
		return ret, err
	}
	Log(msg, logger, slog.LevelInfo, 3, args...)
	return ret, nil
}
