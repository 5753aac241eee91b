package internal

import (
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Logger is a structured logger tagged with the kind and the name
// of the component that owns it.
type Logger struct {
	*slog.Logger

	kind string
	name string
}

// NewTerminalHandler returns a colored handler writing to stderr,
// colors are disabled when stderr is not a terminal.
func NewTerminalHandler(level slog.Leveler) slog.Handler {
	if runtime.GOOS == "windows" {
		return NewTextHandler(colorable.NewColorableStderr(), level, false)
	}

	w := os.Stderr
	return NewTextHandler(w, level, !isatty.IsTerminal(w.Fd()))
}

// NewTextHandler returns a tint handler writing to w.
func NewTextHandler(w io.Writer, level slog.Leveler, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:   level,
		NoColor: noColor,
	})
}

func NewLogger(kind, name string) *Logger {
	return NewLoggerWithHandler(kind, name, NewTerminalHandler(slog.LevelInfo))
}

func NewLoggerWithHandler(kind, name string, handler slog.Handler) *Logger {
	info := slog.Group("info", slog.String("kind", kind), slog.String("name", name))

	return &Logger{
		Logger: slog.New(handler).With(info),

		kind: kind,
		name: name,
	}
}

func (l *Logger) Kind() string {
	return l.kind
}

func (l *Logger) Name() string {
	return l.name
}

func (l *Logger) Error(msg string, err error, args ...any) {
	l.Logger.Error(msg, append([]any{tint.Err(err)}, args...)...)
}
