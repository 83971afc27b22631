package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
)

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = NewZerologLogger(os.Stderr, LevelWarn)
)

// GetLogger returns the package-wide default logger.
func GetLogger() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetLogger replaces the package-wide default logger. A nil logger is ignored.
func SetLogger(l Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// GetLoggerWithName returns the default logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// SetupLogger function setup logger.
func SetupLogger(loglevel string) {
	handler := newCloudHandler(os.Stdout, ToLogLevel(loglevel))
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
	SetLogger(NewSlogLogger(errFmtHandler))
}

// Setup installs the default logger for the given level and format and routes
// warnings from pkg/errors through it.
//
// Formats:
//   - "json": zerolog JSON lines
//   - "console": zerolog human-readable console output
//   - "cloud": slog JSON in Cloud Logging layout with stack traces
func Setup(w io.Writer, level, format string) (Logger, error) {
	lv, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var l Logger
	switch format {
	case "json", "":
		l = NewZerologLogger(w, lv)
	case "console":
		l = NewZerologLogger(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}, lv)
	case "cloud":
		l = NewSlogLogger(WrapByErrFmtHandler(newCloudHandler(w, slog.Level(lv))))
	default:
		return nil, fmt.Errorf("invalid log format: %q", format)
	}

	SetLogger(l)
	errors.SetZerologWarnFunc(func(warning error) {
		GetLogger().Warn(warning.Error(), ErrAttrKey, warning)
	})
	return l, nil
}

func newCloudHandler(w io.Writer, level slog.Level) slog.Handler {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     level,
		// Replace attributes to convert to CloudLogging format.
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{
					Key:   "severity",
					Value: attr.Value,
				}
			case slog.MessageKey:
				attr = slog.Attr{
					Key:   "message",
					Value: attr.Value,
				}
			case slog.SourceKey:
				attr = slog.Attr{
					Key:   "logging.googleapis.com/sourceLocation",
					Value: attr.Value,
				}
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &ops)
}

func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// normalizeFields は先頭に error 単体が渡された場合に ErrAttrKey を補います。
func normalizeFields(fields []any) []any {
	if len(fields)%2 == 1 {
		if err, ok := fields[0].(error); ok {
			out := make([]any, 0, len(fields)+1)
			out = append(out, ErrAttrKey, err)
			return append(out, fields[1:]...)
		}
	}
	return fields
}
