// Package log wires structured logging for the datapeek CLI and any other
// consumer of the engine. The numeric core itself never logs on the hot path;
// it reports warnings through pkg/errors, which this package can route into a
// zerolog writer.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rs/zerolog"

	dperrors "github.com/datapeek/datapeek/pkg/errors"
)

// SetupLogger installs a JSON slog default logger at the given level.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
		// Rename attributes so log collectors pick up severity/message.
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
			}
			return attr
		},
	}
	handler := slog.NewJSONHandler(os.Stdout, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
}

// ToLogLevel converts a level name to a slog.Level.
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
	// ErrAttrKey is the slog attribute key holding an error value.
	ErrAttrKey = "error"
	// StacktraceAttrKey is the slog attribute key holding an extracted stacktrace.
	StacktraceAttrKey = "stacktrace"
)

// RouteEngineWarnings sends pkg/errors warnings (ConvergenceWarning and
// friends) to a zerolog logger writing to w. Warning types that implement
// zerolog.LogObjectMarshaler are logged structurally.
func RouteEngineWarnings(w io.Writer) {
	logger := zerolog.New(w).With().Timestamp().Logger()
	dperrors.SetZerologWarnFunc(func(warning error) {
		event := logger.Warn()
		if marshaler, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event.Object("warning", marshaler)
		}
		event.Msg(warning.Error())
	})
}
