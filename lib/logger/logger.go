package logger

import (
	"context"
	"os"

	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

// Config stores the logging setup parsed from CLI flags.
type Config struct {
	// Output is "stderr", "stdout" or a file path
	Output string
	// Severity is a logrus level name
	Severity string
}

type contextKey struct{}

// Init applies the default formatter suitable for interactive CLI usage.
func Init() {
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	log.SetOutput(os.Stderr)
}

// Setup reconfigures the standard logger according to conf.
func Setup(conf Config) error {
	switch conf.Output {
	case "", "stderr":
		log.SetOutput(os.Stderr)
	case "stdout":
		log.SetOutput(os.Stdout)
	default:
		file, err := os.OpenFile(conf.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
		if err != nil {
			return trace.Wrap(err)
		}
		log.SetOutput(file)
	}

	if conf.Severity != "" {
		level, err := log.ParseLevel(conf.Severity)
		if err != nil {
			return trace.Wrap(err)
		}
		log.SetLevel(level)
	}

	return nil
}

// Standard returns the process-wide logger.
func Standard() log.FieldLogger {
	return log.StandardLogger()
}

// Get returns the logger carried by ctx, falling back to the standard one.
func Get(ctx context.Context) log.FieldLogger {
	if logger, ok := ctx.Value(contextKey{}).(log.FieldLogger); ok && logger != nil {
		return logger
	}
	return Standard()
}

// With returns a context carrying the given logger.
func With(ctx context.Context, logger log.FieldLogger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// WithField returns a context whose logger has an extra field set.
func WithField(ctx context.Context, key string, value interface{}) (context.Context, log.FieldLogger) {
	logger := Get(ctx).WithField(key, value)
	return With(ctx, logger), logger
}
