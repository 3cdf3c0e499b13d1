package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger = slog.Default()

// Init configures the process-wide logger. Development gets human-readable
// text output at debug level, everything else structured JSON.
func Init(environment string) {
	var handler slog.Handler
	if environment == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func Info(msg string, args ...any) {
	log.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize accepts both slog key/value pairs and bare errors, so call
// sites can pass an error directly without naming a key.
func normalize(args []any) []any {
	out := make([]any, 0, len(args)*2)
	for i := 0; i < len(args); {
		switch v := args[i].(type) {
		case error:
			out = append(out, "error", v.Error())
			i++
		case string:
			if i+1 < len(args) {
				out = append(out, v, args[i+1])
				i += 2
			} else {
				out = append(out, "detail", v)
				i++
			}
		default:
			out = append(out, "detail", v)
			i++
		}
	}

	return out
}
