package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/lmittmann/tint"
)

// Options select the handler behind the package logger.
type Options struct {
	Writer io.Writer
	// Format is "json" (default) or "text" for colored console output.
	Format string
	Level  string
}

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

// Setup installs the process-wide logger and returns it.
func Setup(o Options) *slog.Logger {
	if o.Writer == nil {
		o.Writer = os.Stdout
	}
	level := parseLevel(o.Level)
	var h slog.Handler
	if strings.EqualFold(o.Format, "text") {
		h = tint.NewHandler(o.Writer, &tint.Options{Level: level, TimeFormat: "2006-01-02 15:04:05"})
	} else {
		h = slog.NewJSONHandler(o.Writer, &slog.HandlerOptions{Level: level})
	}
	l := slog.New(h)
	current.Store(l)
	return l
}

// L returns the logger for code that runs outside a request.
func L() *slog.Logger { return current.Load() }

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func write(level slog.Level, kind string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	attrs := []slog.Attr{slog.String("kind", kind), slog.String("action", action)}
	if c != nil {
		attrs = append(attrs,
			slog.String("ip", c.IP()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			attrs = append(attrs, slog.String("req_id", rid))
		}
		if uid, ok := c.Locals("user_id").(string); ok && uid != "" {
			attrs = append(attrs, slog.String("user_id", uid))
		}
	}
	if err != nil {
		attrs = append(attrs, slog.String("err", err.Error()))
	}
	if len(fields) > 0 {
		fa := make([]any, 0, len(fields))
		for k, v := range fields {
			fa = append(fa, slog.Any(k, v))
		}
		attrs = append(attrs, slog.Group("fields", fa...))
	}
	L().LogAttrs(ctxOf(c), level, action, attrs...)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(slog.LevelInfo, "info", c, action, nil, fields)
}
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(slog.LevelInfo, "audit", c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(slog.LevelWarn, "security", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(slog.LevelError, "error", c, action, err, fields)
}

// AccessWriter adapts line-oriented access logs (Fiber's logger middleware)
// to the package logger, one "http.access" entry per written line.
func AccessWriter() io.Writer { return accessWriter{} }

type accessWriter struct{}

func (accessWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSpace(string(p)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			L().LogAttrs(context.Background(), slog.LevelInfo, "http.access",
				slog.String("kind", "access"), slog.String("action", "http.access"), slog.String("line", line))
		}
	}
	return len(p), nil
}

func ctxOf(c *fiber.Ctx) context.Context {
	if c == nil {
		return context.Background()
	}
	return c.UserContext()
}
