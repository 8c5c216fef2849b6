package logger

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var (
	globalLogger zerolog.Logger
	once         sync.Once
	mu           sync.RWMutex
)

// GetLogger returns the global logger instance
func GetLogger() zerolog.Logger {
	once.Do(func() {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		mu.Lock()
		globalLogger = zerolog.New(consoleWriter).With().Timestamp().Logger().Level(zerolog.InfoLevel)
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// New constructs a zerolog logger based on level and format configuration
// and installs it as the global logger.
func New(level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, err
	}

	var writer zerolog.Logger
	switch strings.ToLower(format) {
	case "json":
		writer = zerolog.New(os.Stdout).With().Timestamp().Logger()
	case "console":
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		writer = zerolog.New(consoleWriter).With().Timestamp().Logger()
	default:
		return zerolog.Logger{}, errors.New("unsupported log format")
	}

	// mark the default as initialised so GetLogger never overwrites this one
	once.Do(func() {})

	mu.Lock()
	globalLogger = writer.Level(lvl)
	mu.Unlock()

	return GetLogger(), nil
}

// Component returns the global logger tagged with a component name
func Component(name string) zerolog.Logger {
	return GetLogger().With().Str("component", name).Logger()
}

// GinMiddleware logs one line per HTTP request
func GinMiddleware() gin.HandlerFunc {
	log := Component("HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		if status >= 500 {
			event = log.Error()
		} else if status >= 400 {
			event = log.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
