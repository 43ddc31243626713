package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"
)

// Logger is the file-backed audit logger used for asset lifecycle events
// that must not surface as request failures (cleanup, sweeps).
type Logger struct {
	logger *log.Logger
}

func NewLogger() *Logger {
	file, err := os.OpenFile("app.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("Failed to open log file, falling back to stderr: %v", err)
		return &Logger{logger: log.New(os.Stderr, "", 0)}
	}
	return &Logger{
		logger: log.New(file, "", 0),
	}
}

// NewLoggerTo writes to the given sink instead of the log file.
func NewLoggerTo(w io.Writer) *Logger {
	return &Logger{logger: log.New(w, "", 0)}
}

func (l *Logger) Log(message string) {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file = "unknown"
		line = 0
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	l.logger.Printf("[%s] %s:%d %s\n", timestamp, file, line, message)
}

func (l *Logger) Logf(format string, args ...interface{}) {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file = "unknown"
		line = 0
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	l.logger.Printf("[%s] %s:%d %s\n", timestamp, file, line, fmt.Sprintf(format, args...))
}
