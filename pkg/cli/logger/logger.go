package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	logger  = log.New(io.Discard, "[cli] ", log.LstdFlags|log.Lshortfile)
	logFile *os.File
)

// Init starts writing to dir/cli-<timestamp>.log. The TUI owns the
// terminal, so nothing is logged until Init is called. Falls back to
// stderr when the file can't be created.
func Init(dir string) {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.SetOutput(os.Stderr)
		return
	}

	name := filepath.Join(dir, fmt.Sprintf("cli-%s.log", time.Now().Format("20060102-150405")))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger.SetOutput(os.Stderr)
		return
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logger.SetOutput(f)
}

// Log writes a log message
func Log(format string, v ...any) {
	logger.Output(2, fmt.Sprintf(format, v...))
}

// LogError writes an error log message
func LogError(err error, format string, v ...any) {
	logger.Output(2, fmt.Sprintf("ERROR: %s: %v", fmt.Sprintf(format, v...), err))
}

// CloseLog closes the log file
func CloseLog() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger.SetOutput(io.Discard)
}
