package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	processLogPrefix = "download-"
	processLogDate   = "20060102"
	logTimestamp     = "2006-01-02 15:04:05"

	sectionEnd = "=== END ==="
)

// ProcessLogPath returns the download log path for a given day.
// Raw downloader output (stdout and stderr) for that day is appended there.
func ProcessLogPath(logsDir string, date time.Time) string {
	return filepath.Join(logsDir, processLogPrefix+date.Format(processLogDate)+".log")
}

// OpenProcessLog opens today's download log for appending
func OpenProcessLog(logsDir string) (*os.File, error) {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}
	return os.OpenFile(ProcessLogPath(logsDir, time.Now()), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// WriteProcessLogHeader writes the download start marker
func WriteProcessLogHeader(w io.Writer, runID, cmdLine string) {
	timestamp := time.Now().Format(logTimestamp)
	fmt.Fprintf(w, "\n=== [%s] Download: %s ===\n", timestamp, runID)
	fmt.Fprintf(w, "$ %s\n", cmdLine)
}

// WriteProcessLogFooter writes the download end marker
func WriteProcessLogFooter(w io.Writer, success bool, message string) {
	timestamp := time.Now().Format(logTimestamp)
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	fmt.Fprintf(w, "[%s] %s: %s\n", timestamp, status, message)
	fmt.Fprintf(w, "%s\n\n", sectionEnd)
}
