package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LogFilePath returns <logsDir>/<appName>.<yyyymmdd_hhmmss>.log.
func LogFilePath(logsDir, appName string, sessionStart time.Time) string {
	name := fmt.Sprintf("%s.%s.log", appName, sessionStart.Format("20060102_150405"))
	return filepath.Join(logsDir, name)
}

// OpenLogFile creates logsDir if needed and opens the session log for
// appending. A log left by a session that started in the same second is
// moved aside to <path>.old first.
func OpenLogFile(logsDir, appName string, sessionStart time.Time) (*os.File, error) {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs dir: %w", err)
	}
	path := LogFilePath(logsDir, appName, sessionStart)
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".old"); err != nil {
			return nil, fmt.Errorf("failed to move old log aside: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
