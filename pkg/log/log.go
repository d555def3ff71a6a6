package log

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

var logger *log.Logger

// Init opens the log file under the user config dir. The TUI owns the
// terminal, so nothing is ever written to stdout or stderr.
func Init(appName string) error {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return err
	}
	logDir := filepath.Join(configDir, appName, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logFile, err := os.OpenFile(filepath.Join(logDir, appName+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	logger = log.New(logFile, "", log.LstdFlags|log.Lshortfile)
	return nil
}

func Infof(format string, v ...any) {
	if logger != nil {
		logger.Output(2, fmt.Sprintf("[INFO] "+format, v...))
	}
}

func Warnf(format string, v ...any) {
	if logger != nil {
		logger.Output(2, fmt.Sprintf("[WARN] "+format, v...))
	}
}

func Errorf(format string, v ...any) {
	if logger != nil {
		logger.Output(2, fmt.Sprintf("[ERROR] "+format, v...))
	}
}

func Debugf(format string, v ...any) {
	if logger != nil {
		logger.Output(2, fmt.Sprintf("[DEBUG] "+format, v...))
	}
}
