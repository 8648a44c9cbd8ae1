package logger

import "gitlab.com/codeprep.net/internal/adapter/logging"

var Logger = logging.NewZapLogger()

// Use replaces the process-wide logger, e.g. with a debug logger
func Use(l *logging.ZapLogger) {
	if l != nil {
		Logger = l
	}
}

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}
