package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// The shared logger. Packages grab it at init time, so InitLogger mutates
// this instance in place instead of replacing it.
var logger = logrus.New()

// InitLogger sets the level and output of the shared logger. If logFile is
// set, output goes to both stdout and a rotating file.
func InitLogger(level logrus.Level, logFile string) {
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	var out io.Writer = os.Stdout
	if logFile != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}
	logger.SetOutput(out)
}

// GetLogger returns the shared logger.
func GetLogger() *logrus.Logger {
	return logger
}
