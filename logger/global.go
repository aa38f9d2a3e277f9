package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {

	initLogger()

}

func initLogger() {
	Logger = logrus.New()
	Logger.SetLevel(logrus.InfoLevel)
	Logger.SetFormatter(&logrus.TextFormatter{})
	Logger.SetOutput(os.Stdout)
}

// Configure sets level and format ("text" or "json") and, when file is not
// empty, tees output into that file.
func Configure(level, format, file string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	Logger.SetLevel(lvl)

	switch format {
	case "", "text":
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q", format)
	}

	if file == "" {
		Logger.SetOutput(os.Stdout)
		return nil
	}
	writerFile, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("create log file %s failed: %w", file, err)
	}
	Logger.SetOutput(io.MultiWriter(os.Stdout, writerFile))
	return nil
}

func GetLogger() *logrus.Logger {
	return Logger
}
