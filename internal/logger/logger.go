package logger

import (
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

// Setup initializes Logrus to write to stdout and, when file is non-empty,
// to a rotating log file. It returns the writer so other loggers can share it.
func Setup(file, level string) io.Writer {
	var out io.Writer = os.Stdout
	if file != "" {
		// 1) Lumberjack for file rotation
		rotator := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 7,
			MaxAge:     7, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotator)
	}

	// 2) Configure Logrus to write there
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithError(err).Warnf("unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	return out
}

// GormLogger routes GORM's SQL and slow-query logging through Logrus.
// SQL statements are only traced at debug level.
func GormLogger() gormlogger.Interface {
	lvl := gormlogger.Warn
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		lvl = gormlogger.Info
	}
	return gormlogger.New(logrus.StandardLogger(), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
