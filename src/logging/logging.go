// Package logging configures the process-wide diagnostic logger.
package logging

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup configures the standard logrus logger. Diagnostics go to stderr at
// warn level (debug when requested). When logFile is non-empty a rotated
// copy of every entry is appended there as well.
func Setup(debug bool, logFile string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	out := io.Writer(os.Stderr)
	if logFile != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // MiB per file before rotation
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}
	log.SetOutput(out)
}
