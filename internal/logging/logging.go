package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the process-wide logrus logger. Production gets JSON
// lines; everything else gets human readable text.
func Setup(env, level string) {
	logrus.SetOutput(os.Stdout)

	if env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
