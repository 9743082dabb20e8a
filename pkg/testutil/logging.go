package testutil

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func init() {
	var isVerbose bool
	for _, arg := range os.Args {
		if arg == "-test.v=true" {
			isVerbose = true
		}
	}

	logrus.SetLevel(logrus.TraceLevel)

	if !isVerbose {
		logrus.StandardLogger().Out = io.Discard
	}
}

// CaptureLogs records every entry logged to the standard logger until reset
// is called.
func CaptureLogs() (hook *test.Hook, reset func()) {
	logger := logrus.StandardLogger()
	originalHooks := make(logrus.LevelHooks)
	for level, hooks := range logger.Hooks {
		originalHooks[level] = append(originalHooks[level], hooks...)
	}

	hook = test.NewLocal(logger)
	return hook, func() {
		logger.ReplaceHooks(originalHooks)
	}
}
