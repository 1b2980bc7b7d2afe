package log

import (
	"io"
	"strings"

	logrus_stack "github.com/Gurpartap/logrus-stack"
	"github.com/sirupsen/logrus"
	"github.com/ztrue/tracerr"
)

type F = map[string]interface{}

// New wraps logrus.
func New() *logrus.Logger {
	return logrus.StandardLogger()
}

// NewEntry wraps error compatible to logrus.
// The tracerr call stack, when present, is attached as the "trace" field.
func NewEntry(err error) *logrus.Entry {
	lines := strings.Split(tracerr.Sprint(err), "\n")
	if len(lines) > 1 {
		return logrus.WithField("trace", lines[1:]).WithField("error", err.Error())
	}
	return logrus.WithField("trace", nil).WithField("error", err.Error())
}

// SetJSONFormat sets log format to JSON.
func SetJSONFormat() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
}

// SetTextFormat sets log format to Text.
func SetTextFormat() {
	logrus.SetFormatter(new(logrus.TextFormatter))
}

// ShowStack appends call stack to log.
// This operation cannot be undo.
func ShowStack() {
	logrus.AddHook(logrus_stack.StandardHook())
}

// SetOutput sets log output.
// If multiple writer provided, write to all of them.
// If no writer provided, do nothing.
func SetOutput(out ...io.Writer) {
	if len(out) > 1 {
		logrus.SetOutput(io.MultiWriter(out...))
	} else if len(out) == 1 {
		logrus.SetOutput(out[0])
	}
}
