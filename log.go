package deck

import (
	"io"

	"github.com/sirupsen/logrus"
)

var discard = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

// loggerOr returns l, or a logger that drops everything when l is nil.
func loggerOr(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return discard
	}
	return l
}
