package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// CommentFormatter renders every log line with a leading "# ". Consumers
// of --print-environment eval the process output, so any line a diagnostic
// emits must parse as a shell comment.
type CommentFormatter struct {
	ShowLevel bool
}

// Format renders a single log entry.
func (f *CommentFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# ")

	if f.ShowLevel {
		levelStr := entry.Level.String()
		if levelStr == "warning" {
			levelStr = "warn"
		}
		b.WriteString(fmt.Sprintf("[%s] ", strings.ToUpper(levelStr)))
	}

	b.WriteString(entry.Message)

	for key, value := range entry.Data {
		b.WriteString(fmt.Sprintf(" %s=%v", key, value))
	}

	b.WriteString("\n")
	return []byte(b.String()), nil
}
