package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

type Logger struct {
	Debug bool

	mu  sync.Mutex
	out io.Writer
}

// NewLogger writes to w, or to stdout when w is nil.
func NewLogger(w io.Writer, debug bool) *Logger {
	if w == nil {
		w = os.Stdout
	}

	return &Logger{Debug: debug, out: w}
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		l.printf("[DEBUG] ", format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.printf("[INFO] ", format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.printf("[WARN] ", format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.printf("[ERROR] ", format, args...)
}

func (l *Logger) printf(prefix, format string, args ...any) {
	msg := fmt.Sprintf(prefix+format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, msg)
}
