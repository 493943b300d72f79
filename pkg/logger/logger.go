// Package logger provides scoped loggers that write to a per-run log file.
//
// Every package declares its own scoped logger at file level:
//
//	var storeLog = logger.New("app:store")
//
// All loggers share one log file under the user cache directory. Setting
// DEBUG=1 (or DEBUG=true) additionally echoes every line to stderr when
// stderr is a terminal; under redirection the file stays the single sink so
// the alternate screen isn't corrupted. The debug console view tails the
// same file, so anything logged here is visible in-app.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sassman/gh-pr-lander/pkg/tty"
)

var (
	mu      sync.Mutex
	output  io.Writer = io.Discard
	logPath string
)

// Logger is a scoped logger. The zero value is unusable; obtain one via New.
type Logger struct {
	scope string
}

// New returns a logger that prefixes every line with the given scope.
// Safe to call before Init; lines logged before Init are dropped.
func New(scope string) *Logger {
	return &Logger{scope: scope}
}

// Init opens the log file and wires all scoped loggers to it. It returns the
// log file path (used by the debug console tailer). Errors opening the file
// degrade to stderr-only logging when the stderr echo is on, and to a no-op
// otherwise.
func Init() string {
	mu.Lock()
	defer mu.Unlock()

	// Echoing is TTY-gated on top of the DEBUG switch: a redirected stderr
	// gets nothing extra, the file remains authoritative.
	echo := isDebugEnv() && tty.IsStderrTerminal()

	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	dir = filepath.Join(dir, "gh-pr-lander")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		if echo {
			output = os.Stderr
		}
		return ""
	}

	logPath = filepath.Join(dir, fmt.Sprintf("gh-pr-lander-%d.log", os.Getpid()))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logPath = ""
		if echo {
			output = os.Stderr
		}
		return ""
	}

	if echo {
		output = io.MultiWriter(file, os.Stderr)
	} else {
		output = file
	}
	return logPath
}

// Path returns the active log file path, or "" before Init.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Printf logs a formatted line under the logger's scope.
func (l *Logger) Printf(format string, args ...any) {
	mu.Lock()
	w := output
	mu.Unlock()
	if w == io.Discard {
		return
	}
	line := fmt.Sprintf(format, args...)
	log.New(w, "", log.LstdFlags).Printf("[%s] %s", l.scope, line)
}

// Print logs its arguments under the logger's scope.
func (l *Logger) Print(args ...any) {
	l.Printf("%s", fmt.Sprint(args...))
}

func isDebugEnv() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("DEBUG")))
	return v == "1" || v == "true"
}
