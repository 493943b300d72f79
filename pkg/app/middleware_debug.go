package app

import (
	"bufio"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var debugLog = logger.New("app:debugconsole")

// DebugConsoleMiddleware tails the application log file (fsnotify-driven)
// and feeds new lines into the console ring.
type DebugConsoleMiddleware struct {
	logPath string

	mu      sync.Mutex
	started bool
	offset  int64
}

// NewDebugConsoleMiddleware tails the given log file; an empty path
// disables the tailer.
func NewDebugConsoleMiddleware(logPath string) *DebugConsoleMiddleware {
	return &DebugConsoleMiddleware{logPath: logPath}
}

func (m *DebugConsoleMiddleware) Handle(action Action, _ *AppState, dispatcher *Dispatcher) bool {
	if _, ok := action.(BootstrapStart); ok {
		m.start(dispatcher)
	}
	return true
}

func (m *DebugConsoleMiddleware) start(dispatcher *Dispatcher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started || m.logPath == "" {
		return
	}
	m.started = true

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		debugLog.Printf("Log watcher unavailable: %v", err)
		return
	}
	if err := watcher.Add(m.logPath); err != nil {
		debugLog.Printf("Cannot watch %s: %v", m.logPath, err)
		watcher.Close()
		return
	}

	// Deliver what already exists, then follow writes.
	m.drain(dispatcher)
	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) {
					m.drain(dispatcher)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				debugLog.Printf("Log watcher error: %v", err)
			}
		}
	}()
}

// drain reads new lines past the saved offset and dispatches them.
func (m *DebugConsoleMiddleware) drain(dispatcher *Dispatcher) {
	m.mu.Lock()
	offset := m.offset
	m.mu.Unlock()

	file, err := os.Open(m.logPath)
	if err != nil {
		return
	}
	defer file.Close()
	if _, err := file.Seek(offset, 0); err != nil {
		return
	}

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	newOffset, _ := file.Seek(0, 1)

	m.mu.Lock()
	m.offset = newOffset
	m.mu.Unlock()

	if len(lines) > 0 {
		dispatcher.Dispatch(DebugConsoleAppend{Lines: lines})
	}
}
