package app

import (
	"time"

	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var backgroundLog = logger.New("app:background")

// Middleware observes actions on the background worker before they reach the
// reducer. Returning false consumes the action: it reaches neither further
// middleware nor the reducer. Middleware may dispatch follow-up actions,
// which re-enter at the front of the chain, and may block on I/O; rendering
// never blocks on it.
type Middleware interface {
	Handle(action Action, state *AppState, dispatcher *Dispatcher) bool
}

// tickRate drives the splash animation while bootstrapping.
const tickRate = 150 * time.Millisecond

// RunBackgroundWorker drains the action queue through the middleware chain
// on a single goroutine and forwards unconsumed actions to the result queue.
// The dispatcher must feed the same queue so dispatched actions re-enter the
// chain. Events are never forwarded (observers only). On GlobalQuit the quit
// action is forwarded so the reducer flips running, then the worker exits.
func RunBackgroundWorker(
	actions <-chan Action,
	dispatcher *Dispatcher,
	results chan<- Action,
	shared *SharedState,
	middleware []Middleware,
) {
	backgroundLog.Printf("Background worker started")
	bootstrapping := true
	lastTick := time.Now()
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case action, ok := <-actions:
			if !ok {
				backgroundLog.Printf("Action channel closed, shutting down")
				return
			}

			if _, quit := action.(GlobalQuit); quit {
				backgroundLog.Printf("Background worker received shutdown signal")
				results <- action
				return
			}
			if _, end := action.(BootstrapEnd); end {
				bootstrapping = false
			}

			snapshot := shared.Snapshot()
			consumed := false
			for _, mw := range middleware {
				if !mw.Handle(action, &snapshot, dispatcher) {
					consumed = true
					break
				}
			}

			// Events are observer-only; forwarding one would loop it back
			// through the middleware via the UI thread's re-routing.
			if _, isEvent := action.(EventAction); consumed || isEvent {
				continue
			}
			results <- action

		case <-ticker.C:
			if bootstrapping && time.Since(lastTick) >= tickRate {
				results <- GlobalTick{}
				lastTick = time.Now()
			}
		}
	}
}
