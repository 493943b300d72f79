package app

import "github.com/sassman/gh-pr-lander/pkg/logger"

var dispatchLog = logger.New("app:dispatcher")

// Dispatcher is a thin handle over the action queue sender. Actions
// dispatched here re-enter the middleware chain from the beginning, so one
// middleware's effects are observable by every other.
type Dispatcher struct {
	actions chan<- Action
}

// NewDispatcher wraps the action channel feeding the background worker.
func NewDispatcher(actions chan<- Action) *Dispatcher {
	return &Dispatcher{actions: actions}
}

// Dispatch enqueues an action. The channel is effectively unbounded; a
// closed channel during shutdown drops the action.
func (d *Dispatcher) Dispatch(action Action) {
	defer func() {
		if recover() != nil {
			dispatchLog.Printf("Dropped action during shutdown: %T", action)
		}
	}()
	d.actions <- action
}
