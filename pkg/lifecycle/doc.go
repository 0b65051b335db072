// Package lifecycle provides the state machine behind an application context.
//
// A context moves through Created, Starting, Running, Closing and Closed.
// Starting, Running and Closing may also move to Failed. Closed and Failed
// are terminal: a context is never restarted.
//
//	m := lifecycle.NewManager(logger, emitter)
//	if err := m.TransitionTo(lifecycle.StateStarting, "start"); err != nil {
//	    return err
//	}
//
//	// ... start workers with m.AddWorker / m.WorkerDone ...
//
//	if err := m.WaitWithTimeout(lifecycle.ShutdownTimeout); err != nil {
//	    return err
//	}
package lifecycle
