package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/appadmin/pkg/env"
	"github.com/bft-labs/appadmin/pkg/httpserver"
	"github.com/bft-labs/appadmin/pkg/lifecycle"
	"github.com/bft-labs/appadmin/pkg/log"
)

// Errors returned by Start and Close.
var (
	ErrNotRunning      = lifecycle.ErrNotRunning
	ErrAlreadyRunning  = lifecycle.ErrAlreadyRunning
	ErrShutdownTimeout = lifecycle.ErrShutdownTimeout
)

// Context is an application context.
type Context struct {
	id     string
	name   string
	parent *Context
	env    *env.Environment
	base   log.Logger
	logger log.Logger

	webAddr         string
	webHandler      http.Handler
	web             *httpserver.Server
	shutdownTimeout time.Duration

	lifecycle *lifecycle.DefaultManager
	startedAt time.Time

	mu        sync.RWMutex
	listeners listeners

	done     chan struct{}
	doneOnce sync.Once
}

// Option configures a Context.
type Option func(*Context)

// WithEnvironment sets the context's environment.
func WithEnvironment(e *env.Environment) Option {
	return func(c *Context) { c.env = e }
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// WithWebServer makes the context serve handler on addr while running. A
// nil handler answers 404 to every request.
func WithWebServer(addr string, handler http.Handler) Option {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	return func(c *Context) {
		c.webAddr = addr
		c.webHandler = handler
	}
}

// WithShutdownTimeout bounds how long Close waits for background work.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *Context) { c.shutdownTimeout = d }
}

// WithID overrides the generated context ID.
func WithID(id string) Option {
	return func(c *Context) { c.id = id }
}

// New creates a context in the Created state.
func New(name string, opts ...Option) *Context {
	return newContext(name, nil, opts)
}

// NewChild creates a context whose events also reach c's listeners. Unless
// an environment is given, the child gets an empty environment that falls
// back to c's.
func (c *Context) NewChild(name string, opts ...Option) *Context {
	return newContext(name, c, opts)
}

func newContext(name string, parent *Context, opts []Option) *Context {
	c := &Context{
		id:              uuid.NewString(),
		name:            name,
		parent:          parent,
		shutdownTimeout: lifecycle.ShutdownTimeout,
		done:            make(chan struct{}),
	}
	if parent != nil {
		c.logger = parent.base
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.NewNoopLogger()
	}
	c.base = c.logger
	if c.env == nil {
		if parent != nil {
			c.env = env.New(parent.env.AsSource("parent [" + parent.name + "]"))
		} else {
			c.env = env.NewStandard()
		}
	}
	c.logger = log.With(c.logger, log.String("context", c.name), log.String("context_id", c.id))
	if c.webHandler != nil {
		c.web = httpserver.New("web server", c.webAddr, c.webHandler, c.logger)
	}
	c.lifecycle = lifecycle.NewManager(c.logger, c)
	return c
}

// ID returns the context's unique identifier.
func (c *Context) ID() string { return c.id }

// Name returns the display name.
func (c *Context) Name() string { return c.name }

// Parent returns the parent context, or nil.
func (c *Context) Parent() *Context { return c.parent }

// Environment returns the context's environment.
func (c *Context) Environment() *env.Environment { return c.env }

// State returns the current lifecycle state.
func (c *Context) State() lifecycle.State { return c.lifecycle.State() }

// Done is closed once the context reaches a terminal state.
func (c *Context) Done() <-chan struct{} { return c.done }

// OnStateChange implements lifecycle.EventEmitter.
func (c *Context) OnStateChange(previous, current lifecycle.State, reason string) {
	c.logger.Info("application context "+current.String(),
		log.String("previous", previous.String()),
		log.String("reason", reason),
	)
}

// Start starts the context. The context closes itself when ctx is
// cancelled.
func (c *Context) Start(ctx context.Context) error {
	if err := c.lifecycle.TransitionTo(lifecycle.StateStarting, "start requested"); err != nil {
		return err
	}
	c.startedAt = time.Now()

	runCtx, cancel := context.WithCancel(ctx)
	c.lifecycle.SetCancel(cancel)

	if c.web != nil {
		addr, err := c.web.Listen()
		if err != nil {
			c.fail(fmt.Errorf("start web server: %w", err))
			return err
		}
		c.lifecycle.AddWorker()
		go func() {
			defer c.lifecycle.WorkerDone()
			if err := c.web.Start(runCtx); err != nil {
				c.logger.Error("web server failed", log.Err(err))
			}
		}()
		c.publishWebServerInitialized(WebServerInitializedEvent{ContextID: c.id, Addr: addr})
	}

	if c.parent != nil {
		c.publishParentContextAvailable(ParentContextAvailableEvent{ContextID: c.id, ParentID: c.parent.id})
	}

	if err := c.lifecycle.TransitionTo(lifecycle.StateRunning, "started"); err != nil {
		// closed while starting
		return err
	}
	c.publishReady(ReadyEvent{ContextID: c.id, TimeTaken: time.Since(c.startedAt)})

	go func() {
		<-runCtx.Done()
		if err := c.Close(); err != nil && !errors.Is(err, ErrNotRunning) {
			c.logger.Warn("close on cancellation failed", log.Err(err))
		}
	}()
	return nil
}

// Close stops the web server, waits for background work and moves the
// context to Closed. Closing a context that is not starting or running
// returns ErrNotRunning.
func (c *Context) Close() error {
	if !c.lifecycle.CanClose() {
		return ErrNotRunning
	}
	if err := c.lifecycle.TransitionTo(lifecycle.StateClosing, "close requested"); err != nil {
		// lost a race with another Close
		return ErrNotRunning
	}

	c.lifecycle.Cancel()
	if err := c.lifecycle.WaitWithTimeout(c.shutdownTimeout); err != nil {
		c.fail(err)
		return err
	}

	_ = c.lifecycle.TransitionTo(lifecycle.StateClosed, "closed")
	c.doneOnce.Do(func() { close(c.done) })
	c.publishClosed(ClosedEvent{ContextID: c.id})
	return nil
}

func (c *Context) fail(err error) {
	c.lifecycle.Cancel()
	_ = c.lifecycle.TransitionTo(lifecycle.StateFailed, err.Error())
	c.doneOnce.Do(func() { close(c.done) })
	c.publishClosed(ClosedEvent{ContextID: c.id, Err: err})
}
