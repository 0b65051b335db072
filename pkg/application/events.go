package application

import (
	"net"
	"time"
)

// ReadyEvent is published once a context has started and is ready to
// serve.
type ReadyEvent struct {
	ContextID string
	TimeTaken time.Duration
}

// WebServerInitializedEvent is published once a context's embedded web
// server is listening.
type WebServerInitializedEvent struct {
	ContextID string
	Addr      net.Addr
}

// ParentContextAvailableEvent is published by a child context during start.
type ParentContextAvailableEvent struct {
	ContextID string
	ParentID  string
}

// ClosedEvent is published after a context has closed.
type ClosedEvent struct {
	ContextID string
	Err       error
}

type listeners struct {
	ready  []func(ReadyEvent)
	web    []func(WebServerInitializedEvent)
	parent []func(ParentContextAvailableEvent)
	closed []func(ClosedEvent)
}

// OnReady subscribes fn to ReadyEvents of this context and its children.
func (c *Context) OnReady(fn func(ReadyEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners.ready = append(c.listeners.ready, fn)
}

// OnWebServerInitialized subscribes fn to WebServerInitializedEvents of this
// context and its children.
func (c *Context) OnWebServerInitialized(fn func(WebServerInitializedEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners.web = append(c.listeners.web, fn)
}

// OnParentContextAvailable subscribes fn to ParentContextAvailableEvents of
// this context and its children.
func (c *Context) OnParentContextAvailable(fn func(ParentContextAvailableEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners.parent = append(c.listeners.parent, fn)
}

// OnClosed subscribes fn to ClosedEvents of this context and its children.
func (c *Context) OnClosed(fn func(ClosedEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners.closed = append(c.listeners.closed, fn)
}

// Events propagate to the parent after local listeners run.

func (c *Context) publishReady(ev ReadyEvent) {
	c.mu.RLock()
	fns := append(([]func(ReadyEvent))(nil), c.listeners.ready...)
	c.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
	if c.parent != nil {
		c.parent.publishReady(ev)
	}
}

func (c *Context) publishWebServerInitialized(ev WebServerInitializedEvent) {
	c.mu.RLock()
	fns := append(([]func(WebServerInitializedEvent))(nil), c.listeners.web...)
	c.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
	if c.parent != nil {
		c.parent.publishWebServerInitialized(ev)
	}
}

func (c *Context) publishParentContextAvailable(ev ParentContextAvailableEvent) {
	c.mu.RLock()
	fns := append(([]func(ParentContextAvailableEvent))(nil), c.listeners.parent...)
	c.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
	if c.parent != nil {
		c.parent.publishParentContextAvailable(ev)
	}
}

func (c *Context) publishClosed(ev ClosedEvent) {
	c.mu.RLock()
	fns := append(([]func(ClosedEvent))(nil), c.listeners.closed...)
	c.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
	if c.parent != nil {
		c.parent.publishClosed(ev)
	}
}
