package management

import (
	"fmt"
	"sort"
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Bean is the management surface of an application: its lifecycle flags, a
// property lookup and a shutdown trigger.
type Bean interface {
	IsReady() bool
	IsEmbeddedWebApplication() bool
	Property(key string) (string, bool)
	Shutdown()
}

// Server is a management facility beans register into.
type Server interface {
	Register(name ObjectName, bean Bean) error
	Unregister(name ObjectName) error
	Lookup(name ObjectName) (Bean, bool)
	Names() []ObjectName
}

type entry struct {
	name ObjectName
	bean Bean
}

// Registry is the default Server, safe for concurrent use.
type Registry struct {
	beans cmap.ConcurrentMap[string, entry]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{beans: cmap.New[entry]()}
}

// Register adds bean under name. It fails with ErrInstanceAlreadyExists if
// the name is taken.
func (r *Registry) Register(name ObjectName, bean Bean) error {
	if name.IsZero() {
		return fmt.Errorf("%w: empty name", ErrMalformedObjectName)
	}
	if !r.beans.SetIfAbsent(name.Canonical(), entry{name: name, bean: bean}) {
		return fmt.Errorf("%w: %s", ErrInstanceAlreadyExists, name)
	}
	return nil
}

// Unregister removes name. It fails with ErrInstanceNotFound if the name is
// not registered.
func (r *Registry) Unregister(name ObjectName) error {
	if _, ok := r.beans.Pop(name.Canonical()); !ok {
		return fmt.Errorf("%w: %s", ErrInstanceNotFound, name)
	}
	return nil
}

// Lookup returns the bean registered under name.
func (r *Registry) Lookup(name ObjectName) (Bean, bool) {
	e, ok := r.beans.Get(name.Canonical())
	if !ok {
		return nil, false
	}
	return e.bean, true
}

// Names returns all registered names ordered by canonical form.
func (r *Registry) Names() []ObjectName {
	entries := r.beans.Items()
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := make([]ObjectName, 0, len(keys))
	for _, k := range keys {
		names = append(names, entries[k].name)
	}
	return names
}

// Count returns the number of registered beans.
func (r *Registry) Count() int {
	return r.beans.Count()
}

var (
	platformMu sync.Mutex
	platform   *Registry
)

// Platform returns the process-wide registry, creating it on first use.
func Platform() *Registry {
	platformMu.Lock()
	defer platformMu.Unlock()
	if platform == nil {
		platform = NewRegistry()
	}
	return platform
}

// ResetPlatform discards the process-wide registry. Intended for tests.
func ResetPlatform() {
	platformMu.Lock()
	defer platformMu.Unlock()
	platform = nil
}
