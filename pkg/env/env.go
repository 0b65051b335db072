// Package env resolves application properties from an ordered list of
// property sources.
package env

import (
	"os"
	"strings"
	"sync"
)

// PropertySource is a named source of string properties.
type PropertySource interface {
	Name() string
	Property(key string) (string, bool)
}

// Environment is an ordered, thread-safe set of property sources. The first
// source that knows a key wins.
type Environment struct {
	mu      sync.RWMutex
	sources []PropertySource
}

// New creates an environment from sources, highest precedence first.
func New(sources ...PropertySource) *Environment {
	return &Environment{sources: append([]PropertySource(nil), sources...)}
}

// NewStandard creates an environment backed by the process environment.
func NewStandard() *Environment {
	return New(NewSystemEnvironmentSource())
}

// AddFirst adds a source with the highest precedence.
func (e *Environment) AddFirst(s PropertySource) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sources = append([]PropertySource{s}, e.sources...)
}

// AddLast adds a source with the lowest precedence.
func (e *Environment) AddLast(s PropertySource) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sources = append(e.sources, s)
}

// Sources returns the sources in precedence order.
func (e *Environment) Sources() []PropertySource {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]PropertySource(nil), e.sources...)
}

// Property returns the value of key from the first source that has it.
func (e *Environment) Property(key string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, s := range e.sources {
		if v, ok := s.Property(key); ok {
			return v, true
		}
	}
	return "", false
}

// PropertyOrDefault returns the value of key, or def when absent.
func (e *Environment) PropertyOrDefault(key, def string) string {
	if v, ok := e.Property(key); ok {
		return v
	}
	return def
}

// MapSource is a property source over a fixed map.
type MapSource struct {
	name  string
	props map[string]string
}

// NewMapSource copies props into a new source.
func NewMapSource(name string, props map[string]string) *MapSource {
	cp := make(map[string]string, len(props))
	for k, v := range props {
		cp[k] = v
	}
	return &MapSource{name: name, props: cp}
}

func (m *MapSource) Name() string { return m.name }

func (m *MapSource) Property(key string) (string, bool) {
	v, ok := m.props[key]
	return v, ok
}

// SystemEnvironmentSourceName is the name of the process environment source.
const SystemEnvironmentSourceName = "systemEnvironment"

// SystemEnvironmentSource reads the process environment with relaxed key
// matching: "server.port" also matches SERVER_PORT, and "-" is treated like ".".
type SystemEnvironmentSource struct {
	lookup func(string) (string, bool)
}

// NewSystemEnvironmentSource reads from os.LookupEnv.
func NewSystemEnvironmentSource() *SystemEnvironmentSource {
	return &SystemEnvironmentSource{lookup: os.LookupEnv}
}

func (s *SystemEnvironmentSource) Name() string { return SystemEnvironmentSourceName }

func (s *SystemEnvironmentSource) Property(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	for _, candidate := range relaxedNames(key) {
		if v, ok := s.lookup(candidate); ok {
			return v, true
		}
	}
	return "", false
}

func relaxedNames(key string) []string {
	underscored := strings.NewReplacer(".", "_", "-", "_").Replace(key)
	names := []string{key}
	for _, n := range []string{
		strings.ReplaceAll(key, ".", "_"),
		strings.ReplaceAll(key, "-", "_"),
		underscored,
		strings.ToUpper(key),
		strings.ToUpper(underscored),
	} {
		if !contains(names, n) {
			names = append(names, n)
		}
	}
	return names
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

// AsSource exposes the environment as a single property source, e.g. to
// use a parent environment as a fallback.
func (e *Environment) AsSource(name string) PropertySource {
	return environmentSource{name: name, env: e}
}

type environmentSource struct {
	name string
	env  *Environment
}

func (s environmentSource) Name() string { return s.name }

func (s environmentSource) Property(key string) (string, bool) { return s.env.Property(key) }
