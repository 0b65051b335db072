package env

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// FileSource exposes a TOML file as flat dotted properties. Nested tables
// become "a.b.c" keys and array elements become "a.b[0]".
type FileSource struct {
	path string

	mu    sync.RWMutex
	props map[string]string
}

// NewFileSource loads the TOML file at path.
func NewFileSource(path string) (*FileSource, error) {
	fs := &FileSource{path: path}
	if err := fs.Reload(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (f *FileSource) Name() string { return "file [" + f.path + "]" }

// Path returns the backing file path.
func (f *FileSource) Path() string { return f.path }

func (f *FileSource) Property(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.props[key]
	return v, ok
}

// Keys returns all property keys in sorted order.
func (f *FileSource) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.props))
	for k := range f.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reload re-reads the file. On error the previous properties are kept.
func (f *FileSource) Reload() error {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.path, err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", f.path, err)
	}

	props := make(map[string]string)
	flatten("", raw, props)

	f.mu.Lock()
	f.props = props
	f.mu.Unlock()
	return nil
}

func flatten(prefix string, v any, out map[string]string) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, child, out)
		}
	case []any:
		for i, child := range val {
			flatten(prefix+"["+strconv.Itoa(i)+"]", child, out)
		}
	default:
		out[prefix] = fmt.Sprint(val)
	}
}
