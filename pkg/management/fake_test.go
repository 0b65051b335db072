package management

import (
	"sync"
	"sync/atomic"
)

type fakeBean struct {
	ready     atomic.Bool
	web       atomic.Bool
	props     map[string]string
	shutdowns atomic.Int32

	mu         sync.Mutex
	shutdownCh chan struct{}
}

func newFakeBean(props map[string]string) *fakeBean {
	return &fakeBean{props: props, shutdownCh: make(chan struct{})}
}

func (f *fakeBean) IsReady() bool                  { return f.ready.Load() }
func (f *fakeBean) IsEmbeddedWebApplication() bool { return f.web.Load() }

func (f *fakeBean) Property(key string) (string, bool) {
	v, ok := f.props[key]
	return v, ok
}

func (f *fakeBean) Shutdown() {
	if f.shutdowns.Add(1) == 1 {
		f.mu.Lock()
		close(f.shutdownCh)
		f.mu.Unlock()
	}
}
