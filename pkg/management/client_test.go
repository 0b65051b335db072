package management

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_RoundTrip(t *testing.T) {
	_, bean, name, srv := newTestServer(t)
	bean.web.Store(true)
	c := NewClient(srv.URL+"/", name)
	ctx := context.Background()

	beans, err := c.Beans(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{name.String()}, beans)

	ready, err := c.Ready(ctx)
	require.NoError(t, err)
	assert.False(t, ready)

	web, err := c.EmbeddedWebApplication(ctx)
	require.NoError(t, err)
	assert.True(t, web)

	v, ok, err := c.Property(ctx, "server.port")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "8080", v)

	_, ok, err = c.Property(ctx, "missing.key")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Shutdown(ctx))
	select {
	case <-bean.shutdownCh:
	case <-time.After(time.Second):
		t.Fatal("shutdown not delivered")
	}
}

func TestClient_UnknownBean(t *testing.T) {
	_, _, _, srv := newTestServer(t)
	c := NewClient(srv.URL, MustParseObjectName("app:type=Missing"))

	_, err := c.Status(context.Background())
	assert.True(t, errors.Is(err, ErrInstanceNotFound), "got %v", err)
}

func TestClient_WaitReady(t *testing.T) {
	_, bean, name, srv := newTestServer(t)
	c := NewClient(srv.URL, name, WithPollInterval(5*time.Millisecond))

	go func() {
		time.Sleep(30 * time.Millisecond)
		bean.ready.Store(true)
	}()

	require.NoError(t, c.WaitReady(context.Background(), 5*time.Second))
}

func TestClient_WaitReadyTimesOut(t *testing.T) {
	_, _, name, srv := newTestServer(t)
	c := NewClient(srv.URL, name, WithPollInterval(5*time.Millisecond))

	err := c.WaitReady(context.Background(), 50*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errNotReady), "got %v", err)
}

func TestClient_WaitReadyCanceled(t *testing.T) {
	srv := httptest.NewServer(NewHandler(NewRegistry(), nil))
	defer srv.Close()
	c := NewClient(srv.URL, MustParseObjectName("app:type=Admin"), WithPollInterval(5*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := c.WaitReady(ctx, time.Minute)
	require.Error(t, err)
}

func errorServer(t *testing.T, status int, code string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, status, errorResponse(code, "rejected"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_WaitReadyStopsOnMalformedName(t *testing.T) {
	var calls atomic.Int32
	srv := errorServer(t, http.StatusBadRequest, CodeMalformedName, &calls)
	c := NewClient(srv.URL, MustParseObjectName("app:type=Admin"), WithPollInterval(5*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := c.WaitReady(ctx, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedObjectName), "got %v", err)
	assert.NoError(t, ctx.Err(), "should fail without waiting")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_PropertyInvalidKey(t *testing.T) {
	var calls atomic.Int32
	srv := errorServer(t, http.StatusBadRequest, CodeInvalidKey, &calls)
	c := NewClient(srv.URL, MustParseObjectName("app:type=Admin"))

	_, ok, err := c.Property(context.Background(), "k")
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrInvalidPropertyKey), "got %v", err)
}
