package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/appadmin/internal/cliconfig"
	"github.com/bft-labs/appadmin/pkg/ansi"
	"github.com/bft-labs/appadmin/pkg/log"
	"github.com/bft-labs/appadmin/pkg/management"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestRun_ServesAndShutsDownViaAdminBean(t *testing.T) {
	management.ResetPlatform()
	t.Cleanup(management.ResetPlatform)
	ansi.SetMode(ansi.ModeNever)
	t.Cleanup(ansi.Reset)

	props := filepath.Join(t.TempDir(), "app.toml")
	require.NoError(t, os.WriteFile(props, []byte("[app]\ngreeting = \"bonjour\"\n"), 0o644))

	cfg := cliconfig.DefaultConfig()
	cfg.AppName = "demo"
	cfg.ManagementAddr = freeAddr(t)
	cfg.WebAddr = freeAddr(t)
	cfg.PropertiesFile = props
	cfg.ShutdownTimeout = 5 * time.Second
	require.NoError(t, cfg.Validate())

	done := make(chan error, 1)
	go func() { done <- run(context.Background(), cfg, log.NewNoopLogger(), io.Discard) }()

	client := management.NewClient(cfg.ManagementURL, management.MustParseObjectName(cfg.AdminName),
		management.WithPollInterval(20*time.Millisecond))
	ctx := context.Background()
	require.NoError(t, client.WaitReady(ctx, 10*time.Second))

	web, err := client.EmbeddedWebApplication(ctx)
	require.NoError(t, err)
	assert.True(t, web)

	value, ok, err := client.Property(ctx, "app.greeting")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "bonjour", value)

	resp, err := http.Get("http://" + cfg.WebAddr + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "bonjour\n", string(body))

	require.NoError(t, client.Shutdown(ctx))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after shutdown")
	}
	assert.Zero(t, management.Platform().Count(), "admin bean should be unregistered")
}

func TestRun_StopsOnCancel(t *testing.T) {
	management.ResetPlatform()
	t.Cleanup(management.ResetPlatform)

	cfg := cliconfig.DefaultConfig()
	cfg.ManagementAddr = freeAddr(t)
	require.NoError(t, cfg.Validate())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, log.NewNoopLogger(), io.Discard) }()

	client := management.NewClient(cfg.ManagementURL, management.MustParseObjectName(cfg.AdminName),
		management.WithPollInterval(20*time.Millisecond))
	require.NoError(t, client.WaitReady(context.Background(), 10*time.Second))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRun_BadAdminName(t *testing.T) {
	management.ResetPlatform()
	t.Cleanup(management.ResetPlatform)

	cfg := cliconfig.DefaultConfig()
	cfg.AdminName = "missing-domain-separator"
	cfg.ManagementAddr = freeAddr(t)

	err := run(context.Background(), cfg, log.NewNoopLogger(), io.Discard)
	assert.ErrorIs(t, err, management.ErrMalformedObjectName)
}
