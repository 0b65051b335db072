package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/appadmin/internal/cliconfig"
	"github.com/bft-labs/appadmin/pkg/admin"
	"github.com/bft-labs/appadmin/pkg/ansi"
	"github.com/bft-labs/appadmin/pkg/application"
	"github.com/bft-labs/appadmin/pkg/env"
	"github.com/bft-labs/appadmin/pkg/httpserver"
	"github.com/bft-labs/appadmin/pkg/lifecycle"
	"github.com/bft-labs/appadmin/pkg/log"
	"github.com/bft-labs/appadmin/pkg/management"
)

func (c *cli) runCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an application with its admin bean and management endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, c.cfg, log.NewZerologAdapterWithLogger(c.logger), cmd.OutOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.cfg.AppName, "app-name", c.cfg.AppName, "application context name")
	f.StringVar(&c.cfg.WebAddr, "web-addr", c.cfg.WebAddr, "embedded web server listen address (disabled when empty)")
	f.StringVar(&c.cfg.PropertiesFile, "properties", c.cfg.PropertiesFile, "TOML properties file")
	f.BoolVar(&c.cfg.WatchProperties, "watch", c.cfg.WatchProperties, "reload the properties file when it changes")
	f.DurationVar(&c.cfg.ShutdownTimeout, "shutdown-timeout", c.cfg.ShutdownTimeout, "maximum time to wait for graceful shutdown")
	return cmd
}

// run hosts the application until ctx is cancelled or the application is
// shut down through its admin bean.
func run(ctx context.Context, cfg cliconfig.Config, logger log.Logger, banner io.Writer) error {
	environment, source, err := buildEnvironment(cfg)
	if err != nil {
		return err
	}

	opts := []application.Option{
		application.WithEnvironment(environment),
		application.WithLogger(logger),
		application.WithShutdownTimeout(cfg.ShutdownTimeout),
	}
	if cfg.WebAddr != "" {
		opts = append(opts, application.WithWebServer(cfg.WebAddr, greetingHandler(environment)))
	}
	app := application.New(cfg.AppName, opts...)

	registry := management.Platform()
	registrar, err := admin.NewRegistrar(cfg.AdminName, app,
		admin.WithEnvironment(environment),
		admin.WithServer(registry),
		admin.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	registrar.Bind(app)
	if err := registrar.Register(); err != nil {
		return err
	}
	defer func() {
		if err := registrar.Unregister(); err != nil {
			logger.Warn("unregister admin bean", log.Err(err))
		}
	}()

	app.OnReady(func(ev application.ReadyEvent) {
		if ev.ContextID != app.ID() {
			return
		}
		fmt.Fprintln(banner, ansi.String(ansi.Bold, ansi.Green, "Started ", cfg.AppName, ansi.Normal,
			" in ", ev.TimeTaken.Round(time.Millisecond)))
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	mgmt := httpserver.New("management server", cfg.ManagementAddr, management.NewHandler(registry, logger), logger)
	if _, err := mgmt.Listen(); err != nil {
		return err
	}
	g.Go(func() error { return mgmt.Start(gctx) })

	if source != nil && cfg.WatchProperties {
		watcher := env.NewWatcher(source, logger, nil)
		if err := watcher.Start(gctx); err != nil {
			cancel()
			_ = g.Wait()
			return fmt.Errorf("watch properties: %w", err)
		}
		defer watcher.Stop()
	}

	if err := app.Start(gctx); err != nil {
		cancel()
		_ = g.Wait()
		return fmt.Errorf("start application: %w", err)
	}

	g.Go(func() error {
		<-app.Done()
		// shutdown may come from the admin bean; take the rest down with it
		cancel()
		if app.State() != lifecycle.StateClosed {
			return errors.New("application failed to close cleanly")
		}
		return nil
	})

	return g.Wait()
}

func buildEnvironment(cfg cliconfig.Config) (*env.Environment, *env.FileSource, error) {
	environment := env.NewStandard()
	environment.AddLast(ansi.NewPropertySource("ansi", true))

	if cfg.PropertiesFile == "" {
		return environment, nil, nil
	}
	source, err := env.NewFileSource(cfg.PropertiesFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load properties: %w", err)
	}
	environment.AddFirst(source)
	return environment, source, nil
}

func greetingHandler(e *env.Environment) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, e.PropertyOrDefault("app.greeting", "hello")+"\n")
	})
}
