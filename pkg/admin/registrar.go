package admin

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/bft-labs/appadmin/pkg/application"
	"github.com/bft-labs/appadmin/pkg/env"
	"github.com/bft-labs/appadmin/pkg/log"
	"github.com/bft-labs/appadmin/pkg/management"
)

// DefaultName is the object name used when none is configured.
const DefaultName = "io.appadmin:type=Admin,name=Application"

// ErrNoApplication is returned by NewRegistrar when app is nil.
var ErrNoApplication = errors.New("admin: application is required")

// Application is the owning application.
type Application interface {
	// ID identifies the application context; lifecycle callbacks carry it.
	ID() string
	Close() error
}

// PropertyResolver answers property queries.
type PropertyResolver interface {
	Property(key string) (string, bool)
}

// Admin is the surface registered with the management facility.
type Admin interface {
	IsReady() bool
	IsEmbeddedWebApplication() bool
	Property(key string) (string, bool)
	Shutdown()
}

// Registrar tracks the lifecycle of one application and registers its Admin
// bean under a fixed name.
type Registrar struct {
	name   management.ObjectName
	app    Application
	env    PropertyResolver
	server management.Server
	logger log.Logger

	ready                  atomic.Bool
	embeddedWebApplication atomic.Bool
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithEnvironment sets the resolver used by Property. Defaults to the
// process environment.
func WithEnvironment(r PropertyResolver) Option {
	return func(reg *Registrar) { reg.env = r }
}

// WithServer sets the management facility. Defaults to management.Platform().
func WithServer(s management.Server) Option {
	return func(reg *Registrar) { reg.server = s }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l log.Logger) Option {
	return func(reg *Registrar) { reg.logger = l }
}

// NewRegistrar parses name and creates a registrar for app. Both flags start
// false. The bean is not registered until Register is called.
func NewRegistrar(name string, app Application, opts ...Option) (*Registrar, error) {
	on, err := management.ParseObjectName(name)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNoApplication
	}

	r := &Registrar{name: on, app: app}
	for _, opt := range opts {
		opt(r)
	}
	if r.env == nil {
		r.env = env.NewStandard()
	}
	if r.server == nil {
		r.server = management.Platform()
	}
	if r.logger == nil {
		r.logger = log.NewNoopLogger()
	}
	return r, nil
}

// Name returns the registration name.
func (r *Registrar) Name() management.ObjectName { return r.name }

// Register registers the admin bean. It fails if the name is already
// registered; it does not retry.
func (r *Registrar) Register() error {
	if err := r.server.Register(r.name, r.Admin()); err != nil {
		return fmt.Errorf("register admin bean: %w", err)
	}
	r.logger.Debug("application admin bean registered", log.String("name", r.name.String()))
	return nil
}

// Unregister removes the admin bean. Unregistering a name that is not
// registered is an error.
func (r *Registrar) Unregister() error {
	if err := r.server.Unregister(r.name); err != nil {
		return fmt.Errorf("unregister admin bean: %w", err)
	}
	r.logger.Debug("application admin bean unregistered", log.String("name", r.name.String()))
	return nil
}

// OnApplicationReady marks the application ready if contextID identifies
// the owning application. Other identities are ignored.
func (r *Registrar) OnApplicationReady(contextID string) {
	if contextID == r.app.ID() {
		r.ready.Store(true)
	}
}

// OnWebServerInitialized marks the application as an embedded web
// application if contextID identifies the owning application.
func (r *Registrar) OnWebServerInitialized(contextID string) {
	if contextID == r.app.ID() {
		r.embeddedWebApplication.Store(true)
	}
}

// Bind subscribes the registrar to c's ready and web server events. Events
// from c's children reach the subscription too and are filtered by
// identity.
func (r *Registrar) Bind(c *application.Context) {
	c.OnReady(func(ev application.ReadyEvent) {
		r.OnApplicationReady(ev.ContextID)
	})
	c.OnWebServerInitialized(func(ev application.WebServerInitializedEvent) {
		r.OnWebServerInitialized(ev.ContextID)
	})
}

// Admin returns the bean view of the registrar.
func (r *Registrar) Admin() Admin { return adminBean{r} }

// IsReady reports whether the owning application has reported ready.
func (r *Registrar) IsReady() bool { return r.ready.Load() }

// IsEmbeddedWebApplication reports whether the owning application started
// an embedded web server.
func (r *Registrar) IsEmbeddedWebApplication() bool { return r.embeddedWebApplication.Load() }

// Property resolves key in the environment.
func (r *Registrar) Property(key string) (string, bool) { return r.env.Property(key) }

// Shutdown closes the owning application in the background. Close errors
// are logged, not returned.
func (r *Registrar) Shutdown() {
	r.logger.Info("application shutdown requested", log.String("name", r.name.String()))
	go func() {
		if err := r.app.Close(); err != nil {
			r.logger.Warn("application shutdown failed", log.Err(err))
		}
	}()
}

type adminBean struct{ r *Registrar }

func (b adminBean) IsReady() bool                      { return b.r.IsReady() }
func (b adminBean) IsEmbeddedWebApplication() bool     { return b.r.IsEmbeddedWebApplication() }
func (b adminBean) Property(key string) (string, bool) { return b.r.Property(key) }
func (b adminBean) Shutdown()                          { b.r.Shutdown() }
