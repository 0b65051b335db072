// Package admin exposes an application's lifecycle state through a
// management facility.
//
// A Registrar latches two flags, ready and embedded-web, from lifecycle
// callbacks of its owning application, and registers an admin bean that
// reports them, resolves properties and triggers shutdown:
//
//	reg, err := admin.NewRegistrar(admin.DefaultName, app,
//	    admin.WithEnvironment(app.Environment()),
//	    admin.WithServer(registry),
//	)
//	if err != nil {
//	    return err
//	}
//	reg.Bind(app)
//	if err := reg.Register(); err != nil {
//	    return err
//	}
//	defer reg.Unregister()
//
// Callbacks carrying another context's identity are ignored, so a registrar
// on a parent context is not affected by events bubbling up from children.
package admin
