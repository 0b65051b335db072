// Package log provides the logging abstraction used by appadmin components.
//
// Library packages (admin, management, application, env) log through the
// Logger interface so hosts can plug in their own logging. A zerolog-backed
// implementation and a no-op implementation are provided:
//
//	logger := log.NewZerologAdapter(os.Stderr, log.LevelInfo)
//	logger.Info("registered", log.String("name", name))
//
// Console output is colored only when ansi output is enabled.
package log
