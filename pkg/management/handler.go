package management

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bft-labs/appadmin/pkg/log"
)

// goroutineThreshold fails liveness when exceeded.
const goroutineThreshold = 10000

// NewHandler exposes server over HTTP.
//
// Routes:
//   - GET  /beans                              - registered names
//   - GET  /beans/{name}                       - ready and web flags
//   - GET  /beans/{name}/properties/{key}      - property lookup
//   - POST /beans/{name}/shutdown              - request shutdown
//   - GET  /health/live, /health/ready         - probes
//   - GET  /metrics                            - prometheus metrics
//
// {name} is the path-escaped object name.
func NewHandler(server Server, logger log.Logger) http.Handler {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		newBeanCollector(server),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	health := healthcheck.NewMetricsHandler(reg, metricsNamespace)
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(goroutineThreshold))
	health.AddReadinessCheck("beans-ready", beansReadyCheck(server))

	h := &beanHandler{server: server, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", health.LiveEndpoint)
		r.Get("/ready", health.ReadyEndpoint)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/beans", func(r chi.Router) {
		r.Get("/", h.list)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", h.status)
			r.Get("/properties/{key}", h.property)
			r.Post("/shutdown", h.shutdown)
		})
	})

	return r
}

// beansReadyCheck passes once at least one bean is registered and all
// registered beans report ready.
func beansReadyCheck(server Server) healthcheck.Check {
	return func() error {
		names := server.Names()
		if len(names) == 0 {
			return fmt.Errorf("no beans registered")
		}
		for _, n := range names {
			bean, ok := server.Lookup(n)
			if ok && !bean.IsReady() {
				return fmt.Errorf("%s not ready", n)
			}
		}
		return nil
	}
}

type beanHandler struct {
	server Server
	logger log.Logger
}

func (h *beanHandler) list(w http.ResponseWriter, r *http.Request) {
	names := h.server.Names()
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, n.String())
	}
	writeData(w, http.StatusOK, out)
}

// pathParam returns the decoded URL parameter. chi routes on RawPath when
// the request has one, leaving parameters escaped; otherwise they arrive
// already decoded and must not be unescaped again.
func pathParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

// lookup resolves {name}; on failure it writes the error response.
func (h *beanHandler) lookup(w http.ResponseWriter, r *http.Request) (ObjectName, Bean, bool) {
	raw, err := pathParam(r, "name")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(CodeMalformedName, err.Error()))
		return ObjectName{}, nil, false
	}
	name, err := ParseObjectName(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(CodeMalformedName, err.Error()))
		return ObjectName{}, nil, false
	}
	bean, ok := h.server.Lookup(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse(CodeInstanceNotFound, "instance not found: "+name.String()))
		return name, nil, false
	}
	return name, bean, true
}

func (h *beanHandler) status(w http.ResponseWriter, r *http.Request) {
	name, bean, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, BeanStatus{
		Name:                   name.String(),
		Ready:                  bean.IsReady(),
		EmbeddedWebApplication: bean.IsEmbeddedWebApplication(),
	})
}

func (h *beanHandler) property(w http.ResponseWriter, r *http.Request) {
	_, bean, ok := h.lookup(w, r)
	if !ok {
		return
	}
	key, err := pathParam(r, "key")
	if err != nil || key == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse(CodeInvalidKey, "invalid property key"))
		return
	}
	value, found := bean.Property(key)
	if !found {
		writeJSON(w, http.StatusNotFound, errorResponse(CodePropertyNotFound, "property not found: "+key))
		return
	}
	writeData(w, http.StatusOK, PropertyValue{Key: key, Value: value})
}

func (h *beanHandler) shutdown(w http.ResponseWriter, r *http.Request) {
	name, bean, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.logger.Info("remote shutdown requested",
		log.String("name", name.String()),
		log.String("remote_addr", r.RemoteAddr))
	bean.Shutdown()
	writeData(w, http.StatusAccepted, map[string]string{"name": name.String()})
}

func requestLogger(logger log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			fields := []log.Field{
				log.String("request_id", middleware.GetReqID(r.Context())),
				log.String("method", r.Method),
				log.String("path", r.URL.Path),
				log.Int("status", ww.Status()),
				log.Int("bytes", ww.BytesWritten()),
				log.Duration("duration", time.Since(start)),
			}
			// probes and scrapes are noisy
			if strings.HasPrefix(r.URL.Path, "/health") || r.URL.Path == "/metrics" {
				logger.Debug("management request", fields...)
				return
			}
			logger.Info("management request", fields...)
		})
	}
}
