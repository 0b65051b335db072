package management

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "appadmin"

// beanCollector reports the lifecycle flags of every registered bean at
// scrape time.
type beanCollector struct {
	server     Server
	ready      *prometheus.Desc
	web        *prometheus.Desc
	registered *prometheus.Desc
}

func newBeanCollector(server Server) *beanCollector {
	return &beanCollector{
		server: server,
		ready: prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "bean", "ready"),
			"Whether the application behind the bean has reported ready (1) or not (0).",
			[]string{"name"}, nil,
		),
		web: prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "bean", "embedded_web"),
			"Whether the application behind the bean runs an embedded web server.",
			[]string{"name"}, nil,
		),
		registered: prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "beans", "registered"),
			"Number of registered management beans.",
			nil, nil,
		),
	}
}

func (c *beanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.ready
	ch <- c.web
	ch <- c.registered
}

func (c *beanCollector) Collect(ch chan<- prometheus.Metric) {
	names := c.server.Names()
	ch <- prometheus.MustNewConstMetric(c.registered, prometheus.GaugeValue, float64(len(names)))
	for _, n := range names {
		bean, ok := c.server.Lookup(n)
		if !ok {
			continue
		}
		label := n.Canonical()
		ch <- prometheus.MustNewConstMetric(c.ready, prometheus.GaugeValue, boolToFloat(bean.IsReady()), label)
		ch <- prometheus.MustNewConstMetric(c.web, prometheus.GaugeValue, boolToFloat(bean.IsEmbeddedWebApplication()), label)
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
