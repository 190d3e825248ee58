package xmetrics

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/xmidt-org/metricfilter/allowlist"
	"github.com/xmidt-org/metricfilter/allowlist/allowlistprom"
	"go.uber.org/zap"
)

// PrometheusProvider is a Prometheus-specific version of go-kit's metrics.Provider.  Use this interface
// when interacting directly with Prometheus.
type PrometheusProvider interface {
	NewCounterVec(string) *prometheus.CounterVec
	NewGaugeVec(string) *prometheus.GaugeVec
	NewHistogramVec(string) *prometheus.HistogramVec
	NewSummaryVec(string) *prometheus.SummaryVec
}

// Registry is the core abstraction for this package.  It is a Prometheus registry and a go-kit metrics.Provider all in one.
//
// Metrics that are already defined, either predefined through Options or created ad hoc, are cached and
// returned by subsequent calls to the Provider methods.  Gather only returns the metric families allowed
// by AllowList.
type Registry interface {
	PrometheusProvider
	provider.Provider
	prometheus.Gatherer
	prometheus.Registerer

	// AllowList returns the filter applied to gathered metric families
	AllowList() *allowlist.Filter
}

// registry is the internal Registry implementation
type registry struct {
	*prometheus.Registry

	logger    *zap.Logger
	namespace string
	subsystem string
	allowList *allowlist.Filter
	gatherer  prometheus.Gatherer

	lock  sync.Mutex
	cache map[string]prometheus.Collector
}

func (r *registry) collector(name, metricType string) prometheus.Collector {
	r.lock.Lock()
	defer r.lock.Unlock()

	if existing, ok := r.cache[name]; ok {
		return existing
	}

	m := Metric{
		Name:      name,
		Type:      metricType,
		Namespace: r.namespace,
		Subsystem: r.subsystem,
	}

	c, err := NewCollector(m)
	if err != nil {
		panic(err)
	}

	if err := r.Registry.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			panic(err)
		}

		c = already.ExistingCollector
	}

	if !r.allowList.Matches(m.FQName()) {
		r.logger.Debug("ad hoc metric is not in the allow-list and will not be gathered", zap.String("name", m.FQName()))
	}

	r.cache[name] = c
	return c
}

func (r *registry) NewCounterVec(name string) *prometheus.CounterVec {
	counterVec, ok := r.collector(name, CounterType).(*prometheus.CounterVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a counter", name))
	}

	return counterVec
}

func (r *registry) NewCounter(name string) metrics.Counter {
	return gokitprometheus.NewCounter(r.NewCounterVec(name))
}

func (r *registry) NewGaugeVec(name string) *prometheus.GaugeVec {
	gaugeVec, ok := r.collector(name, GaugeType).(*prometheus.GaugeVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a gauge", name))
	}

	return gaugeVec
}

func (r *registry) NewGauge(name string) metrics.Gauge {
	return gokitprometheus.NewGauge(r.NewGaugeVec(name))
}

func (r *registry) NewHistogramVec(name string) *prometheus.HistogramVec {
	histogramVec, ok := r.collector(name, HistogramType).(*prometheus.HistogramVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a histogram", name))
	}

	return histogramVec
}

func (r *registry) NewSummaryVec(name string) *prometheus.SummaryVec {
	summaryVec, ok := r.collector(name, SummaryType).(*prometheus.SummaryVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a summary", name))
	}

	return summaryVec
}

// NewHistogram will return a Histogram for either a Summary or Histogram.  This is different
// behavior from metrics.Provider.
func (r *registry) NewHistogram(name string, _ int) metrics.Histogram {
	r.lock.Lock()
	existing, ok := r.cache[name]
	r.lock.Unlock()

	if ok {
		switch vec := existing.(type) {
		case *prometheus.HistogramVec:
			return gokitprometheus.NewHistogram(vec)
		case *prometheus.SummaryVec:
			return gokitprometheus.NewSummary(vec)
		default:
			panic(fmt.Errorf("the metric %s is not a histogram or summary", name))
		}
	}

	return gokitprometheus.NewHistogram(r.NewHistogramVec(name))
}

func (r *registry) Stop() {
}

func (r *registry) AllowList() *allowlist.Filter {
	return r.allowList
}

// Gather returns the allowed metric families of the underlying Prometheus registry
func (r *registry) Gather() ([]*dto.MetricFamily, error) {
	return r.gatherer.Gather()
}

// NewRegistry creates a Registry from a set of Options.  A nil Options produces a registry with
// defaults and no allow-list.
func NewRegistry(o *Options) (Registry, error) {
	merger := NewMerger(o.namespace(), o.subsystem()).AddMetrics(false, o.metrics()...)
	if err := merger.Err(); err != nil {
		return nil, err
	}

	var (
		pr        = o.registry()
		allowList = o.allowList()
		r         = &registry{
			Registry:  pr,
			logger:    o.logger(),
			namespace: o.namespace(),
			subsystem: o.subsystem(),
			allowList: allowList,
			gatherer:  allowlistprom.NewGatherer(pr, allowList),
			cache:     make(map[string]prometheus.Collector),
		}
	)

	for _, m := range merger.Merged() {
		if _, ok := r.cache[m.Name]; ok {
			return nil, fmt.Errorf("duplicate metric name %s across namespaces or subsystems", m.Name)
		}

		c, err := NewCollector(m)
		if err != nil {
			return nil, err
		}

		if err := r.Registry.Register(c); err != nil {
			return nil, fmt.Errorf("error while preregistering metric %s: %w", m.FQName(), err)
		}

		if !allowList.Matches(m.FQName()) {
			r.logger.Debug("metric is not in the allow-list and will not be gathered", zap.String("name", m.FQName()))
		}

		r.cache[m.Name] = c
	}

	if allowList.Len() > 0 {
		r.logger.Info("gathering a restricted set of metrics", zap.Strings("allowed", allowList.Names()))
	}

	return r, nil
}
