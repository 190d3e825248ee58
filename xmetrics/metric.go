package xmetrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	CounterType   = "counter"
	GaugeType     = "gauge"
	HistogramType = "histogram"
	SummaryType   = "summary"
)

var errNoName = errors.New("a name is required for a metric")

// Metric describes a single metric that will be preregistered.  This type loosely
// corresponds with Prometheus' Opts struct.  The fields in this type are the union
// of all necessary data for creating Prometheus metrics.
type Metric struct {
	// Name is the required name of this metric.
	Name string

	// Type is the required type of metric.  This value must be one of the constants defined in this package.
	Type string

	// Namespace is the namespace of this metric.  This value is optional.  The enclosing Options' Namespace
	// field is used if this is not supplied.
	Namespace string

	// Subsystem is the subsystem of this metric.  This value is optional.  The enclosing Options' Subsystem
	// field is used if this is not supplied.
	Subsystem string

	// Help is the help string for this metric.  If not supplied, the metric's name is used
	Help string

	// ConstLabels are the Prometheus ConstLabels for this metric.
	ConstLabels map[string]string

	// LabelNames are the Prometheus label names for this metric.
	LabelNames []string

	// Buckets describes the observation buckets for a histogram.
	Buckets []float64

	// Objectives is the Summary objectives.
	Objectives map[float64]float64

	// MaxAge is the Summary MaxAge.
	MaxAge time.Duration

	// AgeBuckets is the Summary AgeBuckets.
	AgeBuckets uint32

	// BufCap is the Summary BufCap.
	BufCap uint32
}

// FQName is the fully-qualified name Prometheus exposes this metric under.  This is the name
// an allow-list must contain for the metric to be gathered.
func (m Metric) FQName() string {
	return prometheus.BuildFQName(m.Namespace, m.Subsystem, m.Name)
}

// NewCollector creates a Prometheus metric from a Metric descriptor.  The name must not be empty.
// If not supplied in the metric, namespace, subsystem, and help all take on defaults.
func NewCollector(m Metric) (prometheus.Collector, error) {
	if len(m.Name) == 0 {
		return nil, errNoName
	}

	if len(m.Namespace) == 0 {
		m.Namespace = DefaultNamespace
	}

	if len(m.Subsystem) == 0 {
		m.Subsystem = DefaultSubsystem
	}

	if len(m.Help) == 0 {
		m.Help = m.Name
	}

	opts := prometheus.Opts{
		Namespace:   m.Namespace,
		Subsystem:   m.Subsystem,
		Name:        m.Name,
		Help:        m.Help,
		ConstLabels: prometheus.Labels(m.ConstLabels),
	}

	switch m.Type {
	case CounterType:
		return prometheus.NewCounterVec(prometheus.CounterOpts(opts), m.LabelNames), nil

	case GaugeType:
		return prometheus.NewGaugeVec(prometheus.GaugeOpts(opts), m.LabelNames), nil

	case HistogramType:
		ho := prometheus.HistogramOpts{Buckets: m.Buckets}
		ho.Namespace, ho.Subsystem, ho.Name, ho.Help, ho.ConstLabels = opts.Namespace, opts.Subsystem, opts.Name, opts.Help, opts.ConstLabels
		return prometheus.NewHistogramVec(ho, m.LabelNames), nil

	case SummaryType:
		so := prometheus.SummaryOpts{Objectives: m.Objectives, MaxAge: m.MaxAge, AgeBuckets: m.AgeBuckets, BufCap: m.BufCap}
		so.Namespace, so.Subsystem, so.Name, so.Help, so.ConstLabels = opts.Namespace, opts.Subsystem, opts.Name, opts.Help, opts.ConstLabels
		return prometheus.NewSummaryVec(so, m.LabelNames), nil

	default:
		return nil, fmt.Errorf("unsupported metric type: %s", m.Type)
	}
}

// Merger combines metric definitions from several sources, filling in default namespaces and
// subsystems along the way.  Once an error occurs, further additions are ignored.
type Merger struct {
	defaultNamespace string
	defaultSubsystem string
	merged           map[string]Metric
	order            []string
	err              error
}

func NewMerger(defaultNamespace, defaultSubsystem string) *Merger {
	if len(defaultNamespace) == 0 {
		defaultNamespace = DefaultNamespace
	}

	if len(defaultSubsystem) == 0 {
		defaultSubsystem = DefaultSubsystem
	}

	return &Merger{
		defaultNamespace: defaultNamespace,
		defaultSubsystem: defaultSubsystem,
		merged:           make(map[string]Metric),
	}
}

// Merged returns the merged metrics in the order they were first added
func (mr *Merger) Merged() []Metric {
	merged := make([]Metric, 0, len(mr.order))
	for _, fqn := range mr.order {
		merged = append(merged, mr.merged[fqn])
	}

	return merged
}

// Err returns any error that occurred during merging.
func (mr *Merger) Err() error {
	return mr.err
}

func (mr *Merger) tryAdd(allowOverride bool, m Metric) bool {
	if mr.err != nil {
		return false
	}

	if len(m.Name) == 0 {
		mr.err = errNoName
		return false
	}

	if len(m.Namespace) == 0 {
		m.Namespace = mr.defaultNamespace
	}

	if len(m.Subsystem) == 0 {
		m.Subsystem = mr.defaultSubsystem
	}

	fqn := m.FQName()
	if existing, ok := mr.merged[fqn]; ok {
		if !allowOverride {
			mr.err = fmt.Errorf("duplicate metric with name: %s", fqn)
			return false
		}

		// we never allow a metric to override one of a different type
		if existing.Type != m.Type {
			mr.err = fmt.Errorf("metric %s was expected to be of type %s, but was of type %s", fqn, existing.Type, m.Type)
			return false
		}
	} else {
		mr.order = append(mr.order, fqn)
	}

	mr.merged[fqn] = m
	return true
}

// AddMetrics merges each metric in turn.  If allowOverride is false, a metric with the same
// fully-qualified name as an earlier one is an error.
func (mr *Merger) AddMetrics(allowOverride bool, m ...Metric) *Merger {
	for _, e := range m {
		if !mr.tryAdd(allowOverride, e) {
			break
		}
	}

	return mr
}
