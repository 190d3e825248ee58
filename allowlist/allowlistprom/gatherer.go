package allowlistprom

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/xmidt-org/metricfilter/allowlist"
)

// Gatherer is a prometheus.Gatherer that only emits metric families allowed by a Matcher.
type Gatherer struct {
	inner   prometheus.Gatherer
	matcher allowlist.Matcher
}

// NewGatherer decorates g so that Gather only returns families whose names match m.  If m is nil,
// g is returned undecorated.
func NewGatherer(g prometheus.Gatherer, m allowlist.Matcher) prometheus.Gatherer {
	if m == nil {
		return g
	}

	return &Gatherer{
		inner:   g,
		matcher: m,
	}
}

// Gather implements prometheus.Gatherer.  Any error from the decorated Gatherer is returned along
// with whatever families it produced, filtered the same way.
func (fg *Gatherer) Gather() ([]*dto.MetricFamily, error) {
	mfs, err := fg.inner.Gather()
	return Filter(mfs, fg.matcher), err
}

// Filter returns the subset of mfs allowed by m, preserving order.  The input slice is not modified.
func Filter(mfs []*dto.MetricFamily, m allowlist.Matcher) []*dto.MetricFamily {
	if m == nil || len(mfs) == 0 {
		return mfs
	}

	filtered := make([]*dto.MetricFamily, 0, len(mfs))
	for _, mf := range mfs {
		if m.Matches(mf.GetName()) {
			filtered = append(filtered, mf)
		}
	}

	return filtered
}

// Handler returns an http.Handler which exposes the families from g that match m.
func Handler(g prometheus.Gatherer, m allowlist.Matcher, opts promhttp.HandlerOpts) http.Handler {
	return promhttp.HandlerFor(NewGatherer(g, m), opts)
}
