package allowlist

// Matcher is the narrow behavior host framework adapters need:  a predicate on a metric name.
type Matcher interface {
	Matches(string) bool
}

// MatcherFunc is a function type that implements Matcher.
type MatcherFunc func(string) bool

func (mf MatcherFunc) Matches(name string) bool {
	return mf(name)
}

// AllowAll is a Matcher that allows every name.
var AllowAll Matcher = MatcherFunc(func(string) bool { return true })

// MetricFilter is the two-argument shape metrics frameworks conventionally invoke when deciding
// which metrics to emit.  The metric value is passed along for reference only.
type MetricFilter func(name string, metric interface{}) bool

// AsMetricFilter adapts a Matcher to a MetricFilter.  The metric argument is ignored.  A nil Matcher
// produces a MetricFilter that allows everything.
func AsMetricFilter(m Matcher) MetricFilter {
	if m == nil {
		m = AllowAll
	}

	return func(name string, _ interface{}) bool {
		return m.Matches(name)
	}
}
