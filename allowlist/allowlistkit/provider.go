// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package allowlistkit adapts an allow-list to go-kit's metrics.Provider.  Metrics whose names are
// not allowed are replaced with go-kit discard metrics, so application code can record them freely
// while nothing reaches the backend.
package allowlistkit

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/metricfilter/allowlist"
)

// Namer produces the name an allow-list is matched against from the name passed to a Provider.
type Namer func(string) string

// Option is a configuration option for a filtering Provider.
type Option func(*Provider)

// WithNamer sets the strategy for mapping provider names onto allow-list names.  By default, names
// are matched as given.  A nil Namer restores the default.
func WithNamer(n Namer) Option {
	return func(p *Provider) {
		p.namer = n
	}
}

// Provider is a go-kit provider.Provider which hands out real metrics only for allowed names.
type Provider struct {
	next    provider.Provider
	matcher allowlist.Matcher
	namer   Namer
}

var _ provider.Provider = (*Provider)(nil)

// NewProvider decorates next with an allow-list.  A nil matcher allows every name.
func NewProvider(next provider.Provider, m allowlist.Matcher, o ...Option) *Provider {
	if m == nil {
		m = allowlist.AllowAll
	}

	p := &Provider{
		next:    next,
		matcher: m,
	}

	for _, f := range o {
		f(p)
	}

	return p
}

func (p *Provider) allowed(name string) bool {
	if p.namer != nil {
		name = p.namer(name)
	}

	return p.matcher.Matches(name)
}

func (p *Provider) NewCounter(name string) metrics.Counter {
	if p.allowed(name) {
		return p.next.NewCounter(name)
	}

	return discard.NewCounter()
}

func (p *Provider) NewGauge(name string) metrics.Gauge {
	if p.allowed(name) {
		return p.next.NewGauge(name)
	}

	return discard.NewGauge()
}

func (p *Provider) NewHistogram(name string, buckets int) metrics.Histogram {
	if p.allowed(name) {
		return p.next.NewHistogram(name, buckets)
	}

	return discard.NewHistogram()
}

// Stop stops the decorated provider.
func (p *Provider) Stop() {
	p.next.Stop()
}
