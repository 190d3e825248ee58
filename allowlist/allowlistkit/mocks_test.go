package allowlistkit

import (
	"github.com/go-kit/kit/metrics"
	"github.com/stretchr/testify/mock"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) NewCounter(name string) metrics.Counter {
	return m.Called(name).Get(0).(metrics.Counter)
}

func (m *mockProvider) NewGauge(name string) metrics.Gauge {
	return m.Called(name).Get(0).(metrics.Gauge)
}

func (m *mockProvider) NewHistogram(name string, buckets int) metrics.Histogram {
	return m.Called(name, buckets).Get(0).(metrics.Histogram)
}

func (m *mockProvider) Stop() {
	m.Called()
}
