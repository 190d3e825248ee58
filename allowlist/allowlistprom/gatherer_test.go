package allowlistprom

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/metricfilter/allowlist"
)

func newTestRegistry(t *testing.T) *prometheus.Registry {
	r := prometheus.NewPedanticRegistry()
	for _, name := range []string{"jvm_memory_heap", "jvm_memory_nonheap", "requests"} {
		c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: name})
		c.Add(1.0)
		require.NoError(t, r.Register(c))
	}

	return r
}

func familyNames(mfs []*dto.MetricFamily) []string {
	names := make([]string, 0, len(mfs))
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}

	return names
}

func testGathererEmptyAllowList(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		g       = NewGatherer(newTestRegistry(t), allowlist.New())
	)

	mfs, err := g.Gather()
	require.NoError(err)
	assert.Equal([]string{"jvm_memory_heap", "jvm_memory_nonheap", "requests"}, familyNames(mfs))
}

func testGathererAllowList(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		g       = NewGatherer(newTestRegistry(t), allowlist.New("jvm_memory_heap", "requests", "missing"))
	)

	mfs, err := g.Gather()
	require.NoError(err)
	assert.Equal([]string{"jvm_memory_heap", "requests"}, familyNames(mfs))

	count, err := testutil.GatherAndCount(g)
	require.NoError(err)
	assert.Equal(2, count)
}

func testGathererNilMatcher(t *testing.T) {
	var (
		assert = assert.New(t)
		r      = newTestRegistry(t)
	)

	assert.Equal(prometheus.Gatherer(r), NewGatherer(r, nil))
}

func testGathererError(t *testing.T) {
	var (
		assert        = assert.New(t)
		expectedError = errors.New("expected gather error")
		inner         = prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
			return []*dto.MetricFamily{
				{Name: stringPtr("a")},
				{Name: stringPtr("b")},
			}, expectedError
		})
	)

	mfs, err := NewGatherer(inner, allowlist.New("b")).Gather()
	assert.Equal(expectedError, err)
	assert.Equal([]string{"b"}, familyNames(mfs))
}

func stringPtr(s string) *string {
	return &s
}

func TestGatherer(t *testing.T) {
	t.Run("EmptyAllowList", testGathererEmptyAllowList)
	t.Run("AllowList", testGathererAllowList)
	t.Run("NilMatcher", testGathererNilMatcher)
	t.Run("Error", testGathererError)
}

func TestFilter(t *testing.T) {
	var (
		assert = assert.New(t)
		mfs    = []*dto.MetricFamily{
			{Name: stringPtr("c")},
			{Name: stringPtr("a")},
			{Name: stringPtr("b")},
		}
	)

	assert.Empty(Filter(nil, allowlist.New("a")))
	assert.Equal(mfs, Filter(mfs, nil))
	assert.Equal([]string{"c", "b"}, familyNames(Filter(mfs, allowlist.New("b", "c"))))
	assert.Len(mfs, 3)
}

func TestHandler(t *testing.T) {
	var (
		assert = assert.New(t)
		h      = Handler(newTestRegistry(t), allowlist.New("requests"), promhttp.HandlerOpts{})

		response = httptest.NewRecorder()
		request  = httptest.NewRequest("GET", "/metrics", nil)
	)

	h.ServeHTTP(response, request)
	assert.Equal(http.StatusOK, response.Code)

	body := response.Body.String()
	assert.True(strings.Contains(body, "requests 1"))
	assert.False(strings.Contains(body, "jvm_memory_heap"))
}
