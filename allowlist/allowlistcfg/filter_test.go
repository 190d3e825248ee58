package allowlistcfg

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/metricfilter/xviper"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newViper(t *testing.T, yaml string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	return v
}

func testNewFilterNames(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		core, logs = observer.New(zap.InfoLevel)
		v          = newViper(t, `
metricFilter:
  names:
    - "jvm.memory.heap"
    - "go_goroutines"
`)
	)

	f, err := NewFilter(zap.New(core), Sub(v))
	require.NoError(err)
	require.NotNil(f)

	assert.True(f.Matches("jvm.memory.heap"))
	assert.True(f.Matches("go_goroutines"))
	assert.False(f.Matches("jvm.memory.nonheap"))
	assert.Equal(1, logs.FilterMessage("metric allow-list configured").Len())
}

func testNewFilterMissing(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		core, logs = observer.New(zap.InfoLevel)
	)

	f, err := NewFilter(zap.New(core), Sub(newViper(t, "other: true\n")))
	require.NoError(err)
	assert.True(f.Matches("anything"))
	assert.Zero(f.Len())
	assert.Equal(1, logs.FilterMessageSnippet("all metrics will be exposed").Len())
}

func testNewFilterDisabled(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = newViper(t, `
metricFilter:
  disabled: true
  names: ["a"]
`)
	)

	f, err := NewFilter(nil, Sub(v))
	require.NoError(err)
	assert.True(f.Matches("b"))
}

func testNewFilterCommaSeparated(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = viper.New()
	)

	v.Set("names", "a,b")
	f, err := NewFilter(nil, v)
	require.NoError(err)
	assert.Equal([]string{"a", "b"}, f.Names())
	assert.False(f.Matches("a,b"))
}

func testNewFilterUnmarshalError(t *testing.T) {
	var (
		assert        = assert.New(t)
		expectedError = errors.New("expected unmarshal error")
	)

	f, err := NewFilter(nil, xviper.InvalidUnmarshaler{Err: expectedError})
	assert.Nil(f)
	assert.Equal(expectedError, err)
}

func testNewFilterNilUnmarshaler(t *testing.T) {
	assert := assert.New(t)
	f, err := NewFilter(nil, nil)
	assert.Nil(f)
	assert.Error(err)
}

func TestNewFilter(t *testing.T) {
	t.Run("Names", testNewFilterNames)
	t.Run("Missing", testNewFilterMissing)
	t.Run("Disabled", testNewFilterDisabled)
	t.Run("CommaSeparated", testNewFilterCommaSeparated)
	t.Run("UnmarshalError", testNewFilterUnmarshalError)
	t.Run("NilUnmarshaler", testNewFilterNilUnmarshaler)
}

func newEnvViper(t *testing.T, yaml string) *viper.Viper {
	var (
		fs = pflag.NewFlagSet("metricfilter", pflag.ContinueOnError)
		v  = viper.New()
	)

	require.NoError(t, xviper.Configure("metricfilter", []string{"metricfilter"}, fs, v))
	if len(yaml) > 0 {
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	}

	return v
}

func testNewFilterEnvironmentNames(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	t.Setenv("METRICFILTER_METRICFILTER_NAMES", "a,b")

	f, err := NewFilter(nil, Sub(newEnvViper(t, "")))
	require.NoError(err)
	assert.Equal([]string{"a", "b"}, f.Names())
	assert.True(f.Matches("a"))
	assert.False(f.Matches("c"))
}

func testNewFilterEnvironmentOverridesFile(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	t.Setenv("METRICFILTER_METRICFILTER_NAMES", "c")

	f, err := NewFilter(nil, Sub(newEnvViper(t, "metricFilter:\n  disabled: false\n")))
	require.NoError(err)
	assert.Equal([]string{"c"}, f.Names())
}

func testNewFilterEnvironmentDisabled(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	t.Setenv("METRICFILTER_METRICFILTER_DISABLED", "true")

	f, err := NewFilter(nil, Sub(newEnvViper(t, "metricFilter:\n  names: [\"a\"]\n")))
	require.NoError(err)
	assert.Zero(f.Len())
	assert.True(f.Matches("b"))
}

func TestNewFilterEnvironment(t *testing.T) {
	t.Run("Names", testNewFilterEnvironmentNames)
	t.Run("OverridesFile", testNewFilterEnvironmentOverridesFile)
	t.Run("Disabled", testNewFilterEnvironmentDisabled)
}

func TestSub(t *testing.T) {
	assert := assert.New(t)
	assert.NotNil(Sub(nil))
	assert.NotNil(Sub(viper.New()))
	assert.Equal("x", Sub(newViper(t, "metricFilter:\n  names: [x]\n")).GetStringSlice("names")[0])
}
