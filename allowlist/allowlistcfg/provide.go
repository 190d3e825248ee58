package allowlistcfg

import (
	"github.com/spf13/viper"
	"github.com/xmidt-org/metricfilter/allowlist"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// FilterIn is the set of dependencies required to build the configured allow-list.
type FilterIn struct {
	fx.In

	// Logger is used to report the configured policy.  If not supplied, sallust.Default() is used.
	Logger *zap.Logger `optional:"true"`

	// Viper is the root configuration.  Options are read from the Key section, including any
	// environment overrides.
	Viper *viper.Viper
}

// Provide makes the configured *allowlist.Filter available to an uber/fx application.
func Provide() fx.Option {
	return fx.Provide(
		func(in FilterIn) (*allowlist.Filter, error) {
			return NewFilter(in.Logger, Sub(in.Viper))
		},
	)
}
