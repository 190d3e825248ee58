package xmetrics

import (
	"github.com/xmidt-org/metricfilter/allowlist"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// RegistryIn is the set of dependencies for building a Registry within an uber/fx application.
type RegistryIn struct {
	fx.In

	// Options configures the registry.  If not supplied, defaults are used.
	Options *Options `optional:"true"`

	// Logger overrides Options.Logger when supplied.
	Logger *zap.Logger `optional:"true"`

	// AllowList, when supplied, replaces Options.AllowedNames.
	AllowList *allowlist.Filter `optional:"true"`
}

// NewRegistryFromIn builds a Registry from fx-supplied components.  The supplied Options are
// copied, never modified.
func NewRegistryFromIn(in RegistryIn) (Registry, error) {
	var o Options
	if in.Options != nil {
		o = *in.Options
	}

	if in.Logger != nil {
		o.Logger = in.Logger
	}

	if in.AllowList != nil {
		o.AllowedNames = in.AllowList.Names()
	}

	return NewRegistry(&o)
}

// Provide makes a Registry available to an uber/fx application.
func Provide() fx.Option {
	return fx.Provide(NewRegistryFromIn)
}
