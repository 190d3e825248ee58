package allowlistcfg

import (
	"errors"

	"github.com/xmidt-org/metricfilter/allowlist"
	"github.com/xmidt-org/metricfilter/xviper"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

var errNoUnmarshaler = errors.New("an Unmarshaler is required to configure an allow-list")

// NewFilter unmarshals Options and produces the corresponding allowlist.Filter.  If l is nil,
// sallust.Default() is used.  A nil Unmarshaler is an error.  Use Sub to obtain an Unmarshaler
// that tolerates missing configuration.
func NewFilter(l *zap.Logger, u xviper.Unmarshaler) (*allowlist.Filter, error) {
	if l == nil {
		l = sallust.Default()
	}

	if u == nil {
		return nil, errNoUnmarshaler
	}

	o := new(Options)
	if err := xviper.Unmarshal(u, decoderOptions(), o); err != nil {
		return nil, err
	}

	f := allowlist.New(o.names()...)
	if f.Len() == 0 {
		l.Info("no metric allow-list configured; all metrics will be exposed", zap.Bool("disabled", o.Disabled))
	} else {
		l.Info("metric allow-list configured", zap.Strings("names", f.Names()))
	}

	return f, nil
}
