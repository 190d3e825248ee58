package allowlistcfg

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Key is the top-level configuration key under which Options are found.
const Key = "metricFilter"

// Options is the configurable form of an allow-list.
type Options struct {
	// Names are the metric names that are allowed through.  If empty, every metric is allowed.
	Names []string `mapstructure:"names"`

	// Disabled turns off filtering even when Names is set.  Handy for temporarily exposing
	// everything without editing the list.
	Disabled bool `mapstructure:"disabled"`
}

func (o *Options) names() []string {
	if o != nil && !o.Disabled {
		return o.Names
	}

	return nil
}

// optionKeys are the keys of Options, relative to Key
var optionKeys = []string{"names", "disabled"}

// Sub returns a viper instance holding just the Options found under Key.  Each option is looked
// up through v, so environment variables bound via AutomaticEnv apply even when the configuration
// file has no such section.  If nothing is configured, unmarshaling produces the zero Options.
func Sub(v *viper.Viper) *viper.Viper {
	sub := viper.New()
	if v == nil {
		return sub
	}

	for _, k := range optionKeys {
		if value := v.Get(Key + "." + k); value != nil {
			sub.Set(k, value)
		}
	}

	return sub
}

// decoderOptions allows a comma-separated string, e.g. from an environment variable, to stand in
// for a list of names.
func decoderOptions() []viper.DecoderConfigOption {
	return []viper.DecoderConfigOption{
		viper.DecodeHook(
			mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		),
	}
}
