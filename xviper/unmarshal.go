package xviper

import "github.com/spf13/viper"

// Unmarshaler is the viper behavior for decoding configuration into a struct.  *viper.Viper
// implements this interface.
type Unmarshaler interface {
	Unmarshal(interface{}, ...viper.DecoderConfigOption) error
}

// InvalidUnmarshaler is an Unmarshaler that always returns a configured error.  Useful when
// configuration is absent, or for testing.
type InvalidUnmarshaler struct {
	Err error
}

func (iu InvalidUnmarshaler) Unmarshal(interface{}, ...viper.DecoderConfigOption) error {
	return iu.Err
}

// Unmarshal decodes each value in turn, halting at the first error.  Every value receives the same
// decoder options.
func Unmarshal(u Unmarshaler, opts []viper.DecoderConfigOption, v ...interface{}) error {
	var err error
	for i := 0; err == nil && i < len(v); i++ {
		err = u.Unmarshal(v[i], opts...)
	}

	return err
}
