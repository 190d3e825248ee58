package xviper

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// FileFlag is the command line flag that names a fully-qualified configuration file.
	FileFlag = "file"

	// NameFlag is the command line flag that names a configuration file to search for on the standard paths.
	NameFlag = "name"
)

// Configer is the subset of Viper behavior dealing with configuration paths and locations
type Configer interface {
	AddConfigPath(string)
	SetConfigName(string)
	SetConfigFile(string)
}

// AddStandardConfigPaths adds the standard *nix-style configuration paths
func AddStandardConfigPaths(c Configer, applicationName string) {
	c.AddConfigPath(fmt.Sprintf("/etc/%s", applicationName))
	c.AddConfigPath(fmt.Sprintf("$HOME/.%s", applicationName))
	c.AddConfigPath(".")
}

// FlagLookup is the behavior expected of a pflag.FlagSet to lookup individual flags by longhand name.
type FlagLookup interface {
	Lookup(string) *pflag.Flag
}

// BindConfigName passes the value of the given flag to c.SetConfigName.  If the flag is missing
// or empty, this function returns false and c is untouched.
func BindConfigName(c Configer, fl FlagLookup, flag string) bool {
	if f := fl.Lookup(flag); f != nil {
		if configName := f.Value.String(); len(configName) > 0 {
			c.SetConfigName(configName)
			return true
		}
	}

	return false
}

// BindConfigFile passes the value of the given flag to c.SetConfigFile.  If the flag is missing
// or empty, this function returns false and c is untouched.
func BindConfigFile(c Configer, fl FlagLookup, flag string) bool {
	if f := fl.Lookup(flag); f != nil {
		if configFile := f.Value.String(); len(configFile) > 0 {
			c.SetConfigFile(configFile)
			return true
		}
	}

	return false
}

// BindConfig prefers an explicit configuration file, falling back to a configuration name.
// It returns false if neither flag was set.
func BindConfig(c Configer, fl FlagLookup, fileFlag, nameFlag string) bool {
	if BindConfigFile(c, fl, fileFlag) {
		return true
	}

	return BindConfigName(c, fl, nameFlag)
}

// Configure parses the command line arguments and prepares v for ReadInConfig.  The flag set gains
// the FileFlag and NameFlag flags if it does not already define them.  Environment variables are
// prefixed with the upper-cased application name, with dots in keys mapped to underscores.
//
// The first element of arguments is assumed to be the program name, as with os.Args.
func Configure(applicationName string, arguments []string, fs *pflag.FlagSet, v *viper.Viper) error {
	if fs.Lookup(FileFlag) == nil {
		fs.StringP(FileFlag, "f", "", "the fully-qualified path to a configuration file")
	}

	if fs.Lookup(NameFlag) == nil {
		fs.StringP(NameFlag, "n", applicationName, "the name of the configuration file to search for")
	}

	if len(arguments) > 0 {
		arguments = arguments[1:]
	}

	if err := fs.Parse(arguments); err != nil {
		return err
	}

	AddStandardConfigPaths(v, applicationName)
	v.SetEnvPrefix(applicationName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if !BindConfig(v, fs, FileFlag, NameFlag) {
		v.SetConfigName(applicationName)
	}

	return v.BindPFlags(fs)
}
