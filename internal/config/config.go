// Package config resolves CLI settings from flags, environment and an
// optional rgbconv.yaml file.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to setting names when read from the environment,
// e.g. RGBCONV_PRECISION.
const EnvPrefix = "RGBCONV"

// Setting keys.
const (
	KeyPrecision = "precision"
	KeyStrict    = "strict"
	KeyVerbose   = "verbose"
	KeyTemplates = "templates"
	KeyOutput    = "output"
)

// Settings are the values shared by every command.
type Settings struct {
	Precision int    // decimals printed for HSL/HSV components
	Strict    bool   // reject out-of-range input instead of clamping
	Verbose   int    // commonlog verbosity
	Templates string // default templates directory for generate
	Output    string // default output directory for generate
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPrecision, 4)
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyVerbose, 0)
	v.SetDefault(KeyTemplates, "templates")
	v.SetDefault(KeyOutput, "out")
}

// ReadInConfig points v at path, or at ./rgbconv.yaml when path is empty,
// and enables environment lookup. A missing default file is not an error;
// a missing explicit file is.
func ReadInConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("rgbconv")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load reads and validates Settings from v.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		Precision: v.GetInt(KeyPrecision),
		Strict:    v.GetBool(KeyStrict),
		Verbose:   v.GetInt(KeyVerbose),
		Templates: v.GetString(KeyTemplates),
		Output:    v.GetString(KeyOutput),
	}

	if s.Precision < 0 || s.Precision > 17 {
		return Settings{}, fmt.Errorf("precision %d out of range [0, 17]", s.Precision)
	}
	if s.Verbose < -4 || s.Verbose > 5 {
		return Settings{}, fmt.Errorf("verbose %d out of range [-4, 5]", s.Verbose)
	}

	return s, nil
}
