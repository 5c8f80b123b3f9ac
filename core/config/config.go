package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

// ConfigurationName is the file name Load expects inside a config directory.
const ConfigurationName = "config.yaml"

// Configuration holds the suite-wide shell settings.
type Configuration struct {
	// Prompt is the PS1 template for interactive sessions.
	Prompt string `json:"prompt"`

	// DefaultPath seeds PATH for new sessions.
	DefaultPath string `json:"default_path" validate:"required"`

	// IFS seeds the field separator set consumed by read.
	IFS string `json:"ifs"`

	// Env lists the variables every new session starts with.
	Env []EnvVar `json:"env" validate:"unique=Name,dive"`
}

// EnvVar is one variable seeded into a new session's environment.
type EnvVar struct {
	Name     string `json:"name" validate:"required"`
	Value    string `json:"value"`
	Export   bool   `json:"export"`
	ReadOnly bool   `json:"read_only"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the embedded default configuration.
func Default() *Configuration {
	return defaultConfig()
}
