package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	// ConfigurationName is the file name the configuration is stored under.
	ConfigurationName = "config.yaml"
	// EnvConfig overrides the configuration path.
	EnvConfig = "RASH_CONFIG"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"

	SplitNaive = "naive"
	SplitShlex = "shlex"
)

type Configuration struct {
	Prompt           string `json:"prompt"`
	Banner           bool   `json:"banner"`
	Color            string `json:"color" validate:"oneof=always auto never"`
	LineEditing      bool   `json:"line_editing"`
	WordSplitting    string `json:"word_splitting" validate:"oneof=naive shlex"`
	SignalStatusBase int    `json:"signal_status_base" validate:"gte=0,lte=255"`
	EventLog         string `json:"event_log"`
	Transcript       string `json:"transcript"`
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

// ShouldColor reports whether output decorations are wanted given whether
// the session is interactive.
func (c *Configuration) ShouldColor(interactive bool) bool {
	switch c.Color {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	default:
		return interactive
	}
}

// Default returns the built-in configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog(fsys afero.Fs) (afero.File, error) {
	return fsys.OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// OpenTranscript creates the transcript file, replacing any previous
// recording.
func (c *Configuration) OpenTranscript(fsys afero.Fs) (afero.File, error) {
	return fsys.OpenFile(c.Transcript, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0600)
}
