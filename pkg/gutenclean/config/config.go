package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/gutenclean/pkg/gutenclean/internalerr"
	"github.com/cognicore/gutenclean/pkg/gutenclean/textio"
)

// Config is the on-disk run configuration. Every field is optional; the
// zero value selects English, UTF-8 and the built-in tables.
//
// Example:
//
//	language: en
//	input:
//	  encoding: auto
//	output:
//	  encoding: utf-8
//	markers: ./markers.yaml
//	stoplist: ./stoplist.yaml
//	lexicon: ./lexicon.yaml
//	lexicon_db: ./lemmas.db
type Config struct {
	Language string `yaml:"language" validate:"omitempty,bcp47_language_tag"`
	Input    struct {
		Encoding string `yaml:"encoding" validate:"omitempty,input_encoding"`
	} `yaml:"input"`
	Output struct {
		Encoding string `yaml:"encoding" validate:"omitempty,output_encoding"`
	} `yaml:"output"`
	Markers   string `yaml:"markers" validate:"omitempty,file"`
	Stoplist  string `yaml:"stoplist" validate:"omitempty,file"`
	Lexicon   string `yaml:"lexicon" validate:"omitempty,file"`
	LexiconDB string `yaml:"lexicon_db" validate:"omitempty,file"`
}

// Default returns the zero-config defaults made explicit.
func Default() *Config {
	cfg := &Config{Language: "en"}
	cfg.Input.Encoding = textio.UTF8
	cfg.Output.Encoding = textio.UTF8
	return cfg
}

// Load reads a YAML config file and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if strings.TrimSpace(c.Language) == "" {
		c.Language = d.Language
	}
	if strings.TrimSpace(c.Input.Encoding) == "" {
		c.Input.Encoding = d.Input.Encoding
	}
	if strings.TrimSpace(c.Output.Encoding) == "" {
		c.Output.Encoding = d.Output.Encoding
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("input_encoding", func(fl validator.FieldLevel) bool {
		return textio.ValidLabel(fl.Field().String(), true)
	})
	v.RegisterValidation("output_encoding", func(fl validator.FieldLevel) bool {
		return textio.ValidLabel(fl.Field().String(), false)
	})
	return v
}

// Validate checks field formats and that referenced files exist.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %q)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		return fmt.Errorf("%w: %s", internalerr.ErrInvalidConfig, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
}
