package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/sequence/layout"
)

// EnvConfig names the environment variable holding a config file path.
const EnvConfig = "LIFELINE_CONFIG"

// FileName is the config file looked up in the user's config directory.
const FileName = "lifeline.toml"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("alignment", func(fl validator.FieldLevel) bool {
		_, err := layout.ParseAlignment(fl.Field().String())
		return err == nil
	})
	return v
}

// Find returns the config file to load. explicit (the --config flag) wins,
// then $LIFELINE_CONFIG, then lifeline.toml in the user config directory.
// ok is false when no file exists and none was requested.
func Find(explicit string) (path string, ok bool) {
	if explicit != "" {
		return explicit, true
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p, true
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		d, err := os.UserConfigDir()
		if err != nil {
			return "", false
		}
		dir = d
	}
	p := filepath.Join(dir, "lifeline", FileName)
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

// LoadDefault loads the file chosen by [Find], or returns [Default] when
// there is none. It also returns the path that was loaded.
func LoadDefault(explicit string) (Config, string, error) {
	path, ok := Find(explicit)
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file on top of
// [Default] and validates the result. Unknown keys are errors.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unsupported config extension %q", path, ext)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, formatValidationError(err), "invalid config")
	}
	return nil
}

// formatValidationError reports the first failed constraint in a
// user-friendly form.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	e := verrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: field is required", field)
	case "gte":
		return fmt.Errorf("%s: must be at least %s", field, e.Param())
	case "gt":
		return fmt.Errorf("%s: must be greater than %s", field, e.Param())
	case "lte", "max":
		return fmt.Errorf("%s: must not exceed %s", field, e.Param())
	case "oneof":
		return fmt.Errorf("%s: %v is not one of: %s", field, e.Value(), e.Param())
	case "alignment":
		return fmt.Errorf("%s: %v is not one of: %s", field, e.Value(), strings.Join(layout.Alignments(), ", "))
	case "hostname_port":
		return fmt.Errorf("%s: %v is not a host:port address", field, e.Value())
	default:
		return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
	}
}
