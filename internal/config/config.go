package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	envPrefix = "JELLYFAV"

	defaultClientName    = "FavDownloader"
	defaultDeviceName    = "ExternalScript"
	defaultClientVersion = "1.0.0"
	defaultLogFormat     = "text"
)

// Config fields map to JELLYFAV_<FIELD_IN_SNAKE_CASE>, e.g. ServerURL is read
// from JELLYFAV_SERVER_URL. No field carries an envconfig alt name, so
// unprefixed variables such as USERNAME are never consulted.
type Config struct {
	ServerURL string `split_words:"true" yaml:"serverURL" validate:"required,url"`
	Username  string `split_words:"true" yaml:"username"`
	Password  string `split_words:"true" yaml:"password"`

	MoviesDir string `split_words:"true" yaml:"moviesDir" validate:"required"`
	SeriesDir string `split_words:"true" yaml:"seriesDir" validate:"required"`

	ClientName    string `split_words:"true" yaml:"clientName"    validate:"required"`
	DeviceName    string `split_words:"true" yaml:"deviceName"    validate:"required"`
	DeviceID      string `split_words:"true" yaml:"deviceID"`
	ClientVersion string `split_words:"true" yaml:"clientVersion" validate:"required"`

	LogFormat string `split_words:"true" yaml:"logFormat" validate:"oneof=text json"`
}

func defaults() Config {
	return Config{
		ClientName:    defaultClientName,
		DeviceName:    defaultDeviceName,
		ClientVersion: defaultClientVersion,
		LogFormat:     defaultLogFormat,
	}
}

// Validate checks the configuration and reports every invalid field at once.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating config: %w", err)
	}

	problems := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		problems[i] = describe(fe)
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	env := envPrefix + "_" + envName(fe.StructField())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required (set %s)", fe.Field(), env)
	case "url":
		return fmt.Sprintf("%s must be an absolute URL, got %q", fe.Field(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}

// HasCredentials reports whether both username and password are configured.
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// envName converts a field name to its envconfig split_words form.
func envName(field string) string {
	runes := []rune(field)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
