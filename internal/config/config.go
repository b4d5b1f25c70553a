// Package config provides the jokes server configuration
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jokes/pkg/jokeapi"
	"github.com/effective-security/x/configloader"
	"github.com/go-playground/validator/v10"
)

// DefaultServerName is the MCP server name advertised to clients
const DefaultServerName = "jokes"

// Config of the jokes server
type Config struct {
	// BaseURL of the Joke API
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"required,url"`
	// Timeout for the outbound requests, as Go duration.
	// Empty means no timeout.
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// ServerName is the name of the MCP server
	ServerName string `json:"server_name,omitempty" yaml:"server_name,omitempty" validate:"required"`
}

// Default returns the configuration for the public Joke API
func Default() *Config {
	return &Config{
		BaseURL:    jokeapi.DefaultBaseURL,
		ServerName: DefaultServerName,
	}
}

// LoadConfig from file, the defaults are returned if the file is empty
func LoadConfig(file string) (*Config, error) {
	cfg := Default()
	if file == "" {
		return cfg, nil
	}

	err := configloader.UnmarshalAndExpand(file, cfg)
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate returns error if the configuration is not valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if _, err := c.HTTPTimeout(); err != nil {
		return err
	}
	return nil
}

// HTTPTimeout returns the timeout of the outbound requests,
// zero means no timeout.
func (c *Config) HTTPTimeout() (time.Duration, error) {
	s := strings.TrimSpace(c.Timeout)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid timeout: %q", c.Timeout)
	}
	if d < 0 {
		return 0, errors.Errorf("invalid timeout: %q", c.Timeout)
	}
	return d, nil
}
