package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/lifeos/internal/session"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Delays   DelaysConfig      `yaml:"delays"`
	Sessions SessionsConfig    `yaml:"sessions"`
	Seed     SeedConfig        `yaml:"seed"`
	Auth     AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Delays.Validate(); err != nil {
		return fmt.Errorf("delays: %w", err)
	}
	if err := c.Sessions.Validate(); err != nil {
		return fmt.Errorf("sessions: %w", err)
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DelaysConfig holds the simulated latencies. Values are Go duration
// strings such as "3s" or "750ms".
type DelaysConfig struct {
	Splash time.Duration `yaml:"splash"`
	Reply  time.Duration `yaml:"reply"`
	Listen time.Duration `yaml:"listen"`
	Voice  time.Duration `yaml:"voice"`
	Unlock time.Duration `yaml:"unlock"`
	Clock  time.Duration `yaml:"clock"`
}

// Validate validates the delays configuration.
func (c *DelaysConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Splash, validation.Min(time.Duration(0))),
		validation.Field(&c.Reply, validation.Min(time.Duration(0))),
		validation.Field(&c.Listen, validation.Min(time.Duration(0))),
		validation.Field(&c.Voice, validation.Min(time.Duration(0))),
		validation.Field(&c.Unlock, validation.Min(time.Duration(0))),
		validation.Field(&c.Clock, validation.Required, validation.Min(time.Millisecond)),
	)
}

// Session converts the delays for the session package.
func (c *DelaysConfig) Session() session.Delays {
	return session.Delays{
		Splash: c.Splash,
		Reply:  c.Reply,
		Listen: c.Listen,
		Voice:  c.Voice,
		Unlock: c.Unlock,
		Clock:  c.Clock,
	}
}

// SessionsConfig controls idle session reaping.
type SessionsConfig struct {
	IdleTTL      time.Duration `yaml:"idle_ttl"`
	ReapInterval time.Duration `yaml:"reap_interval"`
}

// Validate validates the sessions configuration.
func (c *SessionsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.IdleTTL, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.ReapInterval, validation.Required, validation.Min(time.Second)),
	)
}

// SeedConfig points at an optional seed override file. An empty Path serves
// the built-in document.
type SeedConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Delays: DelaysConfig{
			Splash: 3 * time.Second,
			Reply:  time.Second,
			Listen: 3 * time.Second,
			Voice:  3 * time.Second,
			Unlock: 2 * time.Second,
			Clock:  time.Second,
		},
		Sessions: SessionsConfig{
			IdleTTL:      30 * time.Minute,
			ReapInterval: time.Minute,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
