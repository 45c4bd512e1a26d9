package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/angelmondragon/stockdesk/pkg/access"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

const (
	EnvPrefix = "STOCKDESK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv          = "STOCKDESK_APP_ENV"
	EnvPort            = "STOCKDESK_APP_PORT"
	EnvLogLevel        = "STOCKDESK_LOG_LEVEL"
	EnvLogWarnStack    = "STOCKDESK_LOG_WARN_STACK"
	EnvLogFormat       = "STOCKDESK_LOG_FORMAT"
	EnvRemoteEndpoint  = "STOCKDESK_REMOTE_ENDPOINT"
	EnvRemoteToken     = "STOCKDESK_REMOTE_TOKEN"
	EnvRemoteTimeout   = "STOCKDESK_REMOTE_TIMEOUT"
	EnvProbeTimeout    = "STOCKDESK_REMOTE_PROBE_TIMEOUT"
	EnvMaxErrorBody    = "STOCKDESK_REMOTE_MAX_ERROR_BODY"
	EnvAllowedOrigins  = "STOCKDESK_GATEWAY_ALLOWED_ORIGINS"
	EnvShutdownTimeout = "STOCKDESK_GATEWAY_SHUTDOWN_TIMEOUT"
	EnvAccessRoles     = "STOCKDESK_ACCESS_ROLES"
	EnvTrustRoleHeader = "STOCKDESK_ACCESS_TRUST_ROLE_HEADER"
	EnvDefaultRole     = "STOCKDESK_ACCESS_DEFAULT_ROLE"
)

type Config struct {
	App     AppConfig
	Remote  RemoteConfig
	Gateway GatewayConfig
	Access  AccessConfig
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var err error
	err = multierr.Append(err, c.Remote.validate())
	if c.Remote.RequestTimeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvRemoteTimeout))
	}
	if c.Remote.ProbeTimeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvProbeTimeout))
	}
	if _, perr := c.Access.Policy(); perr != nil {
		err = multierr.Append(err, fmt.Errorf("%s: %w", EnvAccessRoles, perr))
	}
	return err
}

type AppConfig struct {
	Env          string `envconfig:"STOCKDESK_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOCKDESK_APP_PORT" default:"8090"`
	LogLevel     string `envconfig:"STOCKDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKDESK_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"STOCKDESK_LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RemoteConfig struct {
	Endpoint       string        `envconfig:"STOCKDESK_REMOTE_ENDPOINT" required:"true"`
	Token          string        `envconfig:"STOCKDESK_REMOTE_TOKEN"`
	RequestTimeout time.Duration `envconfig:"STOCKDESK_REMOTE_TIMEOUT" default:"30s"`
	ProbeTimeout   time.Duration `envconfig:"STOCKDESK_REMOTE_PROBE_TIMEOUT" default:"5s"`
	MaxErrorBody   int64         `envconfig:"STOCKDESK_REMOTE_MAX_ERROR_BODY" default:"65536"`
}

func (r RemoteConfig) validate() error {
	endpoint := strings.TrimSpace(r.Endpoint)
	if endpoint == "" {
		return fmt.Errorf("%s is required", EnvRemoteEndpoint)
	}
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute URL", EnvRemoteEndpoint)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", EnvRemoteEndpoint)
	}
	return nil
}

type GatewayConfig struct {
	AllowedOrigins  []string      `envconfig:"STOCKDESK_GATEWAY_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"STOCKDESK_GATEWAY_SHUTDOWN_TIMEOUT" default:"10s"`
}

type AccessConfig struct {
	// Roles maps a role to its permissions, e.g. "viewer:catalog.read|orders.read,admin:*".
	Roles       map[string]string `envconfig:"STOCKDESK_ACCESS_ROLES"`
	DefaultRole string            `envconfig:"STOCKDESK_ACCESS_DEFAULT_ROLE" default:"viewer"`

	// TrustRoleHeader honours X-Stockdesk-Role. Enable only behind a proxy that authenticates
	// callers and sets the header; otherwise any caller can claim any role.
	TrustRoleHeader bool `envconfig:"STOCKDESK_ACCESS_TRUST_ROLE_HEADER" default:"false"`
}

// Policy builds the access policy, falling back to the built-in roles when none are configured.
func (a AccessConfig) Policy() (*access.Policy, error) {
	roles := a.Roles
	if len(roles) == 0 {
		roles = access.DefaultRoles()
	}
	policy, err := access.NewPolicy(roles)
	if err != nil {
		return nil, err
	}
	if a.DefaultRole != "" && !policy.HasRole(a.DefaultRole) {
		return nil, fmt.Errorf("default role %q is not defined", a.DefaultRole)
	}
	return policy, nil
}
