package app

import (
	"fmt"
	"strings"
	"time"

	// TODO(dlk): configurable env files
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
)

const (
	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	defaultLogLvl   = logger.LogLevelInfo
	sentryDsnEnvVar = "SENTRY_DSN"

	// Static file defaults
	staticPrefixEnvVar  = "STATIC_PREFIX"
	DefaultStaticPrefix = "/static"
	staticRootEnvVar    = "STATIC_ROOT"
	DefaultStaticRoot   = "static"
	staticMaxAgeEnvVar  = "STATIC_MAX_AGE"

	// Template defaults
	templateDirEnvVar     = "TEMPLATE_DIR"
	DefaultTemplateDir    = "templates"
	templateEngineEnvVar  = "TEMPLATE_ENGINE"
	TemplateEngineHTML    = "html"
	TemplateEngineDjango  = "django"
	DefaultTemplateEngine = TemplateEngineHTML

	// Adapter toggles
	corsOriginEnvVar         = "CORS_ORIGIN"
	idempotencyEnabledEnvVar = "IDEMPOTENCY_ENABLED"
	rateLimitEnabledEnvVar   = "RATE_LIMIT_ENABLED"
	serverTimingEnvVar       = "SERVER_TIMING_ENABLED"

	// Web server defaults
	DefaultHost               = "localhost"
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second

	// Session defaults
	sessionNameEnvVar       = "SESSION_NAME"
	DefaultSessionName      = "switchback"
	SessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	SessionEncryptKeyEnvVar = "SESSION_ENCRYPTION_KEY"
	defaultSessionMaxAge    = 3600 * 24 * 7

	// Redis defaults
	redisURLEnvVar  = "REDIS_URL"
	redisPassEnvVar = "REDIS_PASSWORD"
)

// A Config holds the settings an *App is built from.
//
// NewConfig reads a Config from environment variables;
// cf. the package documentation for the full list.
type Config struct {
	Env       switchback.Environment
	LogLevel  logger.LogLevel
	SentryDSN string

	// Requests whose path begins with StaticPrefix are served from StaticRoot,
	// bypassing middleware and dispatch.
	StaticPrefix string
	StaticRoot   string
	StaticMaxAge time.Duration

	TemplateDir    string
	TemplateEngine string

	CORSOrigins  []string
	Idempotency  bool
	RateLimit    bool
	ServerTiming bool

	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	SessionName       string
	SessionAuthKey    string
	SessionEncryptKey string

	RedisURL      string
	RedisPassword string
}

// NewConfig reads a Config from environment variables,
// falling back to defaults for those not set.
func NewConfig() Config {
	cfg := Config{
		Env:       switchback.EnvVarOrEnv(environmentEnvVar, switchback.Development),
		LogLevel:  switchback.EnvVarOrLogLevel(logLevelEnvVar, defaultLogLvl),
		SentryDSN: switchback.EnvVarOrString(sentryDsnEnvVar, ""),

		StaticPrefix: switchback.EnvVarOrString(staticPrefixEnvVar, DefaultStaticPrefix),
		StaticRoot:   switchback.EnvVarOrString(staticRootEnvVar, DefaultStaticRoot),
		StaticMaxAge: switchback.EnvVarOrDuration(staticMaxAgeEnvVar, 0),

		TemplateDir:    switchback.EnvVarOrString(templateDirEnvVar, DefaultTemplateDir),
		TemplateEngine: strings.ToLower(switchback.EnvVarOrString(templateEngineEnvVar, DefaultTemplateEngine)),

		CORSOrigins:  splitList(switchback.EnvVarOrString(corsOriginEnvVar, "")),
		Idempotency:  switchback.EnvVarOrBool(idempotencyEnabledEnvVar, false),
		RateLimit:    switchback.EnvVarOrBool(rateLimitEnabledEnvVar, false),
		ServerTiming: switchback.EnvVarOrBool(serverTimingEnvVar, false),

		Host:         switchback.EnvVarOrString(hostEnvVar, DefaultHost),
		Port:         switchback.EnvVarOrString(portEnvVar, DefaultPort),
		ReadTimeout:  switchback.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: switchback.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
		IdleTimeout:  switchback.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),

		SessionName:       switchback.EnvVarOrString(sessionNameEnvVar, DefaultSessionName),
		SessionAuthKey:    switchback.EnvVarOrString(SessionAuthKeyEnvVar, ""),
		SessionEncryptKey: switchback.EnvVarOrString(SessionEncryptKeyEnvVar, ""),

		RedisURL:      switchback.EnvVarOrString(redisURLEnvVar, ""),
		RedisPassword: switchback.EnvVarOrString(redisPassEnvVar, ""),
	}

	return cfg
}

// Addr joins Host and Port into the address the web server listens on.
func (c Config) Addr() string {
	port := c.Port
	if port == "" {
		port = DefaultPort
	}

	if port[0] != ':' {
		port = ":" + port
	}

	return c.Host + port
}

// Validate reports the first setting that cannot build an *App.
func (c Config) Validate() error {
	if err := c.Env.Valid(); err != nil {
		return fmt.Errorf("%w: environment %q", switchback.ErrBadConfig, c.Env)
	}

	if c.StaticPrefix != "" && !strings.HasPrefix(c.StaticPrefix, "/") {
		return fmt.Errorf("%w: static prefix %q must begin with /", switchback.ErrBadConfig, c.StaticPrefix)
	}

	switch c.TemplateEngine {
	case "", TemplateEngineHTML, TemplateEngineDjango:
	default:
		return fmt.Errorf("%w: unknown template engine %q", switchback.ErrBadConfig, c.TemplateEngine)
	}

	return nil
}

// splitList splits a comma separated list, dropping empty items.
func splitList(val string) []string {
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
