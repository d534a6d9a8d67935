package app

import (
	"strings"
	"time"

	"github.com/advdv/anyhttp"
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment is the process configuration. It is parsed once at startup and handed to every
// constructor that needs it.
type Environment struct {
	Port        int               `env:"PORT" envDefault:"3000"`
	Framework   anyhttp.Framework `env:"FRAMEWORK" envDefault:"echo"`
	RoutePrefix []string          `env:"ROUTE_PREFIX" envSeparator:","`
	ServiceName string            `env:"SERVICE_NAME" envDefault:"anyhttp"`
	LogLevel    zapcore.Level     `env:"LOG_LEVEL" envDefault:"info"`

	// OtelExporter selects the span exporter: "none", "stdout" or "xrayudp".
	OtelExporter string `env:"OTEL_EXPORTER" envDefault:"none"`

	RequestIDHeader      string `env:"REQUEST_ID_HEADER" envDefault:"x-request-id"`
	RedactInternalErrors bool   `env:"REDACT_INTERNAL_ERRORS"`

	// JWTSecret is used unless the secret is read from Secrets Manager (JWTSecretID) or from
	// SSM Parameter Store (JWTSecretParameter).
	JWTSecret          string `env:"JWT_SECRET" envDefault:"secret"`
	JWTSecretID        string `env:"JWT_SECRET_ID"`
	JWTSecretJSONPath  string `env:"JWT_SECRET_JSON_PATH"`
	JWTSecretParameter string `env:"JWT_SECRET_PARAMETER"`
	JWTIssuer          string `env:"JWT_ISSUER" envDefault:"auth"`
	JWTAudience        string `env:"JWT_AUDIENCE" envDefault:"api"`

	UsersStore          string `env:"USERS_STORE" envDefault:"memory"`
	UsersTable          string `env:"USERS_TABLE"`
	UsersEventsQueueURL string `env:"USERS_EVENTS_QUEUE_URL"`

	DocsPath      string `env:"DOCS_PATH" envDefault:"/doc"`
	ReferencePath string `env:"REFERENCE_PATH" envDefault:"/reference"`
	ReferenceUI   string `env:"REFERENCE_UI" envDefault:"scalar"`

	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
}

// ParseEnv parses and validates the environment.
func ParseEnv() (Environment, error) {
	var e Environment
	if err := env.Parse(&e); err != nil {
		return e, errors.Wrap(err, "failed to parse environment")
	}

	if err := e.validate(); err != nil {
		return e, err
	}

	return e, nil
}

func (e *Environment) validate() error {
	fw, err := anyhttp.ParseFramework(string(e.Framework))
	if err != nil {
		return errors.Wrap(err, "FRAMEWORK")
	}

	e.Framework = fw

	switch e.UsersStore = strings.ToLower(e.UsersStore); e.UsersStore {
	case "memory":
	case "dynamodb":
		if e.UsersTable == "" {
			return errors.New("USERS_TABLE is required when USERS_STORE is dynamodb")
		}
	default:
		return errors.Newf("unsupported USERS_STORE: %q (supported: memory, dynamodb)", e.UsersStore)
	}

	switch e.ReferenceUI {
	case "scalar", "swagger":
	default:
		return errors.Newf("unsupported REFERENCE_UI: %q (supported: scalar, swagger)", e.ReferenceUI)
	}

	return nil
}

// LogOptions returns the logging hook options every adapter is built with.
func (e Environment) LogOptions(logger *zap.Logger) anyhttp.LogOptions {
	return anyhttp.LogOptions{Logger: logger, RequestIDHeader: e.RequestIDHeader}
}
