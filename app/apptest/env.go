package apptest

import (
	"strconv"
	"testing"
)

// Env is a chainable builder for environment overrides via t.Setenv. Create one with [SetEnv].
type Env struct {
	t testing.TB
}

// SetEnv sets the environment to test defaults.
//
// Defaults:
//   - PORT: "0", any free port
//   - SERVICE_NAME: "test"
//   - FRAMEWORK: "echo"
//   - LOG_LEVEL: "error"
//   - OTEL_EXPORTER: "none"
//   - JWT_SECRET: "test-secret"
//   - USERS_STORE: "memory"
//   - AWS_REGION: "us-east-1"
//   - AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY: "test"
func SetEnv(t testing.TB) *Env {
	t.Helper()
	t.Setenv("PORT", "0")
	t.Setenv("SERVICE_NAME", "test")
	t.Setenv("FRAMEWORK", "echo")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("OTEL_EXPORTER", "none")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("USERS_STORE", "memory")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	return &Env{t: t}
}

// Set overrides any variable.
func (e *Env) Set(key, value string) *Env {
	e.t.Helper()
	e.t.Setenv(key, value)

	return e
}

// Port overrides PORT.
func (e *Env) Port(port int) *Env { return e.Set("PORT", strconv.Itoa(port)) }

// Framework overrides FRAMEWORK.
func (e *Env) Framework(fw string) *Env { return e.Set("FRAMEWORK", fw) }

// RoutePrefix overrides ROUTE_PREFIX.
func (e *Env) RoutePrefix(prefix string) *Env { return e.Set("ROUTE_PREFIX", prefix) }

// RedactInternalErrors sets REDACT_INTERNAL_ERRORS.
func (e *Env) RedactInternalErrors() *Env { return e.Set("REDACT_INTERNAL_ERRORS", "true") }
