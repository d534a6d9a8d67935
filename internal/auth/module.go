package auth

import (
	"github.com/advdv/anyhttp/app"
	"go.uber.org/fx"
)

// Provide supplies the [Config] from the environment and the resolved signing key.
var Provide = fx.Provide(func(env app.Environment, secret app.JWTSecret) Config {
	return Config{Secret: secret, Issuer: env.JWTIssuer, Audience: env.JWTAudience}
})
