// Package auth guards routes with HS256 bearer tokens.
package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/advdv/anyhttp"
	"github.com/golang-jwt/jwt/v5"
)

// StoreKeyUser is where the verified claims of the caller are stored.
const StoreKeyUser = "user"

// Config holds the token verification settings.
type Config struct {
	Secret   []byte
	Issuer   string
	Audience string
}

// Guard only continues the chain for requests with a valid bearer token. A missing token is
// answered with 401, an invalid one with 403.
func Guard(cfg Config) anyhttp.Middleware {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
	)

	return func(c *anyhttp.Context) error {
		token, ok := bearerToken(c.Req.Header("authorization"))
		if !ok {
			return c.Res.Status(http.StatusUnauthorized).JSON(map[string]string{
				"error":   "unauthorized",
				"message": "Bearer token required in Authorization header.",
			})
		}

		claims := jwt.MapClaims{}
		if _, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
			return cfg.Secret, nil
		}); err != nil {
			anyhttp.Log(c).Debug("rejected bearer token")

			return c.Res.Status(http.StatusForbidden).JSON(map[string]string{
				"error":   "forbidden",
				"message": "Invalid or expired token.",
			})
		}

		c.Set(StoreKeyUser, claims)

		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

// User returns the claims stored by [Guard].
func User(c *anyhttp.Context) (jwt.MapClaims, bool) {
	return anyhttp.Value[jwt.MapClaims](c, StoreKeyUser)
}

// Issue signs a token for subject that expires after ttl.
func Issue(cfg Config, subject string, ttl time.Duration) (string, error) {
	now := time.Now()

	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    cfg.Issuer,
		Audience:  jwt.ClaimStrings{cfg.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}).SignedString(cfg.Secret)
}
