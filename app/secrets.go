package app

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-secretsmanager-caching-go/v2/secretcache"
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// SecretReader reads a secret string by id.
type SecretReader interface {
	GetSecretString(ctx context.Context, secretID string) (string, error)
}

// ParameterReader reads a (decrypted) parameter value by name.
type ParameterReader interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// AWSSecretReader reads secrets from Secrets Manager through a cache.
type AWSSecretReader struct {
	cache *secretcache.Cache
}

// NewAWSSecretReader creates a new AWSSecretReader using the provided AWS config.
func NewAWSSecretReader(cfg aws.Config) (*AWSSecretReader, error) {
	client := secretsmanager.NewFromConfig(cfg)
	cache, err := secretcache.New(func(c *secretcache.Cache) { c.Client = client })
	if err != nil {
		return nil, errors.Wrap(err, "failed to create secret cache")
	}

	return &AWSSecretReader{cache: cache}, nil
}

// GetSecretString retrieves a secret value from AWS Secrets Manager with caching.
func (r *AWSSecretReader) GetSecretString(ctx context.Context, secretID string) (string, error) {
	secret, err := r.cache.GetSecretStringWithContext(ctx, secretID)
	if err != nil {
		return "", errors.Wrapf(err, "failed to get secret %q", secretID)
	}

	return secret, nil
}

// AWSParameterReader reads parameters from SSM Parameter Store.
type AWSParameterReader struct {
	client *ssm.Client
}

// NewAWSParameterReader wraps the SSM client.
func NewAWSParameterReader(client *ssm.Client) *AWSParameterReader {
	return &AWSParameterReader{client: client}
}

// GetParameter returns the decrypted value of the named parameter.
func (r *AWSParameterReader) GetParameter(ctx context.Context, name string) (string, error) {
	out, err := r.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to get parameter %q", name)
	}

	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", errors.Newf("parameter %q has no value", name)
	}

	return *out.Parameter.Value, nil
}

// secretFromReader retrieves a secret value, extracting jsonPath from it when that is not empty.
func secretFromReader(ctx context.Context, reader SecretReader, secretID, jsonPath string) (string, error) {
	secret, err := reader.GetSecretString(ctx, secretID)
	if err != nil {
		return "", err
	}

	if jsonPath == "" {
		return secret, nil
	}

	result := gjson.Get(secret, jsonPath)
	if !result.Exists() {
		return "", errors.Newf("secret path %q not found in secret %q", jsonPath, secretID)
	}

	return result.String(), nil
}

// JWTSecret is the key bearer tokens are signed with.
type JWTSecret []byte

// ResolveJWTSecret reads the signing key from Secrets Manager when JWT_SECRET_ID is set, from
// Parameter Store when JWT_SECRET_PARAMETER is set and falls back to JWT_SECRET.
func ResolveJWTSecret(ctx context.Context, env Environment, secrets SecretReader, params ParameterReader) (JWTSecret, error) {
	var (
		val string
		err error
	)

	switch {
	case env.JWTSecretID != "":
		val, err = secretFromReader(ctx, secrets, env.JWTSecretID, env.JWTSecretJSONPath)
	case env.JWTSecretParameter != "":
		val, err = params.GetParameter(ctx, env.JWTSecretParameter)
	default:
		val = env.JWTSecret
	}

	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve jwt secret")
	}

	if val == "" {
		return nil, errors.New("jwt secret is empty")
	}

	return JWTSecret(val), nil
}
