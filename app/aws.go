package app

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

const awsConfigTimeout = 10 * time.Second

// provideAWSConfig loads the default SDK configuration and instruments it for tracing. Loading
// does not contact AWS; credentials are only resolved by the first client call.
func provideAWSConfig(tp trace.TracerProvider, prop propagation.TextMapPropagator) (aws.Config, error) {
	ctx, cancel := context.WithTimeout(context.Background(), awsConfigTimeout)
	defer cancel()

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to load aws config")
	}

	otelaws.AppendMiddlewares(&cfg.APIOptions,
		otelaws.WithTracerProvider(tp),
		otelaws.WithTextMapPropagator(prop),
	)

	return cfg, nil
}

// AWSClientProvider provides an AWS client built from the shared, instrumented config.
//
//	app.AWSClientProvider(func(cfg aws.Config) *s3.Client {
//	    return s3.NewFromConfig(cfg)
//	})
func AWSClientProvider[T any](factory func(aws.Config) T) fx.Option {
	return fx.Provide(func(cfg aws.Config) T { return factory(cfg.Copy()) })
}

// awsClients are the clients the application itself depends on.
var awsClients = fx.Options(
	AWSClientProvider(func(cfg aws.Config) *dynamodb.Client { return dynamodb.NewFromConfig(cfg) }),
	AWSClientProvider(func(cfg aws.Config) *sqs.Client { return sqs.NewFromConfig(cfg) }),
	AWSClientProvider(func(cfg aws.Config) *ssm.Client { return ssm.NewFromConfig(cfg) }),
)
