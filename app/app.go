package app

import (
	"context"
	"time"

	"github.com/advdv/anyhttp"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.uber.org/fx"
)

const secretReadTimeout = 10 * time.Second

// App wraps an fx.App for lifecycle management.
type App struct {
	app *fx.App
}

// Option configures the App.
type Option func(*[]fx.Option)

// WithFx adds fx options, typically modules that provide route tables via [ProvideRoutes].
func WithFx(opts ...fx.Option) Option {
	return func(o *[]fx.Option) { *o = append(*o, opts...) }
}

// WithRoutes is shorthand for WithFx(ProvideRoutes(constructor)).
func WithRoutes(constructor any) Option {
	return WithFx(ProvideRoutes(constructor))
}

// FxOptions returns the complete application graph. [New] and apptest both build from it.
func FxOptions(opts ...Option) []fx.Option {
	var extra []fx.Option
	for _, opt := range opts {
		opt(&extra)
	}

	return append([]fx.Option{
		fx.NopLogger,
		fx.Provide(ParseEnv),
		fx.Provide(NewLogger),
		fx.Provide(NewTracerProvider),
		fx.Provide(NewPropagator),
		fx.Provide(NewHTTPTransport),
		fx.Provide(provideAWSConfig),
		awsClients,
		fx.Provide(func(cfg aws.Config) (SecretReader, error) { return NewAWSSecretReader(cfg) }),
		fx.Provide(func(client *ssm.Client) ParameterReader { return NewAWSParameterReader(client) }),
		fx.Provide(func(env Environment, secrets SecretReader, params ParameterReader) (JWTSecret, error) {
			ctx, cancel := context.WithTimeout(context.Background(), secretReadTimeout)
			defer cancel()

			return ResolveJWTSecret(ctx, env, secrets, params)
		}),
		fx.Provide(anyhttp.NewReverser),
		fx.Provide(ProvideRouter),
		fx.Provide(NewServer),
		fx.Invoke(startServerHook),
	}, extra...)
}

// New creates the application.
func New(opts ...Option) *App {
	return &App{app: fx.New(FxOptions(opts...)...)}
}

// Err reports a failure to build the application graph.
func (a *App) Err() error { return a.app.Err() }

// Run starts the application and blocks until interrupted.
func (a *App) Run() {
	a.app.Run()
}

// Start starts the application and stops it again once ctx is done.
func (a *App) Start(ctx context.Context) error {
	if err := a.app.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), a.app.StopTimeout())
	defer cancel()

	return a.app.Stop(stopCtx)
}
