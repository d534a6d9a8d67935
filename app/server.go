package app

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ServerParams holds the dependencies for creating an HTTP server.
type ServerParams struct {
	fx.In

	Env        Environment
	Router     Router
	TracerProv trace.TracerProvider
	Propagator propagation.TextMapPropagator
}

// NewServer creates the HTTP server around the traced router.
func NewServer(p ServerParams) *http.Server {
	handler := withTracing(p.TracerProv, p.Propagator, p.Env.ServiceName)(p.Router)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", p.Env.Port),
		Handler:           handler,
		ReadHeaderTimeout: p.Env.ReadHeaderTimeout,
	}
}

// startServerHook listens when the application starts, so that a started application accepts
// connections, and shuts the server down gracefully when it stops. The server's Addr is updated
// to the bound address, which matters for PORT=0.
func startServerHook(lc fx.Lifecycle, server *http.Server, env Environment, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", server.Addr)
			if err != nil {
				return errors.Wrapf(err, "failed to listen on %s", server.Addr)
			}

			server.Addr = ln.Addr().String()
			logger.Info("starting server",
				zap.String("addr", server.Addr),
				zap.String("framework", string(env.Framework)))

			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server error", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server")

			ctx, cancel := context.WithTimeout(ctx, env.ShutdownTimeout)
			defer cancel()

			return server.Shutdown(ctx)
		},
	})
}
