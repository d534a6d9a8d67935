package app

import (
	"github.com/advdv/anyhttp"
	"github.com/advdv/anyhttp/internal/docs"
	"github.com/cockroachdb/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ProvideRoutes adds the route table returned by constructor to the application.
func ProvideRoutes(constructor any) fx.Option {
	return fx.Provide(fx.Annotate(constructor, fx.ResultTags(`group:"routes"`)))
}

// RoutingParams are the dependencies of the application router.
type RoutingParams struct {
	fx.In

	Env      Environment
	Logger   *zap.Logger
	Reverser *anyhttp.Reverser
	Tables   []anyhttp.Routes `group:"routes"`
}

// ProvideRouter binds every route table under ROUTE_PREFIX, adds the docs routes and registers
// all of them with the configured framework.
func ProvideRouter(p RoutingParams) (Router, error) {
	routes, err := anyhttp.Concat(p.Tables...)
	if err != nil {
		return nil, err
	}

	bindings := anyhttp.Bind(routes, p.Env.RoutePrefix...)
	if err := p.Reverser.NameAll(bindings); err != nil {
		return nil, errors.Wrap(err, "failed to name routes")
	}

	docRoutes, err := docs.Routes(docs.Config{
		DocsPath:      p.Env.DocsPath,
		ReferencePath: p.Env.ReferencePath,
		UI:            p.Env.ReferenceUI,
		Prefix:        p.Env.RoutePrefix,
	}, routes)
	if err != nil {
		return nil, err
	}

	bindings = append(bindings, anyhttp.Bind(docRoutes, p.Env.RoutePrefix...)...)

	router, err := NewRouter(p.Env.Framework, RouterConfig{
		Log:        p.Env.LogOptions(p.Logger),
		Translator: anyhttp.Translator{RedactInternal: p.Env.RedactInternalErrors},
	})
	if err != nil {
		return nil, err
	}

	if err := router.Register(bindings); err != nil {
		return nil, err
	}

	if n := router.RouteCount(); n != len(bindings) {
		return nil, errors.Newf("%s registered %d routes, expected %d", p.Env.Framework, n, len(bindings))
	}

	p.Logger.Info("routes registered",
		zap.String("framework", string(p.Env.Framework)),
		zap.Int("routes", len(bindings)))

	return router, nil
}
