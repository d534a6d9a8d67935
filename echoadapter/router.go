package echoadapter

import (
	"github.com/advdv/anyhttp"
	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
)

type registerFunc func(e *echo.Echo, path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route

// methods is the registration table. A method missing here cannot be registered.
var methods = map[anyhttp.Method]registerFunc{
	anyhttp.MethodGet:    (*echo.Echo).GET,
	anyhttp.MethodPost:   (*echo.Echo).POST,
	anyhttp.MethodPut:    (*echo.Echo).PUT,
	anyhttp.MethodDelete: (*echo.Echo).DELETE,
}

// Register adds every binding as one echo route: the composed middleware as route middleware and
// the controller as the handler.
func (a *App) Register(bindings []anyhttp.RouteBinding) error {
	for _, b := range bindings {
		reg, ok := methods[b.Route.Method]
		if !ok {
			return errors.Wrapf(anyhttp.ErrInvalidRoute, "echo: cannot register method %q for %s", b.Route.Method, b.Path)
		}

		reg(a.Echo, b.Path,
			a.controller(b.Route.Controller.Handler),
			a.middleware(anyhttp.Compose(b.Route.Middlewares...)))
	}

	return nil
}

func (a *App) middleware(mw anyhttp.Middleware) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return mw(NewContext(c, func() error { return next(c) }, a.header))
		}
	}
}

func (a *App) controller(h anyhttp.Handler) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h(NewContext(c, nil, a.header))
	}
}
