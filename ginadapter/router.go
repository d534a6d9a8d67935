package ginadapter

import (
	"fmt"

	"github.com/advdv/anyhttp"
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

type registerFunc func(r gin.IRoutes, path string, handlers ...gin.HandlerFunc) gin.IRoutes

var methods = map[anyhttp.Method]registerFunc{
	anyhttp.MethodGet:    gin.IRoutes.GET,
	anyhttp.MethodPost:   gin.IRoutes.POST,
	anyhttp.MethodPut:    gin.IRoutes.PUT,
	anyhttp.MethodDelete: gin.IRoutes.DELETE,
}

// Register adds every binding as one gin route with two handlers: the composed middleware and the
// controller. Conflicting paths, which gin rejects by panicking, are returned as errors.
func (a *App) Register(bindings []anyhttp.RouteBinding) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(anyhttp.ErrInvalidRoute, "gin: %s", fmt.Sprint(r))
		}
	}()

	for _, b := range bindings {
		reg, ok := methods[b.Route.Method]
		if !ok {
			return errors.Wrapf(anyhttp.ErrInvalidRoute, "gin: cannot register method %q for %s", b.Route.Method, b.Path)
		}

		reg(a.Engine, b.Path,
			a.middleware(anyhttp.Compose(b.Route.Middlewares...)),
			a.controller(b.Route.Controller.Handler))
	}

	return nil
}

// middleware runs the composed middleware. Its continuation resumes the gin chain and reports the
// first error recorded downstream. When the continuation was never resumed the chain is aborted, so
// the controller does not run after a short-circuit.
func (a *App) middleware(mw anyhttp.Middleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		var resumed bool
		var downstream error

		next := func() error {
			resumed = true
			before := len(c.Errors)
			c.Next()

			if len(c.Errors) > before {
				downstream = c.Errors[before].Err
			}

			return downstream
		}

		err := mw(NewContext(c, next, a.header))
		if err != nil && (downstream == nil || !errors.Is(err, downstream)) {
			_ = c.Error(err)
		}

		if !resumed || err != nil {
			c.Abort()
		}
	}
}

func (a *App) controller(h anyhttp.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(NewContext(c, nil, a.header)); err != nil {
			_ = c.Error(err)
			c.Abort()
		}
	}
}
