package chiadapter

import (
	"fmt"
	"net/http"

	"github.com/advdv/anyhttp"
	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
)

type registerFunc func(r chi.Router, pattern string, h http.HandlerFunc)

var methods = map[anyhttp.Method]registerFunc{
	anyhttp.MethodGet:    chi.Router.Get,
	anyhttp.MethodPost:   chi.Router.Post,
	anyhttp.MethodPut:    chi.Router.Put,
	anyhttp.MethodDelete: chi.Router.Delete,
}

// Register adds every binding as one chi route: the composed middleware is attached inline with
// [chi.Router.With] and the controller is the route handler. Paths are registered in chi's
// "{name}" syntax. Patterns chi rejects by panicking are returned as errors.
func (a *App) Register(bindings []anyhttp.RouteBinding) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(anyhttp.ErrInvalidRoute, "chi: %s", fmt.Sprint(r))
		}
	}()

	for _, b := range bindings {
		reg, ok := methods[b.Route.Method]
		if !ok {
			return errors.Wrapf(anyhttp.ErrInvalidRoute, "chi: cannot register method %q for %s", b.Route.Method, b.Path)
		}

		reg(a.Mux.With(a.middleware(anyhttp.Compose(b.Route.Middlewares...))),
			anyhttp.BraceParams(b.Path),
			a.controller(b.Route.Controller.Handler))
	}

	return nil
}

// RouteCount returns the number of native method and pattern registrations.
func (a *App) RouteCount() int {
	var n int
	_ = chi.Walk(a.Mux, func(string, string, http.Handler, ...func(http.Handler) http.Handler) error {
		n++
		return nil
	})

	return n
}

func (a *App) middleware(mw anyhttp.Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cont := func() error {
				next.ServeHTTP(w, r)
				if st := stateFrom(r.Context()); st != nil {
					return st.err
				}

				return nil
			}

			if err := mw(NewContext(w, r, cont, a.header)); err != nil {
				fail(r, err)
			}
		})
	}
}

func (a *App) controller(h anyhttp.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(NewContext(w, r, nil, a.header)); err != nil {
			fail(r, err)
		}
	}
}
