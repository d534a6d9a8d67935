// Package chiadapter serves anyhttp route tables with chi. Responses are buffered so that a
// failing chain can still be answered with a clean error body, and the request lifecycle is
// observable through explicit request, response and error hooks.
package chiadapter

import (
	"net/http"

	"github.com/advdv/anyhttp"
	"github.com/go-chi/chi/v5"
)

// Options configure the chi application.
type Options struct {
	Log        anyhttp.LogOptions
	Translator anyhttp.Translator

	// BufferLimit caps the response body in bytes. Zero or less disables the cap.
	BufferLimit int

	// Before are native middlewares that run ahead of the hooks, e.g. chi's RequestID.
	Before []func(http.Handler) http.Handler
}

// App is a chi mux with the lifecycle hooks and the logging hooks installed.
type App struct {
	*chi.Mux

	header     string
	translator anyhttp.Translator
	bufLimit   int

	onRequest  []RequestHook
	onResponse []ResponseHook
	onError    []ErrorHook
}

// New creates the chi application.
func New(opts Options) *App {
	a := &App{
		Mux:        chi.NewRouter(),
		header:     opts.Log.Header(),
		translator: opts.Translator,
		bufLimit:   opts.BufferLimit,
	}

	if a.bufLimit <= 0 {
		a.bufLimit = -1
	}

	a.Use(opts.Before...)
	a.Use(a.lifecycle)
	a.NotFound(failWith(http.StatusNotFound, "Not Found"))
	a.MethodNotAllowed(failWith(http.StatusMethodNotAllowed, "Method Not Allowed"))
	RegisterLogger(a, opts.Log)

	return a
}

func failWith(status int, msg string) http.HandlerFunc {
	return func(_ http.ResponseWriter, r *http.Request) {
		fail(r, anyhttp.NewError(anyhttp.Code(status), anyhttp.KindFor(status), msg))
	}
}
