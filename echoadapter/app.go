// Package echoadapter serves anyhttp route tables with Echo.
package echoadapter

import (
	"fmt"
	"net/http"

	"github.com/advdv/anyhttp"
	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Options configure the echo application.
type Options struct {
	Log        anyhttp.LogOptions
	Translator anyhttp.Translator
}

// App is an echo instance with the logging hook, panic recovery and error translation installed.
type App struct {
	*echo.Echo
	header string
}

// New creates the echo application.
func New(opts Options) *App {
	e := echo.New()
	e.HideBanner, e.HidePort = true, true
	e.HTTPErrorHandler = ErrorHandler(opts.Translator)
	e.Use(Logger(opts.Log), recoverer())

	return &App{Echo: e, header: opts.Log.Header()}
}

// RouteCount returns the number of native routes registered so far.
func (a *App) RouteCount() int { return len(a.Echo.Routes()) }

// ErrorHandler writes every error that reaches echo as the JSON error body. Echo's own errors, such
// as unmatched routes, keep their status.
func ErrorHandler(t anyhttp.Translator) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			derr *anyhttp.Error
			herr *echo.HTTPError
		)
		if !errors.As(err, &derr) && errors.As(err, &herr) {
			err = anyhttp.NewError(anyhttp.Code(herr.Code), anyhttp.KindFor(herr.Code),
				fmt.Sprint(herr.Message), anyhttp.WithCause(err))
		}

		tr := t.Translate(err)
		if werr := c.JSON(tr.Status, tr.Body); werr != nil {
			if logs, ok := c.Get(anyhttp.StoreKeyLogger).(*zap.Logger); ok {
				logs.Debug("failed to write error response", zap.Error(werr))
			}
		}
	}
}

func recoverer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					if r == http.ErrAbortHandler { //nolint:errorlint,err113
						panic(r)
					}

					err = anyhttp.Recovered(r)
				}
			}()

			return next(c)
		}
	}
}
