// Package ginadapter serves anyhttp route tables with Gin.
package ginadapter

import (
	"net/http"

	"github.com/advdv/anyhttp"
	"github.com/gin-gonic/gin"
)

// Options configure the gin application.
type Options struct {
	Log        HookOptions
	Translator anyhttp.Translator
}

// App is a gin engine with the instrumentation hook and error translation installed.
type App struct {
	*gin.Engine
	header string
}

// New creates the gin application. Unmatched paths and methods answer with the JSON error body.
func New(opts Options) *App {
	e := gin.New()
	e.HandleMethodNotAllowed = true
	e.ContextWithFallback = true
	e.Use(Logger(opts.Log), ErrorHandler(opts.Translator))
	e.NoRoute(fail(http.StatusNotFound, "Not Found"))
	e.NoMethod(fail(http.StatusMethodNotAllowed, "Method Not Allowed"))

	return &App{Engine: e, header: opts.Log.Header()}
}

// RouteCount returns the number of native routes registered so far.
func (a *App) RouteCount() int { return len(a.Engine.Routes()) }

func fail(status int, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(anyhttp.NewError(anyhttp.Code(status), anyhttp.KindFor(status), msg))
		c.Abort()
	}
}

// ErrorHandler recovers panics and writes the last recorded error as the JSON error body, unless
// the response was already written.
func ErrorHandler(t anyhttp.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				if r == http.ErrAbortHandler { //nolint:errorlint,err113
					panic(r)
				}

				_ = c.Error(anyhttp.Recovered(r))
				c.Abort()
			}

			last := c.Errors.Last()
			if last == nil || c.Writer.Written() {
				return
			}

			tr := t.Translate(last.Err)
			c.JSON(tr.Status, tr.Body)
		}()

		c.Next()
	}
}
