package echoadapter

import (
	"time"

	"github.com/advdv/anyhttp"
	"github.com/labstack/echo/v4"
)

// Logger wraps the continuation: it establishes the correlation id and request logger before the
// chain runs and writes one terminal record after it returns.
func Logger(opts anyhttp.LogOptions) echo.MiddlewareFunc {
	header, base := opts.Header(), opts.Base()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req, res := c.Request(), c.Response()

			id := anyhttp.ResolveRequestID(
				req.Header.Get(header),
				res.Header().Get(echo.HeaderXRequestID))
			logs := anyhttp.RequestLogger(base, anyhttp.FrameworkEcho, id)

			c.Set(anyhttp.StoreKeyRequestID, id)
			c.Set(anyhttp.StoreKeyLogger, logs)
			if !res.Committed {
				res.Header().Set(header, id)
			}

			if err := next(c); err != nil {
				anyhttp.LogFailed(logs, req.Method, req.URL.Path, time.Since(start), err)
				return err
			}

			anyhttp.LogCompleted(logs, req.Method, req.URL.Path, res.Status, time.Since(start))

			return nil
		}
	}
}
