package ginadapter

import (
	"time"

	"github.com/advdv/anyhttp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// nativeRequestIDHeader is where request id middlewares for gin leave their id.
const nativeRequestIDHeader = "X-Request-Id"

// HookOptions configure the instrumentation hook.
type HookOptions struct {
	anyhttp.LogOptions

	// GenReqID resolves the correlation id of a request. By default the configured header is used,
	// then an id set by an earlier middleware, then a fresh one.
	GenReqID func(c *gin.Context, header string) string

	// CustomProps returns extra fields bound into the request logger.
	CustomProps func(c *gin.Context) []zap.Field
}

func defaultGenReqID(c *gin.Context, header string) string {
	return anyhttp.ResolveRequestID(c.GetHeader(header), c.Writer.Header().Get(nativeRequestIDHeader))
}

// Logger instruments every request: the correlation id and request logger are attached before the
// chain runs. The terminal record is written once the chain returns, from the recorded errors or
// the final status.
func Logger(opts HookOptions) gin.HandlerFunc {
	header, base := opts.Header(), opts.Base()
	genID := opts.GenReqID
	if genID == nil {
		genID = defaultGenReqID
	}

	return func(c *gin.Context) {
		start := time.Now()

		id := genID(c, header)
		logs := anyhttp.RequestLogger(base, anyhttp.FrameworkGin, id)
		if opts.CustomProps != nil {
			logs = logs.With(opts.CustomProps(c)...)
		}

		c.Set(anyhttp.StoreKeyRequestID, id)
		c.Set(anyhttp.StoreKeyLogger, logs)
		if !c.Writer.Written() {
			c.Header(header, id)
		}

		c.Next()

		method, path := c.Request.Method, c.Request.URL.Path
		if last := c.Errors.Last(); last != nil {
			anyhttp.LogFailed(logs, method, path, time.Since(start), last.Err)
			return
		}

		anyhttp.LogCompleted(logs, method, path, c.Writer.Status(), time.Since(start))
	}
}
