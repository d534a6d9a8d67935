package app

import (
	"net/http"

	"github.com/advdv/anyhttp"
	"github.com/advdv/anyhttp/chiadapter"
	"github.com/advdv/anyhttp/echoadapter"
	"github.com/advdv/anyhttp/ginadapter"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Router is what every adapter application provides.
type Router interface {
	http.Handler
	Register(bindings []anyhttp.RouteBinding) error
	RouteCount() int
}

// RouterConfig is the framework independent configuration of a router.
type RouterConfig struct {
	Log        anyhttp.LogOptions
	Translator anyhttp.Translator
}

// routerFactories maps each framework to its constructor.
var routerFactories = map[anyhttp.Framework]func(RouterConfig) Router{
	anyhttp.FrameworkEcho: func(cfg RouterConfig) Router {
		return echoadapter.New(echoadapter.Options{Log: cfg.Log, Translator: cfg.Translator})
	},
	anyhttp.FrameworkGin: func(cfg RouterConfig) Router {
		if gin.Mode() == gin.DebugMode {
			gin.SetMode(gin.ReleaseMode)
		}

		return ginadapter.New(ginadapter.Options{
			Log: ginadapter.HookOptions{
				LogOptions: cfg.Log,
				CustomProps: func(c *gin.Context) []zap.Field {
					return []zap.Field{zap.String("clientIp", c.ClientIP())}
				},
			},
			Translator: cfg.Translator,
		})
	},
	anyhttp.FrameworkChi: func(cfg RouterConfig) Router {
		return chiadapter.New(chiadapter.Options{
			Log:        cfg.Log,
			Translator: cfg.Translator,
			Before:     []func(http.Handler) http.Handler{middleware.RealIP},
		})
	},
}

// NewRouter creates the router of the given framework.
func NewRouter(fw anyhttp.Framework, cfg RouterConfig) (Router, error) {
	fw, err := anyhttp.ParseFramework(string(fw))
	if err != nil {
		return nil, err
	}

	return routerFactories[fw](cfg), nil
}
