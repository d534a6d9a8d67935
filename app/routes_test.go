package app_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/anyhttp"
	"github.com/advdv/anyhttp/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func hello(c *anyhttp.Context) error { return c.Res.Text("hello " + c.Req.Param("name")) }

var helloRoutes = anyhttp.MustDefineRoutes(anyhttp.RouteDefinition{
	Method: anyhttp.MethodGet, Path: "/hello/:name",
	Controller: anyhttp.Controller{Name: "Hello.get", Handler: hello},
})

func TestProvideRouter(t *testing.T) {
	for _, fw := range anyhttp.Frameworks {
		t.Run(string(fw), func(t *testing.T) {
			rev := anyhttp.NewReverser()
			router, err := app.ProvideRouter(app.RoutingParams{
				Env: app.Environment{
					Framework: fw, RoutePrefix: []string{"api"},
					DocsPath: "/doc", ReferencePath: "/reference", ReferenceUI: "swagger",
				},
				Logger:   zap.NewNop(),
				Reverser: rev,
				Tables:   []anyhttp.Routes{helloRoutes},
			})
			require.NoError(t, err)
			assert.Equal(t, 3, router.RouteCount())

			u, err := rev.Reverse("Hello.get", "ada")
			require.NoError(t, err)
			assert.Equal(t, "/api/hello/ada", u)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, u, nil))
			assert.Equal(t, "hello ada", rec.Body.String())

			rec = httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reference", nil))
			assert.Contains(t, rec.Body.String(), "swagger-ui")
		})
	}
}

func TestProvideRouterRejectsConflicts(t *testing.T) {
	_, err := app.ProvideRouter(app.RoutingParams{
		Env:      app.Environment{Framework: anyhttp.FrameworkEcho},
		Logger:   zap.NewNop(),
		Reverser: anyhttp.NewReverser(),
		Tables:   []anyhttp.Routes{helloRoutes, helloRoutes},
	})
	require.ErrorIs(t, err, anyhttp.ErrInvalidRoute)
}

func TestNewRouter(t *testing.T) {
	_, err := app.NewRouter("fastify", app.RouterConfig{})
	require.ErrorContains(t, err, "unsupported framework")

	for _, fw := range anyhttp.Frameworks {
		router, err := app.NewRouter(fw, app.RouterConfig{})
		require.NoError(t, err)
		assert.Zero(t, router.RouteCount())
	}
}
