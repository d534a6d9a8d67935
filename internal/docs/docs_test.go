package docs_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/anyhttp"
	"github.com/advdv/anyhttp/echoadapter"
	"github.com/advdv/anyhttp/internal/docs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(*anyhttp.Context) error { return nil }

var appRoutes = anyhttp.MustDefineRoutes(
	anyhttp.RouteDefinition{
		Method: anyhttp.MethodGet, Path: "/users/:id",
		Controller: anyhttp.Controller{Name: "UserController.getUser", Handler: noop},
		Docs:       &anyhttp.Docs{Tags: []string{"users"}, Summary: "Get a user"},
	},
	anyhttp.RouteDefinition{
		Method: anyhttp.MethodDelete, Path: "/users/{id}",
		Controller: anyhttp.Controller{Name: "UserController.deleteUser", Handler: noop},
	},
	anyhttp.RouteDefinition{
		Method: anyhttp.MethodPost, Path: "/ping", Controller: anyhttp.Controller{Handler: noop},
	},
)

func TestBuild(t *testing.T) {
	doc := docs.Build(docs.Config{}, appRoutes, "https://example.com/api")

	assert.Equal(t, "3.1.0", doc.OpenAPI)
	assert.Equal(t, "User Management API", doc.Info.Title)
	assert.Equal(t, []docs.Server{{URL: "https://example.com/api"}}, doc.Servers)
	assert.Equal(t, []string{"POST /ping", "DELETE /users/{id}", "GET /users/{id}"}, doc.Operations())

	assert.Equal(t, "Get a user", doc.Paths["/users/{id}"]["get"].Summary)
	assert.Equal(t, "UserController.deleteUser", doc.Paths["/users/{id}"]["delete"].Summary)
	assert.Equal(t, "POST /ping", doc.Paths["/ping"]["post"].Summary)
}

func TestResolveOrigin(t *testing.T) {
	for _, tt := range []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"fallback", map[string]string{}, "http://localhost"},
		{"host", map[string]string{"host": "api.local:3000"}, "http://api.local:3000"},
		{"forwarded", map[string]string{
			"x-forwarded-proto": "https, http", "x-forwarded-host": "example.com", "host": "internal",
		}, "https://example.com"},
		{"legacy protocol header", map[string]string{"x-forwarded-protocol": "https", "host": "a"}, "https://a"},
		{"cloudflare", map[string]string{"cf-visitor": `{"scheme":"https"}`, "host": "b"}, "https://b"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, docs.ResolveOrigin(tt.headers))
		})
	}
}

func TestBasePath(t *testing.T) {
	assert.Empty(t, docs.BasePath(nil))
	assert.Equal(t, "/api/v1", docs.BasePath([]string{"/api/", "v1"}))
}

func TestRoutes(t *testing.T) {
	cfg := docs.Config{Prefix: []string{"api"}}
	routes, err := docs.Routes(cfg, appRoutes)
	require.NoError(t, err)
	require.Equal(t, 2, routes.Len())

	app := echoadapter.New(echoadapter.Options{})
	require.NoError(t, app.Register(anyhttp.Bind(routes, cfg.Prefix...)))

	t.Run("document", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/doc", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		req.Host = "docs.example.com"

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var doc docs.Document
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, "https://docs.example.com/api", doc.Servers[0].URL)
		assert.Len(t, doc.Operations(), 3)
	})

	t.Run("reference", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reference", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), `data-url="/api/doc"`)
	})

	t.Run("unsupported ui", func(t *testing.T) {
		_, err := docs.Routes(docs.Config{UI: "redoc"}, appRoutes)
		require.ErrorContains(t, err, `unsupported reference ui "redoc"`)
	})
}
