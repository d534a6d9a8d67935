package anyhttp_test

import (
	"slices"
	"testing"

	"github.com/advdv/anyhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(c *anyhttp.Context) error { return nil }

func route(m anyhttp.Method, path string) anyhttp.RouteDefinition {
	return anyhttp.RouteDefinition{Method: m, Path: path, Controller: anyhttp.Controller{Handler: noop}}
}

func TestDefineRoutesRejectsInvalidTables(t *testing.T) {
	for _, tt := range []struct {
		name string
		defs []anyhttp.RouteDefinition
		want string
	}{
		{"duplicate", []anyhttp.RouteDefinition{route("GET", "/x"), route("GET", "/x")}, "duplicate route GET /x"},
		{"duplicate across syntax", []anyhttp.RouteDefinition{
			route("GET", "/users/{id}"), route("GET", "/users/:id"),
		}, "duplicate route GET /users/:id"},
		{"method", []anyhttp.RouteDefinition{route("PATCH", "/x")}, `unsupported method "PATCH"`},
		{"leading slash", []anyhttp.RouteDefinition{route("GET", "x")}, "must start with '/'"},
		{"handler", []anyhttp.RouteDefinition{{Method: "GET", Path: "/x"}}, "has no controller handler"},
		{"nil middleware", []anyhttp.RouteDefinition{{
			Method: "GET", Path: "/x", Middlewares: []anyhttp.Middleware{nil},
			Controller: anyhttp.Controller{Handler: noop},
		}}, "has a nil middleware"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := anyhttp.DefineRoutes(tt.defs...)
			require.ErrorIs(t, err, anyhttp.ErrInvalidRoute)
			require.ErrorContains(t, err, tt.want)
		})
	}

	require.Panics(t, func() { anyhttp.MustDefineRoutes(route("GET", "/x"), route("GET", "/x")) })
}

func TestDefineRoutesAllowsSamePathOtherMethod(t *testing.T) {
	routes, err := anyhttp.DefineRoutes(route("GET", "/x"), route("POST", "/x"))
	require.NoError(t, err)
	require.Equal(t, 2, routes.Len())
}

func TestRoutesAreFrozen(t *testing.T) {
	mws := []anyhttp.Middleware{func(c *anyhttp.Context) error { return c.Next() }}
	docs := &anyhttp.Docs{Tags: []string{"users"}, Parameters: []anyhttp.Parameter{
		{Name: "id", In: "path", Schema: map[string]any{"type": "string"}},
	}}

	routes := anyhttp.MustDefineRoutes(anyhttp.RouteDefinition{
		Method: "GET", Path: "/users/{id}", Middlewares: mws, Docs: docs,
		Controller: anyhttp.Controller{Name: "getUser", Handler: noop},
	})

	mws[0] = nil
	docs.Tags[0] = "changed"
	docs.Parameters[0].Schema["type"] = "integer"

	defs := slices.Collect(routes.All())
	require.Len(t, defs, 1)
	require.NotNil(t, defs[0].Middlewares[0])
	require.Equal(t, "users", defs[0].Docs.Tags[0])
	require.Equal(t, "string", defs[0].Docs.Parameters[0].Schema["type"])

	defs[0].Docs.Tags[0] = "changed again"
	again := slices.Collect(routes.All())
	require.Equal(t, "users", again[0].Docs.Tags[0])
}

func TestConcat(t *testing.T) {
	a := anyhttp.MustDefineRoutes(route("GET", "/a"))
	b := anyhttp.MustDefineRoutes(route("GET", "/b"))

	all, err := anyhttp.Concat(a, b)
	require.NoError(t, err)
	require.Equal(t, 2, all.Len())

	_, err = anyhttp.Concat(a, a)
	require.ErrorIs(t, err, anyhttp.ErrInvalidRoute)
}

func TestBind(t *testing.T) {
	routes := anyhttp.MustDefineRoutes(route("GET", "/"), route("GET", "/users/{id}"))

	bindings := anyhttp.Bind(routes, "api/v1")
	require.Len(t, bindings, 2)
	assert.Equal(t, "/api/v1", bindings[0].Path)
	assert.Equal(t, "/api/v1/users/:id", bindings[1].Path)
	assert.Equal(t, "/users/{id}", bindings[1].Route.Path)

	bindings = anyhttp.Bind(routes)
	assert.Equal(t, "/", bindings[0].Path)
	assert.Equal(t, "/users/:id", bindings[1].Path)
}

func TestControllers(t *testing.T) {
	cs := anyhttp.NewControllers("UserController").Add("get", noop)

	c := cs.Get("get")
	require.Equal(t, "UserController.get", c.Name)
	require.NotNil(t, c.Handler)

	_, err := cs.Lookup("list")
	require.ErrorContains(t, err, `no handler "list" bound on UserController, got: [get]`)
	require.Panics(t, func() { cs.Add("get", noop) })
	require.Panics(t, func() { cs.Add("nil", nil) })
}
