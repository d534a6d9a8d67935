package anyhttp_test

import (
	"testing"

	"github.com/advdv/anyhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverser(t *testing.T) {
	rev := anyhttp.NewReverser()

	t.Run("should allow naming paths", func(t *testing.T) {
		s := rev.Named("homepage", "/")
		assert.Equal(t, "/", s)

		s, err := rev.NamedPath("blog_post", "/blog/{id}")
		require.NoError(t, err)
		assert.Equal(t, "/blog/{id}", s)
	})

	t.Run("should reverse named paths", func(t *testing.T) {
		res, err := rev.Reverse("homepage")
		require.NoError(t, err)
		assert.Equal(t, "/", res)

		res, err = rev.Reverse("blog_post", "a b")
		require.NoError(t, err)
		assert.Equal(t, "/blog/a%20b", res)
	})

	t.Run("should error if name already exists", func(t *testing.T) {
		_, err := rev.NamedPath("homepage", "/")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("should panic for Named error", func(t *testing.T) {
		assert.PanicsWithValue(t, `anyhttp: route path "" must start with '/'`, func() {
			rev.Named("bogus", "")
		})
	})

	t.Run("should error if reversing unknown name", func(t *testing.T) {
		_, err := rev.Reverse("bogus")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no route named: \"bogus\"")
	})

	t.Run("should error on value count mismatch", func(t *testing.T) {
		_, err := rev.Reverse("blog_post")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "needs 1 values, got 0")
	})
}

func TestNewReverserFor(t *testing.T) {
	routes := anyhttp.MustDefineRoutes(
		anyhttp.RouteDefinition{Method: "GET", Path: "/users/{id}", Controller: anyhttp.Controller{
			Name: "UserController.get", Handler: noop,
		}},
		route("GET", "/anonymous"),
	)

	rev, err := anyhttp.NewReverserFor(anyhttp.Bind(routes, "api"))
	require.NoError(t, err)

	u, err := rev.Reverse("UserController.get", "7")
	require.NoError(t, err)
	require.Equal(t, "/api/users/7", u)
}

func TestNameAllRejectsDuplicateNames(t *testing.T) {
	ctrl := anyhttp.Controller{Name: "Users.get", Handler: noop}
	routes := anyhttp.MustDefineRoutes(
		anyhttp.RouteDefinition{Method: "GET", Path: "/users/:id", Controller: ctrl},
		anyhttp.RouteDefinition{Method: "PUT", Path: "/users/:id", Controller: ctrl},
	)

	rev := anyhttp.NewReverser()
	require.ErrorContains(t, rev.NameAll(anyhttp.Bind(routes)), `"Users.get" already exists`)
}
