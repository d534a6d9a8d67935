// Package apptest provides test helpers for anyhttp applications.
//
// It constructs the identical DI graph as [app.New] but uses [fxtest.App], which fails the test
// immediately on DI errors. The server listens on a free port unless [Env.Port] says otherwise.
//
//	apptest.SetEnv(t).Framework("gin")
//	a := apptest.New(t, app.WithRoutes(NewRoutes))
//	a.RequireStart()
//	t.Cleanup(a.RequireStop)
//
//	err := a.Client().Path("/hello").Fetch(t.Context())
package apptest

import (
	"net"
	"net/http"
	"strconv"
	"testing"

	"github.com/advdv/anyhttp/app"
	"github.com/carlmjohnson/requests"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

// App embeds *fxtest.App for testing applications.
type App struct {
	*fxtest.App

	t         testing.TB
	server    *http.Server
	transport http.RoundTripper
}

// New creates a test app with the same DI graph as [app.New].
func New(t testing.TB, opts ...app.Option) *App {
	a := &App{t: t}
	a.App = fxtest.New(t, append(app.FxOptions(opts...), fx.Populate(&a.server, &a.transport))...)

	return a
}

// Port returns the port the started application listens on.
func (a *App) Port() int {
	a.t.Helper()

	_, port, err := net.SplitHostPort(a.server.Addr)
	if err != nil {
		a.t.Fatalf("apptest: server address %q: %v", a.server.Addr, err)
	}

	n, err := strconv.Atoi(port)
	if err != nil {
		a.t.Fatalf("apptest: server port %q: %v", port, err)
	}

	return n
}

// Client returns a request builder for the started application. Requests go through the
// application's own traced transport.
func (a *App) Client() *requests.Builder {
	a.t.Helper()

	return app.NewRequestBuilder(a.transport).
		BaseURL("http://" + net.JoinHostPort("localhost", strconv.Itoa(a.Port())))
}
