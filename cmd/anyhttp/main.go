// Command anyhttp serves the example user management API with the framework chosen by FRAMEWORK.
package main

import (
	"github.com/advdv/anyhttp/app"
	"github.com/advdv/anyhttp/internal/auth"
	"github.com/advdv/anyhttp/internal/example"
	"github.com/advdv/anyhttp/internal/users"
)

func options() []app.Option {
	return []app.Option{
		app.WithFx(auth.Provide, users.Module),
		app.WithRoutes(example.NewRoutes),
	}
}

func main() {
	app.New(options()...).Run()
}
