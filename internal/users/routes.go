package users

import (
	"github.com/advdv/anyhttp"
	"github.com/advdv/anyhttp/internal/auth"
)

var (
	userSchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":        map[string]any{"type": "string"},
			"name":      map[string]any{"type": "string"},
			"email":     map[string]any{"type": "string", "format": "email"},
			"password":  map[string]any{"type": "string"},
			"createdAt": map[string]any{"type": "string", "format": "date-time"},
			"updatedAt": map[string]any{"type": "string", "format": "date-time"},
		},
	}

	inputSchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":     map[string]any{"type": "string"},
			"email":    map[string]any{"type": "string", "format": "email"},
			"password": map[string]any{"type": "string"},
		},
	}

	idParam = anyhttp.Parameter{
		Name: "id", In: "path", Required: true, Description: "User id.",
		Schema: map[string]any{"type": "string"},
	}
)

func jsonOf(schema map[string]any) map[string]anyhttp.MediaType {
	return map[string]anyhttp.MediaType{"application/json": {Schema: schema}}
}

// NewRoutes declares the user routes. Listing users requires a bearer token.
func NewRoutes(uc *Controller, authCfg auth.Config) (anyhttp.Routes, error) {
	ctrls := uc.Controllers()
	notFound := anyhttp.ResponseDoc{Description: "User not found."}
	body := &anyhttp.RequestBody{Required: true, Content: jsonOf(inputSchema)}

	return anyhttp.DefineRoutes(
		anyhttp.RouteDefinition{
			Method: anyhttp.MethodGet, Path: "/users",
			Middlewares: []anyhttp.Middleware{auth.Guard(authCfg)},
			Controller:  ctrls.Get("getUsers"),
			Docs: &anyhttp.Docs{
				Tags: []string{"users"}, Summary: "List users",
				Security: []map[string][]string{{"bearerAuth": {}}},
				Responses: map[string]anyhttp.ResponseDoc{
					"200": {Description: "All users.", Content: jsonOf(map[string]any{"type": "array", "items": userSchema})},
					"401": {Description: "Missing bearer token."},
					"403": {Description: "Invalid or expired token."},
				},
			},
		},
		anyhttp.RouteDefinition{
			Method: anyhttp.MethodGet, Path: "/users/:id",
			Controller: ctrls.Get("getUser"),
			Docs: &anyhttp.Docs{
				Tags: []string{"users"}, Summary: "Get a user",
				Parameters: []anyhttp.Parameter{idParam},
				Responses: map[string]anyhttp.ResponseDoc{
					"200": {Description: "The user.", Content: jsonOf(userSchema)},
					"404": notFound,
				},
			},
		},
		anyhttp.RouteDefinition{
			Method: anyhttp.MethodPut, Path: "/users/:id",
			Controller: ctrls.Get("updateUser"),
			Docs: &anyhttp.Docs{
				Tags: []string{"users"}, Summary: "Update a user",
				Parameters:  []anyhttp.Parameter{idParam},
				RequestBody: body,
				Responses: map[string]anyhttp.ResponseDoc{
					"200": {Description: "The updated user.", Content: jsonOf(userSchema)},
					"404": notFound,
					"422": {Description: "Validation failed."},
				},
			},
		},
		anyhttp.RouteDefinition{
			Method: anyhttp.MethodPost, Path: "/users",
			Controller: ctrls.Get("createUser"),
			Docs: &anyhttp.Docs{
				Tags: []string{"users"}, Summary: "Create a user",
				RequestBody: body,
				Responses: map[string]anyhttp.ResponseDoc{
					"201": {Description: "The created user.", Content: jsonOf(userSchema)},
					"400": {Description: "Malformed body."},
					"422": {Description: "Validation failed."},
				},
			},
		},
		anyhttp.RouteDefinition{
			Method: anyhttp.MethodDelete, Path: "/users/:id",
			Controller: ctrls.Get("deleteUser"),
			Docs: &anyhttp.Docs{
				Tags: []string{"users"}, Summary: "Delete a user",
				Parameters: []anyhttp.Parameter{idParam},
				Responses: map[string]anyhttp.ResponseDoc{
					"200": {Description: "Deletion confirmation."},
					"404": notFound,
				},
			},
		},
	)
}
