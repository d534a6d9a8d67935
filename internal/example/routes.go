package example

import (
	"net/http"
	"time"

	"github.com/advdv/anyhttp"
	"github.com/tidwall/gjson"
)

func getWelcome(c *anyhttp.Context) error {
	return c.Res.JSON(map[string]any{
		"message":   "anyhttp is ready to roll",
		"framework": c.Framework,
		"requestId": c.RequestID(),
	})
}

func getContextSample(c *anyhttp.Context) error {
	name := c.Req.QueryValue("name")
	if name == "" {
		name = "from anyhttp"
	}

	return c.Res.Header("x-demo-context", "true").JSON(map[string]any{
		"message":   "Hello " + name,
		"framework": c.Framework,
		"requestId": c.RequestID(),
		"userAgent": UserAgent(c),
	})
}

func postContextSample(c *anyhttp.Context) error {
	body, err := c.Req.Body()
	if err != nil {
		return err
	}

	greeting, audience := "Hello", "friend"
	if v := gjson.GetBytes(body, "greeting"); v.Type == gjson.String {
		greeting = v.Str
	}

	if v := gjson.GetBytes(body, "audience"); v.Type == gjson.String {
		audience = v.Str
	}

	return c.Res.JSON(map[string]any{
		"message":    greeting + ", " + audience + "!",
		"receivedAt": time.Now().UTC().Format(time.RFC3339Nano),
	}, http.StatusCreated)
}

// NewRoutes declares the example routes.
func NewRoutes() (anyhttp.Routes, error) {
	ctrls := anyhttp.NewControllers("ExampleController").
		Add("getWelcome", getWelcome).
		Add("getContextExample", getContextSample).
		Add("createContextExample", postContextSample)

	timed := []anyhttp.Middleware{CaptureRequestDetails, ApplyResponseTiming}

	return anyhttp.DefineRoutes(
		anyhttp.RouteDefinition{
			Method: anyhttp.MethodGet, Path: "/",
			Middlewares: timed,
			Controller:  ctrls.Get("getWelcome"),
			Docs: &anyhttp.Docs{
				Tags: []string{"examples"}, Summary: "Welcome route",
				Description: "Returns a simple payload showing that the adapter and context are wired up.",
				Responses: map[string]anyhttp.ResponseDoc{
					"200": {Description: "Readiness payload with framework metadata."},
				},
			},
		},
		anyhttp.RouteDefinition{
			Method: anyhttp.MethodGet, Path: "/examples/context",
			Middlewares: timed,
			Controller:  ctrls.Get("getContextExample"),
			Docs: &anyhttp.Docs{
				Tags: []string{"examples"}, Summary: "Inspect normalized context data",
				Parameters: []anyhttp.Parameter{{
					Name: "name", In: "query", Description: "Optional name to personalize the greeting.",
					Schema: map[string]any{"type": "string"},
				}},
				Responses: map[string]anyhttp.ResponseDoc{
					"200": {Description: "Context sample payload containing the normalized request data."},
				},
			},
		},
		anyhttp.RouteDefinition{
			Method: anyhttp.MethodPost, Path: "/examples/context",
			Middlewares: append([]anyhttp.Middleware{EnsureJSON}, timed...),
			Controller:  ctrls.Get("createContextExample"),
			Docs: &anyhttp.Docs{
				Tags: []string{"examples"}, Summary: "Work with the request body",
				RequestBody: &anyhttp.RequestBody{Required: true, Content: map[string]anyhttp.MediaType{
					"application/json": {Schema: map[string]any{
						"type": "object",
						"properties": map[string]any{
							"greeting": map[string]any{"type": "string"},
							"audience": map[string]any{"type": "string"},
						},
					}},
				}},
				Responses: map[string]anyhttp.ResponseDoc{
					"201": {Description: "Greeting built from the body."},
					"415": {Description: "The body was not JSON."},
				},
			},
		},
	)
}
