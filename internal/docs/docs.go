// Package docs serves the OpenAPI document and an API reference page built from route tables.
package docs

import (
	"html"
	"maps"
	"slices"
	"strings"

	"github.com/advdv/anyhttp"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Config configures the docs routes.
type Config struct {
	DocsPath      string
	ReferencePath string

	// UI is "scalar" or "swagger".
	UI string

	// Prefix is the route prefix the application binds under. It becomes the path of the server
	// url and of the document link in the reference page.
	Prefix []string

	Title       string
	Version     string
	Description string
}

func (c Config) withDefaults() Config {
	c.DocsPath = lo.CoalesceOrEmpty(c.DocsPath, "/doc")
	c.ReferencePath = lo.CoalesceOrEmpty(c.ReferencePath, "/reference")
	c.UI = lo.CoalesceOrEmpty(c.UI, "scalar")
	c.Title = lo.CoalesceOrEmpty(c.Title, "User Management API")
	c.Version = lo.CoalesceOrEmpty(c.Version, "1.0.0")
	c.Description = lo.CoalesceOrEmpty(c.Description, "Auto-generated OpenAPI docs")

	return c
}

// Document is the OpenAPI document.
type Document struct {
	OpenAPI    string                             `json:"openapi"`
	Info       Info                               `json:"info"`
	Servers    []Server                           `json:"servers"`
	Paths      map[string]map[string]anyhttp.Docs `json:"paths"`
	Components Components                         `json:"components"`
}

type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

type Server struct {
	URL string `json:"url"`
}

type Components struct {
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes,omitempty"`
}

type SecurityScheme struct {
	Type         string `json:"type"`
	Scheme       string `json:"scheme"`
	BearerFormat string `json:"bearerFormat,omitempty"`
}

// Build assembles the document for the routes, served from serverURL. Routes without docs are
// listed with their controller name, or "METHOD path", as summary.
func Build(cfg Config, routes anyhttp.Routes, serverURL string) Document {
	cfg = cfg.withDefaults()
	doc := Document{
		OpenAPI: "3.1.0",
		Info:    Info{Title: cfg.Title, Version: cfg.Version, Description: cfg.Description},
		Servers: []Server{{URL: serverURL}},
		Paths:   map[string]map[string]anyhttp.Docs{},
		Components: Components{SecuritySchemes: map[string]SecurityScheme{
			"bearerAuth": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		}},
	}

	for def := range routes.All() {
		path := anyhttp.BraceParams(anyhttp.SanitizePath(def.Path))
		op := anyhttp.Docs{Summary: lo.CoalesceOrEmpty(def.Controller.Name, string(def.Method)+" "+path)}
		if def.Docs != nil {
			op = *def.Docs
		}

		if doc.Paths[path] == nil {
			doc.Paths[path] = map[string]anyhttp.Docs{}
		}

		doc.Paths[path][strings.ToLower(string(def.Method))] = op
	}

	return doc
}

// Routes returns the docs routes for the application routes.
func Routes(cfg Config, routes anyhttp.Routes) (anyhttp.Routes, error) {
	cfg = cfg.withDefaults()
	if cfg.UI != "scalar" && cfg.UI != "swagger" {
		return anyhttp.Routes{}, errors.Newf("docs: unsupported reference ui %q", cfg.UI)
	}

	ctrls := anyhttp.NewControllers("Docs").
		Add("getOpenApiDocument", func(c *anyhttp.Context) error {
			return c.Res.JSON(Build(cfg, routes, ResolveOrigin(c.Req.Headers)+BasePath(cfg.Prefix)))
		}).
		Add("getApiReferenceUi", func(c *anyhttp.Context) error {
			return c.Res.HTML(referencePage(cfg.UI, cfg.Title, anyhttp.JoinPath(cfg.Prefix, cfg.DocsPath)))
		})

	return anyhttp.DefineRoutes(
		anyhttp.RouteDefinition{
			Method: anyhttp.MethodGet, Path: cfg.DocsPath, Controller: ctrls.Get("getOpenApiDocument"),
		},
		anyhttp.RouteDefinition{
			Method: anyhttp.MethodGet, Path: cfg.ReferencePath, Controller: ctrls.Get("getApiReferenceUi"),
		},
	)
}

// BasePath is the prefix as a path, or the empty string without a prefix.
func BasePath(prefix []string) string {
	if segs := anyhttp.SplitPrefix(prefix...); len(segs) > 0 {
		return "/" + strings.Join(segs, "/")
	}

	return ""
}

// ResolveOrigin derives the public origin of a request from forwarding headers (lower-case keys).
func ResolveOrigin(headers map[string]string) string {
	proto := firstValue(lo.CoalesceOrEmpty(headers["x-forwarded-proto"], headers["x-forwarded-protocol"]))
	if proto == "" && strings.Contains(headers["cf-visitor"], "https") {
		proto = "https"
	}

	host := firstValue(lo.CoalesceOrEmpty(headers["x-forwarded-host"], headers["host"]))

	return lo.CoalesceOrEmpty(proto, "http") + "://" + lo.CoalesceOrEmpty(host, "localhost")
}

func firstValue(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return strings.TrimSpace(first)
}

func referencePage(ui, title, docURL string) string {
	title, docURL = html.EscapeString(title), html.EscapeString(docURL)
	if ui == "swagger" {
		return `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>` + title + `</title>
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist/swagger-ui-bundle.js"></script>
    <script>window.ui = SwaggerUIBundle({ url: "` + docURL + `", dom_id: "#swagger-ui" });</script>
  </body>
</html>`
	}

	return `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>` + title + `</title>
  </head>
  <body>
    <script id="api-reference" data-url="` + docURL + `" data-configuration='{"theme":"kepler"}'></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
  </body>
</html>`
}

// Operations lists the documented "METHOD path" pairs in a stable order.
func (d Document) Operations() []string {
	var ops []string
	for _, path := range slices.Sorted(maps.Keys(d.Paths)) {
		for _, method := range slices.Sorted(maps.Keys(d.Paths[path])) {
			ops = append(ops, strings.ToUpper(method)+" "+path)
		}
	}

	return ops
}
