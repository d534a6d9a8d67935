package anyhttp

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// ErrInvalidRoute marks route table configuration errors.
var ErrInvalidRoute = errors.New("invalid route")

// Method is an HTTP method a route can be declared with.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Methods lists the supported methods.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete}

// Docs is the OpenAPI operation fragment of a route.
type Docs struct {
	Tags        []string               `json:"tags,omitempty"`
	Summary     string                 `json:"summary,omitempty"`
	Description string                 `json:"description,omitempty"`
	Parameters  []Parameter            `json:"parameters,omitempty"`
	RequestBody *RequestBody           `json:"requestBody,omitempty"`
	Responses   map[string]ResponseDoc `json:"responses,omitempty"`
	Security    []map[string][]string  `json:"security,omitempty"`
}

// Parameter documents one operation parameter.
type Parameter struct {
	Name        string         `json:"name"`
	In          string         `json:"in"`
	Required    bool           `json:"required,omitempty"`
	Description string         `json:"description,omitempty"`
	Schema      map[string]any `json:"schema,omitempty"`
}

// RequestBody documents an operation's request body.
type RequestBody struct {
	Required    bool                 `json:"required,omitempty"`
	Description string               `json:"description,omitempty"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// MediaType documents one content type.
type MediaType struct {
	Schema map[string]any `json:"schema,omitempty"`
}

// ResponseDoc documents one response status.
type ResponseDoc struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// RouteDefinition declares one route.
type RouteDefinition struct {
	Method      Method
	Path        string
	Middlewares []Middleware
	Controller  Controller
	Docs        *Docs
}

// Routes is a validated, read-only route table.
type Routes struct {
	defs []RouteDefinition
}

// DefineRoutes validates the definitions and freezes them into a table. Duplicate (method, path)
// pairs, unsupported methods, paths without a leading slash and missing handlers are rejected.
func DefineRoutes(defs ...RouteDefinition) (Routes, error) {
	seen := map[string]int{}
	frozen := make([]RouteDefinition, 0, len(defs))

	for i, def := range defs {
		if !slices.Contains(Methods, def.Method) {
			return Routes{}, errors.Wrapf(ErrInvalidRoute, "route %d: unsupported method %q", i, def.Method)
		}

		if !strings.HasPrefix(def.Path, "/") {
			return Routes{}, errors.Wrapf(ErrInvalidRoute, "route %d: path %q must start with '/'", i, def.Path)
		}

		if def.Controller.Handler == nil {
			return Routes{}, errors.Wrapf(ErrInvalidRoute, "route %d: %s %s has no controller handler",
				i, def.Method, def.Path)
		}

		if slices.ContainsFunc(def.Middlewares, func(m Middleware) bool { return m == nil }) {
			return Routes{}, errors.Wrapf(ErrInvalidRoute, "route %d: %s %s has a nil middleware",
				i, def.Method, def.Path)
		}

		key := string(def.Method) + " " + SanitizePath(ColonParams(def.Path))
		if prev, dup := seen[key]; dup {
			return Routes{}, errors.Wrapf(ErrInvalidRoute, "route %d: duplicate route %s, first declared as route %d",
				i, key, prev)
		}

		seen[key] = i
		frozen = append(frozen, cloneRoute(def))
	}

	return Routes{defs: frozen}, nil
}

// MustDefineRoutes is like [DefineRoutes] but panics on invalid tables.
func MustDefineRoutes(defs ...RouteDefinition) Routes {
	routes, err := DefineRoutes(defs...)
	if err != nil {
		panic("anyhttp: " + err.Error())
	}

	return routes
}

// Concat merges route tables, validating the result as a whole.
func Concat(tables ...Routes) (Routes, error) {
	return DefineRoutes(lo.FlatMap(tables, func(r Routes, _ int) []RouteDefinition {
		return r.defs
	})...)
}

// Len returns the number of routes.
func (r Routes) Len() int { return len(r.defs) }

// All iterates over copies of the definitions in declaration order.
func (r Routes) All() iter.Seq[RouteDefinition] {
	return func(yield func(RouteDefinition) bool) {
		for _, def := range r.defs {
			if !yield(cloneRoute(def)) {
				return
			}
		}
	}
}

// RouteBinding pairs a definition with the final path it is registered under, in ":name" syntax.
type RouteBinding struct {
	Route RouteDefinition
	Path  string
}

// Bind computes the bindings of every route under the given prefix.
func Bind(routes Routes, prefix ...string) []RouteBinding {
	segs := SplitPrefix(prefix...)
	return lo.Map(routes.defs, func(def RouteDefinition, _ int) RouteBinding {
		return RouteBinding{Route: cloneRoute(def), Path: JoinPath(segs, ColonParams(def.Path))}
	})
}

// Controllers binds the handlers of one controller instance under fixed names, once at startup.
type Controllers struct {
	owner    string
	handlers map[string]Handler
}

// NewControllers starts a binding set. The owner name prefixes every display name.
func NewControllers(owner string) *Controllers {
	return &Controllers{owner: owner, handlers: map[string]Handler{}}
}

// Add binds a handler under name. It panics on duplicate names or nil handlers.
func (cs *Controllers) Add(name string, h Handler) *Controllers {
	if h == nil {
		panic("anyhttp: nil handler for " + cs.owner + "." + name)
	}

	if _, exists := cs.handlers[name]; exists {
		panic("anyhttp: handler " + cs.owner + "." + name + " bound twice")
	}

	cs.handlers[name] = h

	return cs
}

// Lookup returns the controller bound under name.
func (cs *Controllers) Lookup(name string) (Controller, error) {
	h, ok := cs.handlers[name]
	if !ok {
		return Controller{}, errors.Wrapf(ErrInvalidRoute, "no handler %q bound on %s, got: %v",
			name, cs.owner, slices.Sorted(maps.Keys(cs.handlers)))
	}

	return Controller{Name: cs.owner + "." + name, Handler: h}, nil
}

// Get is like [Controllers.Lookup] but panics when the name is unknown.
func (cs *Controllers) Get(name string) Controller {
	c, err := cs.Lookup(name)
	if err != nil {
		panic("anyhttp: " + err.Error())
	}

	return c
}

func cloneRoute(def RouteDefinition) RouteDefinition {
	def.Middlewares = slices.Clone(def.Middlewares)
	if def.Docs != nil {
		docs := cloneDocs(*def.Docs)
		def.Docs = &docs
	}

	return def
}

func cloneDocs(d Docs) Docs {
	d.Tags = slices.Clone(d.Tags)
	d.Parameters = lo.Map(d.Parameters, func(p Parameter, _ int) Parameter {
		p.Schema = cloneSchema(p.Schema)
		return p
	})

	if d.RequestBody != nil {
		rb := *d.RequestBody
		rb.Content = cloneContent(rb.Content)
		d.RequestBody = &rb
	}

	if d.Responses != nil {
		d.Responses = lo.MapValues(d.Responses, func(r ResponseDoc, _ string) ResponseDoc {
			r.Content = cloneContent(r.Content)
			return r
		})
	}

	d.Security = lo.Map(d.Security, func(s map[string][]string, _ int) map[string][]string {
		return lo.MapValues(s, func(v []string, _ string) []string { return slices.Clone(v) })
	})

	return d
}

func cloneContent(c map[string]MediaType) map[string]MediaType {
	if c == nil {
		return nil
	}

	return lo.MapValues(c, func(m MediaType, _ string) MediaType {
		return MediaType{Schema: cloneSchema(m.Schema)}
	})
}

func cloneSchema(s map[string]any) map[string]any {
	if s == nil {
		return nil
	}

	out := make(map[string]any, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}

	return out
}

func cloneValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return cloneSchema(tv)
	case []any:
		return lo.Map(tv, func(e any, _ int) any { return cloneValue(e) })
	case []string:
		return slices.Clone(tv)
	default:
		return tv
	}
}
