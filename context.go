package anyhttp

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// Framework identifies the adapter that produced a [Context].
type Framework string

const (
	FrameworkEcho Framework = "echo"
	FrameworkGin  Framework = "gin"
	FrameworkChi  Framework = "chi"
)

// Frameworks lists every supported framework in a stable order.
var Frameworks = []Framework{FrameworkEcho, FrameworkGin, FrameworkChi}

// ParseFramework parses a framework identifier, case-insensitively.
func ParseFramework(s string) (Framework, error) {
	f := Framework(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Frameworks {
		if f == known {
			return f, nil
		}
	}

	return "", errors.Newf("unsupported framework %q (supported: echo, gin, chi)", s)
}

// Store keys with a well-known meaning.
const (
	StoreKeyRequestID = "requestId"
	StoreKeyLogger    = "logger"

	storeKeyBody    = "anyhttp.body"
	storeKeyPending = "anyhttp.pending"
)

// Store is the request-scoped key-value store.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

type mapStore struct {
	mu   sync.RWMutex
	vals map[string]any
}

// NewStore returns a [Store] backed by a map. It is used by adapters whose framework has no
// per-request store of its own.
func NewStore() Store { return &mapStore{vals: map[string]any{}} }

func (s *mapStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vals[key]

	return v, ok
}

func (s *mapStore) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[key] = value
}

// Context is the normalized unit of work that middlewares and controllers receive. It embeds the
// request's context.Context so it can be passed to anything that blocks.
type Context struct {
	context.Context

	Framework Framework
	Req       *Request
	Res       Response

	store Store
	next  func() error
}

// Next resumes the remainder of the chain.
func (c *Context) Next() error {
	if c.next == nil {
		return nil
	}

	return c.next()
}

// Get reads a value from the request-scoped store. It returns nil for unknown keys.
func (c *Context) Get(key string) any {
	v, _ := c.store.Get(key)
	return v
}

// Set writes a value to the request-scoped store.
func (c *Context) Set(key string, value any) { c.store.Set(key, value) }

// RequestID returns the correlation id established for this request, if any.
func (c *Context) RequestID() string {
	id, _ := Value[string](c, StoreKeyRequestID)
	return id
}

// derive returns a shallow copy with the response and continuation replaced. Request, store and
// the embedded context stay shared.
func (c *Context) derive(res Response, next func() error) *Context {
	cp := *c
	cp.Res = res
	cp.next = next

	return &cp
}

// Value reads a typed value from the context store.
func Value[T any](c *Context, key string) (T, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		var zero T
		return zero, false
	}

	tv, ok := v.(T)

	return tv, ok
}

// ContextConfig holds everything an adapter extracts from its native request to build a [Context].
type ContextConfig struct {
	Framework       Framework
	Context         context.Context
	Method          string
	Path            string
	Params          map[string]string
	Query           map[string]any
	Headers         map[string][]string
	Host            string
	Body            BodyLoader
	Emitter         Emitter
	Store           Store
	Next            func() error
	RequestIDHeader string
}

// NewContext normalizes the native request data into a [Context]. A nil Next makes the continuation
// an inert no-op.
func NewContext(cfg ContextConfig) *Context {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	store := cfg.Store
	if store == nil {
		store = NewStore()
	}

	hdrName := cfg.RequestIDHeader
	if hdrName == "" {
		hdrName = DefaultRequestIDHeader
	}

	headers := NormalizeHeaders(cfg.Headers)
	if _, ok := headers["host"]; !ok && cfg.Host != "" {
		headers["host"] = cfg.Host
	}

	if id, ok := store.Get(StoreKeyRequestID); ok {
		if ids, isStr := id.(string); isStr && ids != "" {
			headers[strings.ToLower(hdrName)] = ids
		}
	}

	// one body per request, shared by every context built over the same store
	body, ok := store.Get(storeKeyBody)
	lb, _ := body.(*lazyBody)
	if !ok || lb == nil {
		lb = newLazyBody(cfg.Body)
		store.Set(storeKeyBody, lb)
	}

	pend, _ := store.Get(storeKeyPending)
	pr, _ := pend.(*pending)
	if pr == nil {
		pr = &pending{status: http.StatusOK}
		store.Set(storeKeyPending, pr)
	}

	return &Context{
		Context:   ctx,
		Framework: cfg.Framework,
		Req: &Request{
			Method:  strings.ToUpper(cfg.Method),
			Path:    cfg.Path,
			Params:  NormalizeParams(cfg.Params),
			Query:   NormalizeQuery(cfg.Query),
			Headers: headers,
			body:    lb,
		},
		Res:   newResponse(cfg.Emitter, pr),
		store: store,
		next:  cfg.Next,
	}
}

// Request is the normalized request view.
type Request struct {
	Method  string
	Path    string
	Params  map[string]string
	Query   map[string]QueryValue
	Headers map[string]string

	body *lazyBody
}

// Header returns the normalized header value, looked up case-insensitively.
func (r *Request) Header(name string) string {
	return r.Headers[strings.ToLower(name)]
}

// Param returns the path capture with the given name.
func (r *Request) Param(name string) string {
	return r.Params[strings.ToLower(name)]
}

// QueryValue returns the first query value with the given name.
func (r *Request) QueryValue(name string) string {
	return r.Query[strings.ToLower(name)].String()
}

// Body returns the raw request body. The native body is read at most once per request.
func (r *Request) Body() ([]byte, error) {
	return r.body.load()
}

// BindJSON decodes the (memoized) request body into v.
func (r *Request) BindJSON(v any) error {
	return r.body.decodeJSON(v)
}
