// Package anyhttp lets one set of business handlers run unmodified on several web frameworks.
//
// # Overview
//
// Handlers and middleware are written against [Context], a normalized view of the request, a
// chainable set of response helpers and a request-scoped key-value store. Adapter packages
// (echoadapter, ginadapter and chiadapter) build a [Context] from their framework's native
// objects, register route tables and install a logging hook and an error handler.
//
// A minimal route table:
//
//	routes := anyhttp.MustDefineRoutes(anyhttp.RouteDefinition{
//	    Method: anyhttp.MethodGet,
//	    Path:   "/items/{id}",
//	    Controller: anyhttp.Controller{Name: "getItem", Handler: func(c *anyhttp.Context) error {
//	        item, ok := db.Get(c.Req.Param("id"))
//	        if !ok {
//	            return anyhttp.NewError(anyhttp.CodeNotFound, "not_found", "Item not found")
//	        }
//	        return c.Res.JSON(item)
//	    }},
//	})
//
//	e := echoadapter.New(echoadapter.Options{})
//	err := echoadapter.Register(e, anyhttp.Bind(routes, "api"))
//
// # Context
//
// Request parameter, query and header names are lower-cased. Multi-value headers are joined with
// ", ". The body is read lazily and at most once, however often [Request.Body] or
// [Request.BindJSON] are called.
//
// Response helpers take an optional trailing status:
//
//	c.Res.Header("x-demo", "true").Status(201).JSON(v)
//	c.Res.JSON(v, 201)
//
// # Middleware
//
// [Compose] reduces a route's middlewares to one. A middleware either calls [Context.Next] or
// emits a response. After a response was emitted the chain is closed: further calls to next
// return the emission's result without running anything. Calling next twice from the same
// middleware returns an error wrapping [ErrNextCalledTwice].
//
// # Routes
//
// [DefineRoutes] validates a table once at startup. Duplicate method and path pairs, unknown
// methods, paths without a leading slash and missing handlers are configuration errors. [Bind]
// applies a global prefix and converts "{name}" segments to ":name".
//
// # Errors
//
// Handlers return errors. A domain [Error] carries its own status and machine-readable code and is
// sent as-is by the [Translator]. Anything else becomes a 500 "internal_error". Every error body
// has the shape:
//
//	{"error": {"code": "not_found", "message": "User not found", "details": ...}}
//
// # Logging
//
// Every adapter resolves a correlation id (inbound header, native request id, or a new UUID),
// stores it under [StoreKeyRequestID], mirrors it on the response and stores a child zap logger
// under [StoreKeyLogger]. Exactly one "request completed" or "request failed" record is written
// per request; see [StatusLevel] for the level of completion records.
package anyhttp
