package anyhttp

// Handler is the controller contract. Controllers are always terminal: their continuation is inert.
type Handler func(c *Context) error

// Middleware has the same shape as a [Handler] but is expected to call [Context.Next] or emit a
// response.
type Middleware func(c *Context) error

// Controller is a handler with an optional display name. The name doubles as the route name for
// reversing.
type Controller struct {
	Name    string
	Handler Handler
}
