package dispatch

import (
	"context"
	"net/http"

	"github.com/vitalvas/actiondispatch/route"
)

// Context carries one dispatched action through its hooks, method and
// result.
type Context struct {
	Request *http.Request
	Writer  http.ResponseWriter

	// Action is the selected route, controller and resolved method.
	Action ActionTarget

	// Controller is the registered controller for Action.
	Controller *Controller

	// State is the value created by Controller.State, if any.
	State ParamSink

	dispatcher *Dispatcher
	data       map[string]any
	forwards   int
}

// Param returns the value of a route parameter, or "" if absent.
func (c *Context) Param(name string) string {
	return c.Action.Params.ByName(name)
}

// Params returns all route parameters in declaration order.
func (c *Context) Params() route.Params {
	return c.Action.Params
}

// Set stores a value for results to render.
func (c *Context) Set(key string, value any) {
	if c.data == nil {
		c.data = make(map[string]any)
	}
	c.data[key] = value
}

// Get returns a value stored with Set.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.data[key]
	return v, ok
}

// Data returns every value stored with Set.
func (c *Context) Data() map[string]any {
	if c.data == nil {
		return map[string]any{}
	}
	return c.data
}

// RequestID returns the ID attached to the request with WithRequestID.
func (c *Context) RequestID() string {
	return RequestID(c.Request.Context())
}

// Forward dispatches path within the current request. Values stored with
// Set are visible to the forwarded action.
func (c *Context) Forward(path string) error {
	return c.dispatcher.dispatch(c.Writer, c.Request, path, c)
}

type requestIDKey struct{}

// WithRequestID attaches a request ID to ctx. The dispatcher adds it to
// its log records and actions read it with Context.RequestID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the ID attached with WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// actionKey is the context key for the action selected for a request.
type actionKey struct{}

// actionHolder is filled in by the dispatcher once an action is selected,
// so middleware running outside the dispatch can read it afterwards.
type actionHolder struct {
	action ActionTarget
	ok     bool
}

func withActionHolder(r *http.Request) (*http.Request, *actionHolder) {
	if h, ok := r.Context().Value(actionKey{}).(*actionHolder); ok {
		return r, h
	}
	h := &actionHolder{}
	return r.WithContext(context.WithValue(r.Context(), actionKey{}, h)), h
}

// CurrentAction returns the action selected for the request, if any. In
// middleware it is available after the wrapped handler returns.
func CurrentAction(r *http.Request) (ActionTarget, bool) {
	if h, ok := r.Context().Value(actionKey{}).(*actionHolder); ok && h.ok {
		return h.action, true
	}
	return ActionTarget{}, false
}

// Vars returns the route parameters of the action selected for the
// request as a map, or nil.
func Vars(r *http.Request) map[string]string {
	if a, ok := CurrentAction(r); ok {
		return a.Params.Map()
	}
	return nil
}
