package dispatch

// MethodFunc performs an action and returns the name of the result to
// render. An empty name means the method wrote the response itself.
type MethodFunc func(c *Context) (string, error)

// HookFunc runs before or after an action method. A non-nil error stops
// the dispatch.
type HookFunc func(c *Context) error

// ParamSink receives the extracted route parameters one by one before any
// hook runs.
type ParamSink interface {
	SetParam(name, value string) error
}

// Controller groups the methods a route can dispatch to, together with the
// hooks and results they share. Controllers are registered on a Dispatcher
// by Name and are read-only once the dispatcher is sealed.
type Controller struct {
	Name string

	// Methods lists every callable method by name.
	Methods map[string]MethodFunc

	// DefaultMethod is invoked when the route names no method and Suffix
	// is nil. Empty falls back to the dispatcher's default method.
	DefaultMethod string

	// Suffix, when set, selects the method from the path remainder after
	// the route's static prefix for routes that name no method.
	Suffix *SuffixResolver

	// Results are looked up by the name an action method returns, before
	// the dispatcher-wide results.
	Results map[string]Result

	// Before hooks run in order before the method (pre-dispatch).
	Before []HookFunc

	// After hooks run in order after the method (post-dispatch).
	After []HookFunc

	// State, when set, creates a per-request value that receives every
	// route parameter and is exposed as Context.State.
	State func() ParamSink
}

// HasMethod implements MethodSet.
func (c *Controller) HasMethod(name string) bool {
	_, ok := c.Methods[name]
	return ok
}

// Method returns the named method.
func (c *Controller) Method(name string) (MethodFunc, bool) {
	fn, ok := c.Methods[name]
	return fn, ok
}
