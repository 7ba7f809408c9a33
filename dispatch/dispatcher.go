package dispatch

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/vitalvas/actiondispatch/route"
)

// MaxForwards bounds nested ForwardResult dispatches within one request.
const MaxForwards = 8

// DefaultMethod is the method invoked when neither the route nor the
// controller names one.
const DefaultMethod = "index"

// Dispatcher maps request paths to controller methods.
//
// Routes are matched in registration order and the first match wins.
// Register routes and controllers, then serve: the registry is sealed on
// the first request and is read without locking afterwards.
//
//	d := dispatch.NewDispatcher()
//	d.Register(&dispatch.Controller{Name: "products", Methods: ...})
//	d.Handle("product", route.Template{Expression: "/products/view/:id"},
//	    dispatch.Target{Controller: "products", Method: "view"})
//	http.ListenAndServe(":8080", d)
type Dispatcher struct {
	// NotFoundHandler is called when no route matches.
	// If nil, http.NotFoundHandler() is used.
	NotFoundHandler http.Handler

	// MethodNotFoundHandler is called when the selected controller has no
	// matching method. If nil, http.NotFoundHandler() is used.
	MethodNotFoundHandler http.Handler

	// ErrorHandler is called for any other dispatch error. If nil, a
	// plain 500 Internal Server Error is written.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

	// Logger receives dispatch failures and selections. If nil, nothing
	// is logged.
	Logger *slog.Logger

	mu          sync.Mutex
	sealed      atomic.Bool
	sealOnce    sync.Once
	handler     http.Handler
	routes      []*Route
	namedRoutes map[string]*Route
	controllers map[string]*Controller
	results     map[string]Result
	middlewares []MiddlewareFunc

	basePath      string
	defaultMethod string
	compileOpts   route.Options
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		namedRoutes:   make(map[string]*Route),
		controllers:   make(map[string]*Controller),
		results:       make(map[string]Result),
		defaultMethod: DefaultMethod,
	}
}

// BasePath sets a prefix stripped from request paths before matching and
// prepended to URLs built by URL and to redirect locations. It returns
// ErrSealed once the dispatcher has served a request.
func (d *Dispatcher) BasePath(prefix string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sealed.Load() {
		return ErrSealed
	}
	d.basePath = strings.TrimSuffix(prefix, "/")
	return nil
}

// DefaultMethod sets the method used when neither route nor controller
// names one. An empty name keeps the current default.
func (d *Dispatcher) DefaultMethod(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sealed.Load() {
		return ErrSealed
	}
	if name != "" {
		d.defaultMethod = name
	}
	return nil
}

// DefaultRequirement sets the constraint for placeholders without a
// requirement in routes registered afterwards.
func (d *Dispatcher) DefaultRequirement(pattern string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sealed.Load() {
		return ErrSealed
	}
	d.compileOpts.DefaultRequirement = pattern
	return nil
}

// --- Registration ---

// Handle compiles tpl and registers it for target. Compile errors are
// returned and the route is not registered. A non-empty name must be
// unique and makes the route available to Get and URL.
func (d *Dispatcher) Handle(name string, tpl route.Template, target Target) (*Route, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sealed.Load() {
		return nil, ErrSealed
	}
	if name != "" {
		if _, ok := d.namedRoutes[name]; ok {
			return nil, fmt.Errorf("dispatch: duplicate route name %q", name)
		}
	}

	r, err := NewRoute(name, tpl, target, d.compileOpts)
	if err != nil {
		return nil, err
	}

	d.routes = append(d.routes, r)
	if name != "" {
		d.namedRoutes[name] = r
	}
	return r, nil
}

// MustHandle is like Handle but panics on error.
func (d *Dispatcher) MustHandle(name string, tpl route.Template, target Target) *Route {
	r, err := d.Handle(name, tpl, target)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds a controller. Names must be unique and every entry in
// Methods must be non-nil.
func (d *Dispatcher) Register(c *Controller) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sealed.Load() {
		return ErrSealed
	}
	if c == nil || c.Name == "" {
		return errors.New("dispatch: controller without name")
	}
	if _, ok := d.controllers[c.Name]; ok {
		return fmt.Errorf("dispatch: duplicate controller %q", c.Name)
	}
	for name, fn := range c.Methods {
		if fn == nil {
			return fmt.Errorf("dispatch: controller %q: method %q is nil", c.Name, name)
		}
	}

	d.controllers[c.Name] = c
	return nil
}

// RegisterResult adds a dispatcher-wide result, used when the controller
// does not define the name itself.
func (d *Dispatcher) RegisterResult(name string, res Result) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sealed.Load() {
		return ErrSealed
	}
	d.results[name] = res
	return nil
}

// Seal freezes the registry and builds the middleware chain. It is called
// by the first ServeHTTP and is safe to call more than once.
func (d *Dispatcher) Seal() {
	d.sealOnce.Do(func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		d.sealed.Store(true)
		d.handler = d.applyMiddleware(http.HandlerFunc(d.serve))
	})
}

// --- Lookup ---

// Get returns the route registered with the given name.
func (d *Dispatcher) Get(name string) *Route {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.namedRoutes[name]
}

// Controller returns the controller registered with the given name.
func (d *Dispatcher) Controller(name string) *Controller {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.controllers[name]
}

// Routes returns the registered routes in registration order.
func (d *Dispatcher) Routes() []*Route {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*Route, len(d.routes))
	copy(out, d.routes)
	return out
}

// Walk calls fn for every route in registration order and stops at the
// first error.
func (d *Dispatcher) Walk(fn func(*Route) error) error {
	for _, r := range d.Routes() {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

// URL builds the path of a named route, base path included.
func (d *Dispatcher) URL(name string, values map[string]string) (string, error) {
	d.mu.Lock()
	r, base := d.namedRoutes[name], d.basePath
	d.mu.Unlock()

	if r == nil {
		return "", fmt.Errorf("dispatch: route %q not found", name)
	}

	p, err := r.compiled.Build(values)
	if err != nil {
		return "", err
	}
	return base + p, nil
}

// --- Selection ---

// Select returns the first route matching path. It does not resolve the
// method; see Resolve.
func (d *Dispatcher) Select(path string) (ActionTarget, error) {
	if d.sealed.Load() {
		return Select(d.routes, path)
	}
	return Select(d.Routes(), path)
}

// Resolve selects the route for path and resolves the method to invoke.
func (d *Dispatcher) Resolve(path string) (ActionTarget, error) {
	a, err := d.Select(path)
	if err != nil {
		return ActionTarget{}, err
	}

	c := d.lookupController(a.Controller)
	if c == nil {
		return ActionTarget{}, fmt.Errorf("%w: controller %q is not registered", ErrMethodNotFound, a.Controller)
	}

	method, err := d.resolveMethod(c, a, path)
	if err != nil {
		return ActionTarget{}, fmt.Errorf("%w (controller %q)", err, c.Name)
	}
	a.Method = method
	return a, nil
}

func (d *Dispatcher) lookupController(name string) *Controller {
	if d.sealed.Load() {
		return d.controllers[name]
	}
	return d.Controller(name)
}

// resolveMethod picks the method for an action: the route's method, the
// suffix resolver applied to the path remainder, or a default.
func (d *Dispatcher) resolveMethod(c *Controller, a ActionTarget, path string) (string, error) {
	if a.Method != "" {
		if !c.HasMethod(a.Method) {
			return "", fmt.Errorf("%w: %q", ErrMethodNotFound, a.Method)
		}
		return a.Method, nil
	}

	if c.Suffix != nil {
		compiled := a.Route.compiled
		rest := strings.TrimPrefix(compiled.ApplyDefaults(path), compiled.StaticPrefix())
		return c.Suffix.Resolve(rest, c)
	}

	name := c.DefaultMethod
	if name == "" {
		name = d.fallbackMethod()
	}
	if !c.HasMethod(name) {
		return "", fmt.Errorf("%w: %q", ErrMethodNotFound, name)
	}
	return name, nil
}

func (d *Dispatcher) fallbackMethod() string {
	if d.sealed.Load() {
		return d.defaultMethod
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.defaultMethod
}

// --- Invocation ---

// ServeHTTP dispatches the request to the selected action.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	d.Seal()

	req, _ = withActionHolder(req)
	d.handler.ServeHTTP(w, req)
}

// serve is the innermost handler of the middleware chain.
func (d *Dispatcher) serve(w http.ResponseWriter, req *http.Request) {
	p := cleanPath(req.URL.Path)

	if d.basePath != "" {
		if p != d.basePath && !strings.HasPrefix(p, d.basePath+"/") {
			d.fail(w, req, fmt.Errorf("%w for path %q", ErrNoRoute, p))
			return
		}
		p = strings.TrimPrefix(p, d.basePath)
		if p == "" {
			p = "/"
		}
	}

	if err := d.dispatch(w, req, p, nil); err != nil {
		d.fail(w, req, err)
	}
}

// dispatch resolves path and runs the action. parent is the forwarding
// context, or nil for the original request.
func (d *Dispatcher) dispatch(w http.ResponseWriter, req *http.Request, path string, parent *Context) error {
	c := &Context{
		Request:    req,
		Writer:     w,
		dispatcher: d,
	}
	if parent != nil {
		if parent.forwards >= MaxForwards {
			return fmt.Errorf("%w: %q", ErrForwardLoop, path)
		}
		c.forwards = parent.forwards + 1
		c.data = parent.data
	}

	a, err := d.Resolve(path)
	if err != nil {
		return err
	}

	c.Action = a
	c.Controller = d.controllers[a.Controller]

	if h, ok := req.Context().Value(actionKey{}).(*actionHolder); ok {
		h.action, h.ok = a, true
	}

	if d.Logger != nil {
		d.Logger.DebugContext(req.Context(), "dispatch",
			"path", path,
			"route", a.Route.compiled.Expression(),
			"controller", a.Controller,
			"method", a.Method,
			"forwards", c.forwards,
			"request_id", RequestID(req.Context()),
		)
	}

	return d.invoke(c)
}

// invoke runs parameter binding, hooks, the method and its result.
func (d *Dispatcher) invoke(c *Context) error {
	ctrl := c.Controller

	if ctrl.State != nil {
		sink := ctrl.State()
		for _, p := range c.Action.Params {
			if err := sink.SetParam(p.Name, p.Value); err != nil {
				return fmt.Errorf("dispatch: set param %q: %w", p.Name, err)
			}
		}
		c.State = sink
	}

	for _, h := range ctrl.Before {
		if err := h(c); err != nil {
			return err
		}
	}

	fn, _ := ctrl.Method(c.Action.Method)
	name, err := fn(c)
	if err != nil {
		return err
	}

	for _, h := range ctrl.After {
		if err := h(c); err != nil {
			return err
		}
	}

	if name == "" {
		return nil
	}

	res, ok := ctrl.Results[name]
	if !ok {
		res, ok = d.results[name]
	}
	if !ok {
		return fmt.Errorf("%w: %q (controller %q)", ErrResultNotFound, name, ctrl.Name)
	}
	return res.Render(c)
}

// fail answers a dispatch error through the configured handlers.
func (d *Dispatcher) fail(w http.ResponseWriter, req *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNoRoute):
		d.log(slog.LevelWarn, req, err)
		handler := d.NotFoundHandler
		if handler == nil {
			handler = http.NotFoundHandler()
		}
		handler.ServeHTTP(w, req)
	case errors.Is(err, ErrMethodNotFound):
		d.log(slog.LevelWarn, req, err)
		handler := d.MethodNotFoundHandler
		if handler == nil {
			handler = http.NotFoundHandler()
		}
		handler.ServeHTTP(w, req)
	default:
		d.log(slog.LevelError, req, err)
		if d.ErrorHandler != nil {
			d.ErrorHandler(w, req, err)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (d *Dispatcher) log(level slog.Level, req *http.Request, err error) {
	if d.Logger == nil {
		return
	}
	d.Logger.Log(req.Context(), level, "dispatch failed",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", RequestID(req.Context()),
		"error", err,
	)
}
