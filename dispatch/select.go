package dispatch

import (
	"fmt"

	"github.com/vitalvas/actiondispatch/route"
)

// Target names the controller and method a route leads to. An empty
// Method leaves the choice to the dispatcher.
type Target struct {
	Controller string
	Method     string
}

// ActionTarget is the outcome of a successful selection.
type ActionTarget struct {
	Route      *Route
	Controller string
	Method     string
	Params     route.Params
}

// Route binds a compiled path expression to a Target.
type Route struct {
	name     string
	compiled *route.CompiledRoute
	target   Target
}

// NewRoute compiles tpl and binds it to target.
func NewRoute(name string, tpl route.Template, target Target, opts route.Options) (*Route, error) {
	compiled, err := tpl.Compile(opts)
	if err != nil {
		return nil, err
	}
	return &Route{name: name, compiled: compiled, target: target}, nil
}

// Name returns the route name, which may be empty.
func (r *Route) Name() string {
	return r.name
}

// Compiled returns the compiled expression.
func (r *Route) Compiled() *route.CompiledRoute {
	return r.compiled
}

// Target returns the controller and method the route leads to.
func (r *Route) Target() Target {
	return r.target
}

// Match matches path against the route.
func (r *Route) Match(path string) route.MatchResult {
	return r.compiled.Match(path)
}

// Select walks routes in order and returns the first one that matches path.
// No ranking by specificity is done: register specific routes first.
func Select(routes []*Route, path string) (ActionTarget, error) {
	for _, r := range routes {
		res := r.Match(path)
		if !res.Matched {
			continue
		}
		return ActionTarget{
			Route:      r,
			Controller: r.target.Controller,
			Method:     r.target.Method,
			Params:     res.Params,
		}, nil
	}
	return ActionTarget{}, fmt.Errorf("%w for path %q", ErrNoRoute, path)
}
