// Package dispatch selects and invokes controller actions for request
// paths.
//
// # Routes and controllers
//
// A route binds a path expression (see package route) to a Target, the
// name of a controller and optionally one of its methods. Controllers are
// registered explicitly with the methods they expose:
//
//	d := dispatch.NewDispatcher()
//	d.Register(&dispatch.Controller{
//	    Name: "products",
//	    Methods: map[string]dispatch.MethodFunc{
//	        "view": func(c *dispatch.Context) (string, error) {
//	            c.Set("id", c.Param("id"))
//	            return "json", nil
//	        },
//	    },
//	    Results: map[string]dispatch.Result{
//	        "json": dispatch.JSONResult{},
//	    },
//	})
//	d.Handle("product", route.Template{
//	    Expression:   "/products/view/:id",
//	    Requirements: map[string]string{"id": `\d+`},
//	    Defaults:     map[string]string{"id": "1"},
//	}, dispatch.Target{Controller: "products", Method: "view"})
//
// # Selection
//
// Routes are tried in registration order and the first match wins; there
// is no ranking by specificity. When no route matches, the error wraps
// ErrNoRoute and the front controller answers 404.
//
// # Method resolution
//
// A route that names a method dispatches to it directly. A route that names
// none uses the controller's SuffixResolver, if set: the first segment of
// the path after the route's static prefix plus a suffix ("/test" ->
// "testAction"). Otherwise the controller's DefaultMethod or the
// dispatcher's default ("index") is used. A method the controller does not
// expose yields ErrMethodNotFound.
//
// # Lifecycle
//
// For every dispatched action the dispatcher passes the route parameters to
// Controller.State, runs the Before hooks, the method, the After hooks and
// finally renders the result named by the method: JSONResult,
// RedirectResult, RawResult or ForwardResult.
package dispatch
