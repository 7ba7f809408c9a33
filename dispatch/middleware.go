package dispatch

import "net/http"

// MiddlewareFunc is a function which receives an http.Handler and returns
// another http.Handler. Middleware wraps the whole dispatch, including
// not-found and error responses.
type MiddlewareFunc func(http.Handler) http.Handler

// Middleware allows MiddlewareFunc to implement the Middleware interface.
func (mw MiddlewareFunc) Middleware(handler http.Handler) http.Handler {
	return mw(handler)
}

// Use appends middleware to the chain. The first middleware is the
// outermost. Use after the dispatcher is sealed has no effect on the
// already built chain and returns ErrSealed.
func (d *Dispatcher) Use(mwf ...MiddlewareFunc) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sealed.Load() {
		return ErrSealed
	}
	d.middlewares = append(d.middlewares, mwf...)
	return nil
}

// applyMiddleware wraps the handler with all registered middleware.
func (d *Dispatcher) applyMiddleware(handler http.Handler) http.Handler {
	for i := len(d.middlewares) - 1; i >= 0; i-- {
		handler = d.middlewares[i].Middleware(handler)
	}
	return handler
}
