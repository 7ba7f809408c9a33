package dispatchhandlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitalvas/actiondispatch/dispatch"
	"github.com/vitalvas/actiondispatch/route"
)

// newTestDispatcher serves a "pages" controller on /pages/:id and a
// panicking method on /panic, wrapped in mw.
func newTestDispatcher(t *testing.T, mw ...dispatch.MiddlewareFunc) *dispatch.Dispatcher {
	t.Helper()

	d := dispatch.NewDispatcher()
	require.NoError(t, d.Register(&dispatch.Controller{
		Name: "pages",
		Methods: map[string]dispatch.MethodFunc{
			"view": func(c *dispatch.Context) (string, error) {
				c.Set("body", "page "+c.Param("id")+" "+c.RequestID())
				return "raw", nil
			},
			"explode": func(*dispatch.Context) (string, error) {
				panic("kaboom")
			},
		},
		Results: map[string]dispatch.Result{
			"raw": dispatch.RawResult{},
		},
	}))
	d.MustHandle("", route.Template{Expression: "/pages/:id"}, dispatch.Target{Controller: "pages", Method: "view"})
	d.MustHandle("", route.Template{Expression: "/panic"}, dispatch.Target{Controller: "pages", Method: "explode"})

	require.NoError(t, d.Use(mw...))
	return d
}
