package dispatch

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vitalvas/actiondispatch/route"
)

// Result renders the response of an action. Action methods select a
// result by name; controllers and the dispatcher map names to Results.
type Result interface {
	Render(c *Context) error
}

// ResultFunc adapts a function to the Result interface.
type ResultFunc func(c *Context) error

// Render calls f(c).
func (f ResultFunc) Render(c *Context) error {
	return f(c)
}

// JSONResult writes context data as JSON.
type JSONResult struct {
	// Status defaults to 200 OK.
	Status int

	// Key selects a single value stored with Context.Set. Empty renders
	// every stored value as an object.
	Key string
}

// Render implements Result.
func (r JSONResult) Render(c *Context) error {
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}

	var v any = c.Data()
	if r.Key != "" {
		v, _ = c.Get(r.Key)
	}

	return ResponseJSON(c.Writer, status, v)
}

// RedirectResult redirects the client. Placeholders (:name) in Location
// are replaced with the action's route parameters. A Location starting
// with a single '/' is a dispatcher path and gets the base path prepended;
// other locations are sent as they are.
type RedirectResult struct {
	Location string

	// Status defaults to 302 Found.
	Status int
}

// Render implements Result.
func (r RedirectResult) Render(c *Context) error {
	status := r.Status
	if status == 0 {
		status = http.StatusFound
	}

	location := route.Expand(r.Location, c.Params())
	if c.dispatcher != nil && strings.HasPrefix(location, "/") && !strings.HasPrefix(location, "//") {
		location = c.dispatcher.basePath + location
	}

	http.Redirect(c.Writer, c.Request, location, status)
	return nil
}

// RawResult writes a stored value as the response body.
type RawResult struct {
	// ContentType defaults to "text/plain; charset=utf-8".
	ContentType string

	// Status defaults to 200 OK.
	Status int

	// Key names the value stored with Context.Set. It must hold a string
	// or a []byte. Defaults to "body".
	Key string
}

// Render implements Result.
func (r RawResult) Render(c *Context) error {
	key := r.Key
	if key == "" {
		key = "body"
	}

	var body []byte
	switch v, _ := c.Get(key); b := v.(type) {
	case nil:
	case []byte:
		body = b
	case string:
		body = []byte(b)
	default:
		return fmt.Errorf("dispatch: raw result %q holds %T, want string or []byte", key, v)
	}

	contentType := r.ContentType
	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}

	c.Writer.Header().Set("Content-Type", contentType)
	c.Writer.WriteHeader(status)
	_, err := c.Writer.Write(body)
	return err
}

// ForwardResult dispatches another path within the same request.
// Placeholders (:name) in Path are replaced with the action's route
// parameters.
type ForwardResult struct {
	Path string
}

// Render implements Result.
func (r ForwardResult) Render(c *Context) error {
	return c.Forward(route.Expand(r.Path, c.Params()))
}
