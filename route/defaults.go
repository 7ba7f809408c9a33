package route

import "strings"

// ApplyDefaults back-fills omitted trailing placeholders of path from
// defaults. It only rewrites paths that start with the route's static
// prefix and that supply fewer segments than the route has variables.
// Filling stops at the first variable without a default. Paths for routes
// without defaults are returned unchanged.
func ApplyDefaults(r *CompiledRoute, defaults map[string]string, path string) string {
	if len(defaults) == 0 || len(r.variables) == 0 {
		return path
	}

	prefix := r.staticPrefix
	var rest string
	switch {
	case strings.HasPrefix(path, prefix):
		rest = path[len(prefix):]
	case path == strings.TrimSuffix(prefix, "/"):
		rest = ""
	default:
		return path
	}

	supplied := 0
	for _, seg := range strings.Split(rest, "/") {
		if seg != "" {
			supplied++
		}
	}
	if supplied >= len(r.variables) {
		return path
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(path, "/"))
	filled := false
	for _, name := range r.variables[supplied:] {
		value, ok := defaults[name]
		if !ok {
			break
		}
		b.WriteByte('/')
		b.WriteString(value)
		filled = true
	}

	if !filled {
		return path
	}
	return b.String()
}

// ApplyDefaults back-fills path using the route's own defaults.
func (r *CompiledRoute) ApplyDefaults(path string) string {
	return ApplyDefaults(r, r.defaults, path)
}
