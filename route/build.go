package route

import "fmt"

// Build fills the route's placeholders from values and returns the path.
// Missing values fall back to the route defaults. Every value must satisfy
// the placeholder's requirement.
func (r *CompiledRoute) Build(values map[string]string) (string, error) {
	args := make([]any, len(r.occurrences))
	for i, name := range r.occurrences {
		v, ok := values[name]
		if !ok {
			v, ok = r.defaults[name]
		}
		if !ok {
			return "", fmt.Errorf("route: missing variable %q for %q", name, r.expression)
		}
		if req := r.requirements[name]; !req.allows(v) {
			return "", fmt.Errorf("route: variable %q doesn't match, expected %q", name, req.fragment)
		}
		args[i] = v
	}
	return fmt.Sprintf(r.reverse, args...), nil
}

// Expand replaces every :name token in s whose name is present in params.
// Tokens without a value are left as they are.
func Expand(s string, params Params) string {
	if len(params) == 0 {
		return s
	}
	return placeholderPattern.ReplaceAllStringFunc(s, func(tok string) string {
		if v, ok := params.Get(tok[1:]); ok {
			return v
		}
		return tok
	})
}
