package route

// MatchResult is the outcome of matching one path against one route.
type MatchResult struct {
	Matched bool
	Params  Params
}

// Match applies the route's defaults to path and reports whether the
// resolved path matches the whole pattern. It never fails: a path that
// cannot match yields a MatchResult with Matched set to false.
func Match(r *CompiledRoute, path string) MatchResult {
	resolved := r.ApplyDefaults(path)

	m := r.regexp.FindStringSubmatchIndex(resolved)
	if m == nil {
		return MatchResult{}
	}

	params := make(Params, len(r.variables))
	for i, name := range r.variables {
		g := r.groups[i]
		params[i] = Param{Name: name}
		if m[2*g] >= 0 {
			params[i].Value = resolved[m[2*g]:m[2*g+1]]
		}
	}

	return MatchResult{Matched: true, Params: params}
}

// Match is shorthand for Match(r, path).
func (r *CompiledRoute) Match(path string) MatchResult {
	return Match(r, path)
}

// MatchString reports whether path matches the route, defaults included.
func (r *CompiledRoute) MatchString(path string) bool {
	return r.regexp.MatchString(r.ApplyDefaults(path))
}
