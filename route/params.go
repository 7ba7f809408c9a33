package route

// Param is a single extracted placeholder value.
type Param struct {
	Name  string
	Value string
}

// Params is the ordered list of extracted values. The order is the
// declaration order of the placeholders in the expression.
type Params []Param

// Get returns the value of the named parameter and whether it exists.
func (ps Params) Get(name string) (string, bool) {
	for i := range ps {
		if ps[i].Name == name {
			return ps[i].Value, true
		}
	}
	return "", false
}

// ByName returns the value of the named parameter, or "" if absent.
func (ps Params) ByName(name string) string {
	v, _ := ps.Get(name)
	return v
}

// Map returns the parameters as a name to value map.
func (ps Params) Map() map[string]string {
	m := make(map[string]string, len(ps))
	for _, p := range ps {
		m[p.Name] = p.Value
	}
	return m
}

// Names returns the parameter names in order.
func (ps Params) Names() []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}
