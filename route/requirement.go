package route

import "regexp"

// shorthand is a requirement that can be written by name, such as
// Requirements{"id": "int"}.
type shorthand struct {
	pattern string
	maxLen  int
}

var shorthands = map[string]shorthand{
	"int":      {pattern: `[0-9]+`},
	"float":    {pattern: `[0-9]*\.?[0-9]+`},
	"hex":      {pattern: `[0-9a-fA-F]+`},
	"alpha":    {pattern: `[a-zA-Z]+`},
	"alphanum": {pattern: `[a-zA-Z0-9]+`},
	"slug":     {pattern: `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`},
	"date":     {pattern: `[0-9]{4}-[0-9]{2}-[0-9]{2}`},
	"uuid":     {pattern: `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`},
	"domain": {
		pattern: `(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?`,
		maxLen:  253,
	},
}

// Shorthand returns the pattern a named requirement stands for.
func Shorthand(name string) (string, bool) {
	s, ok := shorthands[name]
	return s.pattern, ok
}

// requirement is the resolved constraint of one placeholder: the fragment
// embedded in the route pattern and the anchored form Build checks values
// against.
type requirement struct {
	fragment string
	anchored *regexp.Regexp
	maxLen   int
}

// resolveRequirement expands a shorthand name or takes value as a regular
// expression. The error is the regexp compile error, if any.
func resolveRequirement(value string) (requirement, error) {
	s, ok := shorthands[value]
	if !ok {
		s = shorthand{pattern: value}
	}

	re, err := compileRegexp("^(?:" + s.pattern + ")$")
	if err != nil {
		return requirement{}, err
	}
	return requirement{fragment: s.pattern, anchored: re, maxLen: s.maxLen}, nil
}

func (q requirement) allows(value string) bool {
	if q.maxLen > 0 && len(value) > q.maxLen {
		return false
	}
	return q.anchored.MatchString(value)
}
