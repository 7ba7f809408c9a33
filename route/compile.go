package route

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// AnyRequirement is the constraint used for placeholders that have no entry
// in the requirements map. It is greedy and may span '/' characters.
const AnyRequirement = ".*"

// SegmentRequirement restricts a placeholder to a single non-empty path
// segment. Set it as Options.DefaultRequirement to opt out of the greedy
// AnyRequirement behaviour.
const SegmentRequirement = "[^/]+"

// placeholderPattern finds :identifier tokens in an expression.
var placeholderPattern = regexp.MustCompile(`:(\w+)`)

var (
	// ErrEmptyExpression is returned when compiling an empty expression.
	ErrEmptyExpression = errors.New("route: empty expression")

	// ErrUnknownDefault is returned when a default names a variable that
	// the expression does not declare.
	ErrUnknownDefault = errors.New("route: default for undeclared variable")
)

// CompileError reports a route that could not be compiled. It wraps the
// underlying regexp error or one of the package sentinel errors.
type CompileError struct {
	Expression string
	Variable   string
	Err        error
}

func (e *CompileError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("route: compile %q: variable %q: %v", e.Expression, e.Variable, e.Err)
	}
	return fmt.Sprintf("route: compile %q: %v", e.Expression, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Template is the declarative definition of a route: a path expression with
// :name placeholders, per-placeholder regex constraints and fallback values
// for omitted trailing placeholders.
type Template struct {
	Expression   string
	Requirements map[string]string
	Defaults     map[string]string
}

// Options tunes compilation.
type Options struct {
	// DefaultRequirement is used for placeholders without a requirement.
	// Empty means AnyRequirement.
	DefaultRequirement string
}

// CompiledRoute is the immutable matcher built from a Template. It holds no
// per-request state and is safe for concurrent use.
type CompiledRoute struct {
	expression   string
	regexp       *regexp.Regexp
	staticPrefix string
	defaults     map[string]string

	// variables are the placeholder names in order of first appearance.
	variables []string
	// groups holds, per variable, the subexpression index whose value is
	// reported. For repeated names this is the last occurrence.
	groups []int
	// requirements constrain each variable value when building paths.
	requirements map[string]requirement
	// reverse is the expression with %s in place of every placeholder.
	reverse string
	// occurrences lists the placeholder name behind every %s in reverse.
	occurrences []string
}

// Compile compiles expression with the given requirements and defaults.
// Either map may be nil.
func Compile(expression string, requirements, defaults map[string]string) (*CompiledRoute, error) {
	return Template{
		Expression:   expression,
		Requirements: requirements,
		Defaults:     defaults,
	}.Compile(Options{})
}

// MustCompile is like Compile but panics if the route cannot be compiled.
func MustCompile(expression string, requirements, defaults map[string]string) *CompiledRoute {
	r, err := Compile(expression, requirements, defaults)
	if err != nil {
		panic(err)
	}
	return r
}

// Compile turns the template into a CompiledRoute.
func (t Template) Compile(opts Options) (*CompiledRoute, error) {
	expr := t.Expression
	if expr == "" {
		return nil, &CompileError{Err: ErrEmptyExpression}
	}

	defaultRequirement := opts.DefaultRequirement
	if defaultRequirement == "" {
		defaultRequirement = AnyRequirement
	}

	idxs := placeholderPattern.FindAllStringSubmatchIndex(expr, -1)

	var (
		pattern     strings.Builder
		reverse     strings.Builder
		variables   []string
		occurrences []string
		end         int
	)

	requirements := make(map[string]requirement)

	pattern.WriteByte('^')

	for _, idx := range idxs {
		raw := expr[end:idx[0]]
		name := expr[idx[2]:idx[3]]
		end = idx[1]

		req, ok := requirements[name]
		if !ok {
			value, has := t.Requirements[name]
			if !has {
				value = defaultRequirement
			}

			var err error
			req, err = resolveRequirement(value)
			if err != nil {
				return nil, &CompileError{Expression: expr, Variable: name, Err: err}
			}

			requirements[name] = req
			variables = append(variables, name)
		}

		fmt.Fprintf(&pattern, "%s(?P<%s>%s)", regexp.QuoteMeta(raw), name, req.fragment)
		reverse.WriteString(strings.ReplaceAll(raw, "%", "%%"))
		reverse.WriteString("%s")
		occurrences = append(occurrences, name)
	}

	raw := expr[end:]
	pattern.WriteString(regexp.QuoteMeta(raw))
	pattern.WriteByte('$')
	reverse.WriteString(strings.ReplaceAll(raw, "%", "%%"))

	re, err := compileRegexp(pattern.String())
	if err != nil {
		return nil, &CompileError{Expression: expr, Err: err}
	}

	defaults := make(map[string]string, len(t.Defaults))
	for name, value := range t.Defaults {
		if _, ok := requirements[name]; !ok {
			return nil, &CompileError{Expression: expr, Variable: name, Err: ErrUnknownDefault}
		}
		defaults[name] = value
	}

	staticPrefix := expr
	if len(idxs) > 0 {
		staticPrefix = expr[:idxs[0][0]]
	}

	return &CompiledRoute{
		expression:   expr,
		regexp:       re,
		staticPrefix: staticPrefix,
		defaults:     defaults,
		variables:    variables,
		groups:       groupIndices(re, variables),
		requirements: requirements,
		reverse:      reverse.String(),
		occurrences:  occurrences,
	}, nil
}

// groupIndices returns, for each variable, the index of the last
// subexpression carrying its name.
func groupIndices(re *regexp.Regexp, variables []string) []int {
	pos := make(map[string]int, len(variables))
	for i, name := range variables {
		pos[name] = i
	}

	groups := make([]int, len(variables))
	for i, name := range re.SubexpNames() {
		if p, ok := pos[name]; ok {
			groups[p] = i
		}
	}
	return groups
}

// Expression returns the source expression.
func (r *CompiledRoute) Expression() string {
	return r.expression
}

// Variables returns the placeholder names in order of first appearance.
func (r *CompiledRoute) Variables() []string {
	out := make([]string, len(r.variables))
	copy(out, r.variables)
	return out
}

// Regexp returns the anchored pattern used for matching.
func (r *CompiledRoute) Regexp() *regexp.Regexp {
	return r.regexp
}

// StaticPrefix returns the literal text before the first placeholder.
func (r *CompiledRoute) StaticPrefix() string {
	return r.staticPrefix
}

// Defaults returns a copy of the configured default values.
func (r *CompiledRoute) Defaults() map[string]string {
	out := make(map[string]string, len(r.defaults))
	for k, v := range r.defaults {
		out[k] = v
	}
	return out
}

// IsStatic reports whether the expression has no placeholders.
func (r *CompiledRoute) IsStatic() bool {
	return len(r.variables) == 0
}

func (r *CompiledRoute) String() string {
	return r.expression
}
