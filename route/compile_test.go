package route

import (
	"errors"
	"regexp"
	"regexp/syntax"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	t.Run("static expression", func(t *testing.T) {
		r, err := Compile("/products/list", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "^/products/list$", r.Regexp().String())
		assert.Equal(t, "/products/list", r.StaticPrefix())
		assert.Empty(t, r.Variables())
		assert.True(t, r.IsStatic())
	})

	t.Run("single placeholder", func(t *testing.T) {
		r, err := Compile("/products/view/:id", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, `^/products/view/(?P<id>.*)$`, r.Regexp().String())
		assert.Equal(t, "/products/view/", r.StaticPrefix())
		assert.Equal(t, []string{"id"}, r.Variables())
		assert.False(t, r.IsStatic())
	})

	t.Run("requirement replaces default fragment", func(t *testing.T) {
		r, err := Compile("/products/view/:id", map[string]string{"id": `\d+`}, nil)
		require.NoError(t, err)
		assert.Equal(t, `^/products/view/(?P<id>\d+)$`, r.Regexp().String())
	})

	t.Run("shorthand requirement", func(t *testing.T) {
		r, err := Compile("/users/:id", map[string]string{"id": "int"}, nil)
		require.NoError(t, err)
		assert.Equal(t, `^/users/(?P<id>[0-9]+)$`, r.Regexp().String())
	})

	t.Run("variables in order of appearance", func(t *testing.T) {
		r, err := Compile("/:controller/:action/:id", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"controller", "action", "id"}, r.Variables())
		assert.Equal(t, "/", r.StaticPrefix())
	})

	t.Run("literal metacharacters are quoted", func(t *testing.T) {
		r, err := Compile("/files/:name.json", map[string]string{"name": "[a-z]+"}, nil)
		require.NoError(t, err)
		assert.Equal(t, `^/files/(?P<name>[a-z]+)\.json$`, r.Regexp().String())
	})

	t.Run("default requirement option", func(t *testing.T) {
		r, err := Template{Expression: "/:a/:b"}.Compile(Options{DefaultRequirement: SegmentRequirement})
		require.NoError(t, err)
		assert.Equal(t, `^/(?P<a>[^/]+)/(?P<b>[^/]+)$`, r.Regexp().String())
	})

	t.Run("colon without identifier is literal", func(t *testing.T) {
		r, err := Compile("/time/12:/:zone", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"zone"}, r.Variables())
		assert.Equal(t, "/time/12:/", r.StaticPrefix())
	})

	t.Run("duplicate names compile", func(t *testing.T) {
		r, err := Compile("/:x/and/:x", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, r.Variables())
	})

	t.Run("defaults are copied", func(t *testing.T) {
		defaults := map[string]string{"id": "1"}
		r, err := Compile("/products/view/:id", nil, defaults)
		require.NoError(t, err)
		defaults["id"] = "2"
		assert.Equal(t, map[string]string{"id": "1"}, r.Defaults())
	})
}

func TestCompileErrors(t *testing.T) {
	t.Run("empty expression", func(t *testing.T) {
		_, err := Compile("", nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyExpression)
	})

	t.Run("invalid requirement names the variable", func(t *testing.T) {
		_, err := Compile("/products/view/:id", map[string]string{"id": `([0-9`}, nil)
		require.Error(t, err)

		var ce *CompileError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "id", ce.Variable)
		assert.Equal(t, "/products/view/:id", ce.Expression)

		var syntaxErr *syntax.Error
		assert.True(t, errors.As(err, &syntaxErr))
		assert.Contains(t, err.Error(), `variable "id"`)
	})

	t.Run("default for undeclared variable", func(t *testing.T) {
		_, err := Compile("/products/view/:id", nil, map[string]string{"page": "1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownDefault)
	})

	t.Run("must compile panics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustCompile("/x/:id", map[string]string{"id": "("}, nil)
		})
		assert.NotPanics(t, func() {
			MustCompile("/x/:id", nil, nil)
		})
	})
}

func TestCompileStaticMatchesOnlyItself(t *testing.T) {
	exprs := []string{"/", "/about", "/a.b/c+d", "/price/$5", "/q?x=1"}

	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			r, err := Compile(expr, nil, nil)
			require.NoError(t, err)
			assert.True(t, r.Match(expr).Matched)
			assert.False(t, r.Match(expr+"x").Matched)
			assert.False(t, r.Match("x"+expr).Matched)
		})
	}

	r := MustCompile("/a.b", nil, nil)
	assert.False(t, r.Match("/aXb").Matched)
}

func TestCompileRoundTrip(t *testing.T) {
	r, err := Compile("/shop/:category/items/:sku", map[string]string{"sku": `[A-Z]{3}-\d+`}, nil)
	require.NoError(t, err)

	path, err := r.Build(map[string]string{"category": "books", "sku": "ABC-42"})
	require.NoError(t, err)
	assert.Equal(t, "/shop/books/items/ABC-42", path)

	res := r.Match(path)
	require.True(t, res.Matched)
	assert.Equal(t, map[string]string{"category": "books", "sku": "ABC-42"}, res.Params.Map())
}

func TestCompileUsesRegexpCache(t *testing.T) {
	r1 := MustCompile("/cache/:id", nil, nil)
	r2 := MustCompile("/cache/:id", nil, nil)
	assert.NotSame(t, r1, r2)
	assert.Same(t, r1.Regexp(), r2.Regexp())
}

func TestShorthands(t *testing.T) {
	for name, s := range shorthands {
		t.Run(name, func(t *testing.T) {
			_, err := regexp.Compile(s.pattern)
			assert.NoError(t, err)

			pattern, ok := Shorthand(name)
			assert.True(t, ok)
			assert.Equal(t, s.pattern, pattern)
		})
	}

	_, ok := Shorthand(`\d+`)
	assert.False(t, ok)
}

func TestResolveRequirement(t *testing.T) {
	tests := []struct {
		value    string
		fragment string
		allowed  []string
		rejected []string
	}{
		{value: "int", fragment: "[0-9]+", allowed: []string{"0", "42"}, rejected: []string{"", "12a"}},
		{value: "uuid", allowed: []string{"550e8400-e29b-41d4-a716-446655440000"}, rejected: []string{"550e8400"}},
		{value: "slug", allowed: []string{"my-post"}, rejected: []string{"my--post", "-post"}},
		{value: "domain", allowed: []string{"example.com"}, rejected: []string{strings.Repeat("a.", 127) + "com"}},
		{value: `\d{2}`, fragment: `\d{2}`, allowed: []string{"12"}, rejected: []string{"1", "123"}},
		{value: "a|b", fragment: "a|b", allowed: []string{"a", "b"}, rejected: []string{"ab"}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			req, err := resolveRequirement(tt.value)
			require.NoError(t, err)
			if tt.fragment != "" {
				assert.Equal(t, tt.fragment, req.fragment)
			}
			for _, v := range tt.allowed {
				assert.True(t, req.allows(v), v)
			}
			for _, v := range tt.rejected {
				assert.False(t, req.allows(v), v)
			}
		})
	}

	_, err := resolveRequirement("(")
	assert.Error(t, err)
}

func TestBuildRejectsOverlongDomain(t *testing.T) {
	r := MustCompile("/sites/:host", map[string]string{"host": "domain"}, nil)

	_, err := r.Build(map[string]string{"host": strings.Repeat("a.", 127) + "com"})
	assert.Error(t, err)

	p, err := r.Build(map[string]string{"host": "example.com"})
	require.NoError(t, err)
	assert.Equal(t, "/sites/example.com", p)
}

// --- Benchmarks ---

func BenchmarkCompile(b *testing.B) {
	for b.Loop() {
		Compile("/products/view/:sku/:qty", map[string]string{"qty": `\d+`}, map[string]string{"qty": "10"}) //nolint:errcheck
	}
}
