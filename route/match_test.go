package route

import (
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name         string
		expression   string
		requirements map[string]string
		defaults     map[string]string
		path         string
		matched      bool
		params       Params
	}{
		{
			name:       "unconstrained placeholder",
			expression: "/products/view/:id",
			path:       "/products/view/1",
			matched:    true,
			params:     Params{{Name: "id", Value: "1"}},
		},
		{
			name:       "missing value without default",
			expression: "/products/view/:id",
			path:       "/products/view",
		},
		{
			name:         "constraint accepts",
			expression:   "/products/view/:id",
			requirements: map[string]string{"id": `\d+`},
			path:         "/products/view/1",
			matched:      true,
			params:       Params{{Name: "id", Value: "1"}},
		},
		{
			name:         "constraint rejects",
			expression:   "/products/view/:id",
			requirements: map[string]string{"id": `\d+`},
			path:         "/products/view/abc",
		},
		{
			name:       "default back-filled",
			expression: "/products/view/:id",
			defaults:   map[string]string{"id": "1"},
			path:       "/products/view",
			matched:    true,
			params:     Params{{Name: "id", Value: "1"}},
		},
		{
			name:       "explicit value wins over default",
			expression: "/products/view/:id",
			defaults:   map[string]string{"id": "1"},
			path:       "/products/view/5",
			matched:    true,
			params:     Params{{Name: "id", Value: "5"}},
		},
		{
			name:       "trailing default after supplied value",
			expression: "/products/view/:sku/:qty",
			defaults:   map[string]string{"qty": "10"},
			path:       "/products/view/product-1",
			matched:    true,
			params:     Params{{Name: "sku", Value: "product-1"}, {Name: "qty", Value: "10"}},
		},
		{
			name:       "gap without default is not filled",
			expression: "/products/view/:sku/:qty",
			defaults:   map[string]string{"qty": "10"},
			path:       "/products/view",
		},
		{
			name:       "all defaults from root",
			expression: "/:controller/:action",
			defaults:   map[string]string{"controller": "index", "action": "index"},
			path:       "/",
			matched:    true,
			params:     Params{{Name: "controller", Value: "index"}, {Name: "action", Value: "index"}},
		},
		{
			name:         "empty capture is valid",
			expression:   "/search/:q",
			requirements: map[string]string{"q": `[a-z]*`},
			path:         "/search/",
			matched:      true,
			params:       Params{{Name: "q", Value: ""}},
		},
		{
			name:       "partial match never counts",
			expression: "/products",
			path:       "/products/extra",
		},
		{
			name:       "empty path",
			expression: "/products/view/:id",
			path:       "",
		},
		{
			name:         "constraint with its own groups",
			expression:   "/archive/:year/:slug",
			requirements: map[string]string{"year": `(19|20)\d\d`, "slug": "slug"},
			path:         "/archive/2024/hello-world",
			matched:      true,
			params:       Params{{Name: "year", Value: "2024"}, {Name: "slug", Value: "hello-world"}},
		},
		{
			name:       "greedy unconstrained placeholders",
			expression: "/:a/:b",
			path:       "/x/y/z",
			matched:    true,
			params:     Params{{Name: "a", Value: "x/y"}, {Name: "b", Value: "z"}},
		},
		{
			name:       "duplicate name reports last occurrence",
			expression: "/:x/and/:x",
			path:       "/first/and/second",
			matched:    true,
			params:     Params{{Name: "x", Value: "second"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Compile(tt.expression, tt.requirements, tt.defaults)
			require.NoError(t, err)

			res := Match(r, tt.path)
			assert.Equal(t, tt.matched, res.Matched, "result: %s", spew.Sdump(res))
			if tt.matched {
				assert.Equal(t, tt.params, res.Params, "result: %s", spew.Sdump(res))
			} else {
				assert.Empty(t, res.Params)
			}
		})
	}
}

func TestMatchSegmentRequirement(t *testing.T) {
	r, err := Template{Expression: "/:a/:b"}.Compile(Options{DefaultRequirement: SegmentRequirement})
	require.NoError(t, err)

	assert.False(t, r.Match("/x/y/z").Matched)

	res := r.Match("/x/y")
	require.True(t, res.Matched)
	assert.Equal(t, "x", res.Params.ByName("a"))
	assert.Equal(t, "y", res.Params.ByName("b"))
}

func TestMatchIdempotent(t *testing.T) {
	r := MustCompile("/products/view/:sku/:qty", map[string]string{"qty": `\d+`}, map[string]string{"qty": "10"})

	for _, path := range []string{"/products/view/p1", "/products/view/p1/3", "/nope", ""} {
		first := r.Match(path)
		second := r.Match(path)
		assert.Equal(t, first, second, path)
	}
}

func TestMatchString(t *testing.T) {
	r := MustCompile("/products/view/:id", nil, map[string]string{"id": "1"})
	assert.True(t, r.MatchString("/products/view"))
	assert.True(t, r.MatchString("/products/view/9"))
	assert.False(t, r.MatchString("/products"))
}

func TestMatchConcurrent(t *testing.T) {
	r := MustCompile("/products/view/:sku/:qty", nil, map[string]string{"qty": "10"})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				res := r.Match("/products/view/p")
				assert.True(t, res.Matched)
				assert.Equal(t, "10", res.Params.ByName("qty"))
			}
		}()
	}
	wg.Wait()
}

func TestParams(t *testing.T) {
	ps := Params{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}

	v, ok := ps.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = ps.Get("c")
	assert.False(t, ok)
	assert.Equal(t, "", ps.ByName("c"))

	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, ps.Map())
	assert.Equal(t, []string{"a", "b"}, ps.Names())
}

// --- Benchmarks ---

func BenchmarkMatch(b *testing.B) {
	r := MustCompile("/products/view/:sku/:qty", map[string]string{"qty": `\d+`}, map[string]string{"qty": "10"})

	b.Run("explicit", func(b *testing.B) {
		for b.Loop() {
			r.Match("/products/view/p1/3")
		}
	})

	b.Run("defaulted", func(b *testing.B) {
		for b.Loop() {
			r.Match("/products/view/p1")
		}
	})
}
