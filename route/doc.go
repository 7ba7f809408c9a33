// Package route compiles path expressions with named placeholders into
// anchored regular expressions and matches request paths against them.
//
// # Expressions
//
// Placeholders are written as :name inside a '/'-delimited path:
//
//	r, err := route.Compile("/products/view/:id", nil, nil)
//	res := r.Match("/products/view/1") // Matched, Params{{"id", "1"}}
//
// Literal text between placeholders is matched literally.
//
// # Requirements
//
// Each placeholder may be constrained by a regex fragment. Placeholders
// without a requirement use AnyRequirement (".*"), which is greedy and may
// span '/'. Set Options.DefaultRequirement to SegmentRequirement to restrict
// unconstrained placeholders to one segment instead.
//
//	r, err := route.Compile("/products/view/:id", map[string]string{"id": `\d+`}, nil)
//
// A requirement may also be a shorthand name:
//
//	uuid     - RFC 4122 UUID
//	int      - unsigned integer
//	float    - decimal number
//	slug     - URL-safe slug
//	alpha    - alphabetic characters
//	alphanum - alphanumeric characters
//	date     - YYYY-MM-DD
//	hex      - hexadecimal characters
//	domain   - RFC 1123 hostname
//
// # Defaults
//
// Defaults fill a contiguous run of omitted trailing placeholders before
// matching:
//
//	r, err := route.Compile("/products/view/:sku/:qty", nil, map[string]string{"qty": "10"})
//	res := r.Match("/products/view/product-1") // sku=product-1, qty=10
//
// A CompiledRoute is immutable and may be shared by concurrent requests.
package route
