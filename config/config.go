// Package config loads route tables from YAML or TOML files and registers
// them on a dispatch.Dispatcher.
//
// A route file looks like:
//
//	dispatch:
//	  base_path: /shop
//	  default_method: index
//	routes:
//	  - name: product
//	    path: /products/view/:id
//	    controller: products
//	    method: view
//	    requirements:
//	      id: '\d+'
//	    defaults:
//	      id: 1
//
// Routes are registered in file order, which is also their match order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/actiondispatch/dispatch"
	"github.com/vitalvas/actiondispatch/route"
)

// EnvBasePath overrides DispatchConfig.BasePath when set.
const EnvBasePath = "ACTIONDISPATCH_BASE_PATH"

// Format identifies a route file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for file extensions other than .yaml, .yml
// and .toml.
var ErrUnknownFormat = errors.New("config: unknown route file format")

// File is the decoded content of a route file.
type File struct {
	Dispatch DispatchConfig `yaml:"dispatch" toml:"dispatch"`
	Routes   []Route        `yaml:"routes" toml:"routes"`
}

// DispatchConfig holds dispatcher-wide settings.
type DispatchConfig struct {
	BasePath           string `yaml:"base_path" toml:"base_path"`
	DefaultMethod      string `yaml:"default_method" toml:"default_method"`
	DefaultRequirement string `yaml:"default_requirement" toml:"default_requirement"`
}

// Route is one route definition.
type Route struct {
	Name         string            `yaml:"name" toml:"name"`
	Path         string            `yaml:"path" toml:"path"`
	Controller   string            `yaml:"controller" toml:"controller"`
	Method       string            `yaml:"method" toml:"method"`
	Requirements map[string]string `yaml:"requirements" toml:"requirements"`
	Defaults     map[string]Value  `yaml:"defaults" toml:"defaults"`
}

// Value is a default placeholder value. Numbers and booleans are accepted
// and kept as text, so `qty = 10` and `qty = "10"` mean the same.
type Value string

// UnmarshalTOML implements toml.Unmarshaler.
func (v *Value) UnmarshalTOML(data any) error {
	switch data := data.(type) {
	case string:
		*v = Value(data)
	case int64:
		*v = Value(strconv.FormatInt(data, 10))
	case float64:
		*v = Value(strconv.FormatFloat(data, 'f', -1, 64))
	case bool:
		*v = Value(strconv.FormatBool(data))
	default:
		return fmt.Errorf("default must be a string, number or boolean, got %T", data)
	}
	return nil
}

// Template returns the route template of r.
func (r Route) Template() route.Template {
	var defaults map[string]string
	if len(r.Defaults) > 0 {
		defaults = make(map[string]string, len(r.Defaults))
		for name, v := range r.Defaults {
			defaults[name] = string(v)
		}
	}

	return route.Template{
		Expression:   r.Path,
		Requirements: r.Requirements,
		Defaults:     defaults,
	}
}

// Target returns the dispatch target of r.
func (r Route) Target() dispatch.Target {
	return dispatch.Target{Controller: r.Controller, Method: r.Method}
}

// FormatOf returns the format implied by the file extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Load reads and validates the route file at path.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a route file. Unknown keys are rejected.
func Parse(data []byte, format Format) (*File, error) {
	var f File

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown keys %v", undecoded)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that every route has a path and a controller and that
// route names are unique.
func (f *File) Validate() error {
	names := make(map[string]int, len(f.Routes))
	for i, r := range f.Routes {
		if r.Path == "" {
			return fmt.Errorf("route %d: missing path", i)
		}
		if r.Controller == "" {
			return fmt.Errorf("route %d (%s): missing controller", i, r.Path)
		}
		if r.Name == "" {
			continue
		}
		if prev, ok := names[r.Name]; ok {
			return fmt.Errorf("route %d: name %q already used by route %d", i, r.Name, prev)
		}
		names[r.Name] = i
	}
	return nil
}

// ApplyEnv applies environment variable overrides.
func (f *File) ApplyEnv() {
	if v := os.Getenv(EnvBasePath); v != "" {
		f.Dispatch.BasePath = v
	}
}

// Apply configures d and registers every route in file order. It stops at
// the first route that fails to compile.
func (f *File) Apply(d *dispatch.Dispatcher) error {
	if f.Dispatch.BasePath != "" {
		if err := d.BasePath(f.Dispatch.BasePath); err != nil {
			return fmt.Errorf("config: base path: %w", err)
		}
	}
	if f.Dispatch.DefaultMethod != "" {
		if err := d.DefaultMethod(f.Dispatch.DefaultMethod); err != nil {
			return fmt.Errorf("config: default method: %w", err)
		}
	}
	if f.Dispatch.DefaultRequirement != "" {
		if err := d.DefaultRequirement(f.Dispatch.DefaultRequirement); err != nil {
			return fmt.Errorf("config: default requirement: %w", err)
		}
	}

	for i, r := range f.Routes {
		if _, err := d.Handle(r.Name, r.Template(), r.Target()); err != nil {
			return fmt.Errorf("config: route %d (%s): %w", i, r.Path, err)
		}
	}
	return nil
}
