// Package config layers a plain key/value file over bound options. The
// merge happens above the binder, during plugin initialization, and only
// over options the user did not supply explicitly — defaults lose to the
// file, the command line beats both.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/clipware/clip"
)

// Load reads a YAML file into a flat key/value map. Nested structure is the
// caller's problem; the engine consumes only top-level keys.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return values, nil
}

// Plugin merges a config file into the bound options of every invocation.
type Plugin struct {
	// Path locates the YAML file.
	Path string

	// Optional makes a missing file a no-op instead of an install error.
	Optional bool

	values map[string]any
}

func (p *Plugin) Name() string    { return "clip.config" }
func (p *Plugin) Version() string { return "1.0.0" }

// Install loads the file once, at build time.
func (p *Plugin) Install(*clip.Kernel) error {
	values, err := Load(p.Path)
	if err != nil {
		if p.Optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	p.values = values
	return nil
}

// OnInit merges the loaded values into the Context's options. A key only
// applies when the matching option was declared and not explicitly supplied
// on the command line.
func (p *Plugin) OnInit(c *clip.Context) error {
	for key, value := range p.values {
		if !optionDeclared(c.Command, key) || c.OptionSupplied(key) {
			continue
		}
		c.Options[key] = normalize(value)
	}
	return nil
}

func optionDeclared(cmd *clip.Command, name string) bool {
	for cur := cmd; cur != nil; cur = cur.Parent() {
		for _, opt := range cur.Options() {
			if opt.Name == name {
				return true
			}
		}
	}
	return false
}

// normalize lines YAML scalar types up with the binder's: every number
// binds as float64.
func normalize(value any) any {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case []any:
		elems := make([]string, 0, len(v))
		for _, e := range v {
			elems = append(elems, fmt.Sprintf("%v", e))
		}
		return elems
	default:
		return value
	}
}
