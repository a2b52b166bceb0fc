package clip

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ValueType declares how a bound value is coerced.
type ValueType int

const (
	// StringType binds the token text unchanged.
	StringType ValueType = iota
	// NumberType binds a float64 and rejects non-numeric text.
	NumberType
	// BooleanType is presence-only unless explicitly paired with a true/false
	// literal.
	BooleanType
	// ArrayType accumulates an ordered []string across repeated occurrences
	// or a greedy trailing tail.
	ArrayType
)

func (t ValueType) String() string {
	switch t {
	case StringType:
		return "string"
	case NumberType:
		return "number"
	case BooleanType:
		return "boolean"
	case ArrayType:
		return "array"
	default:
		return "unknown"
	}
}

// Argument declares a positional argument. Declaration order is binding
// order. Definitions are built once and never mutated during the run phase.
type Argument struct {
	// Name identifies the bound value in the context's args map.
	Name string

	Description string
	Required    bool
	Type        ValueType

	// Default applies at bind time, only when no token was supplied.
	Default any

	// Choices, when non-empty, constrains the bound value (every element for
	// arrays) to this set.
	Choices []string

	// Validate, when set, runs against the coerced value after choice checks.
	Validate func(value any) error
}

// Option declares a named option. Short, when set, is a single-character
// alias usable as -x or in a combined run of boolean shorts.
type Option struct {
	Name        string
	Short       string
	Description string
	Required    bool
	Type        ValueType
	Default     any
	Choices     []string
	Validate    func(value any) error
}

// ActionFunc is a command's execution logic, invoked at the center of the
// middleware chain with the per-invocation context.
type ActionFunc func(ctx context.Context, c *Context) error

// Command is one node of the command tree. A command is owned exclusively by
// its parent; the back-reference used for ascent during routing and usage
// rendering is non-owning. All builder methods return the receiver for
// chaining.
type Command struct {
	name        string
	description string
	aliases     []string
	arguments   []*Argument
	options     []*Option
	children    *Registry
	middleware  []Middleware
	action      ActionFunc
	parent      *Command
}

// NewCommand creates a detached command, typically the root of a tree. Child
// commands are created with AddCommand so they register on creation.
func NewCommand(name string) *Command {
	return &Command{
		name:     name,
		children: NewRegistry(),
	}
}

// Name returns the command's single-word name.
func (c *Command) Name() string { return c.name }

// Description returns the short help text set with Describe.
func (c *Command) Description() string { return c.description }

// Aliases returns the alternate names registered for this command.
func (c *Command) Aliases() []string { return c.aliases }

// Arguments returns the positional declarations in binding order.
func (c *Command) Arguments() []*Argument { return c.arguments }

// Options returns the option declarations for this command only; see
// optionScope for the inherited set used at bind time.
func (c *Command) Options() []*Option { return c.options }

// Parent returns the owning command, or nil for the root.
func (c *Command) Parent() *Command { return c.parent }

// Commands returns the child registry for read-only traversal, e.g. by a
// completion generator.
func (c *Command) Commands() *Registry { return c.children }

// Path returns the ordered command names from the root down to this command.
func (c *Command) Path() []string {
	var names []string
	for cur := c; cur != nil; cur = cur.parent {
		names = append([]string{cur.name}, names...)
	}
	return names
}

// Describe sets the short help text.
func (c *Command) Describe(description string) *Command {
	c.description = description
	return c
}

// Alias adds alternate names. Alias collisions between siblings resolve to
// the first-registered command at lookup time.
func (c *Command) Alias(names ...string) *Command {
	c.aliases = append(c.aliases, names...)
	return c
}

// AddArgument appends a positional declaration.
func (c *Command) AddArgument(arg *Argument) *Command {
	c.arguments = append(c.arguments, arg)
	return c
}

// AddOption appends an option declaration.
func (c *Command) AddOption(opt *Option) *Command {
	c.options = append(c.options, opt)
	return c
}

// AddCommand creates a child command, registers it, and returns the child
// for chaining. Registering a name twice replaces the earlier entry.
func (c *Command) AddCommand(name string) *Command {
	child := NewCommand(name)
	child.parent = c
	c.children.Register(child)
	return child
}

// Use appends command-scoped middleware, composed after the application's
// global middleware.
func (c *Command) Use(mw ...Middleware) *Command {
	c.middleware = append(c.middleware, mw...)
	return c
}

// Action sets the command's execution logic. A routed command without an
// action shows its help instead.
func (c *Command) Action(fn ActionFunc) *Command {
	c.action = fn
	return c
}

// optionScope collects the option declarations visible to this command: its
// own first, then each ancestor's, skipping shadowed names. Ancestor options
// behave as globals the way parent flag sets do in nested CLIs.
func (c *Command) optionScope() []*Option {
	var opts []*Option
	seen := make(map[string]bool)
	for cur := c; cur != nil; cur = cur.parent {
		for _, opt := range cur.options {
			if seen[opt.Name] {
				continue
			}
			seen[opt.Name] = true
			opts = append(opts, opt)
		}
	}
	return opts
}

// validateTree checks structural invariants over the whole tree before the
// run phase starts.
func validateTree(c *Command, path []string) error {
	if c.name == "" {
		if len(path) == 0 {
			return errors.New("root command has no name")
		}
		return fmt.Errorf("subcommand in path %q has no name", strings.Join(path, " "))
	}
	if strings.Contains(c.name, " ") {
		return fmt.Errorf("command name %q contains spaces", c.name)
	}
	current := append(path, c.name)
	for _, sub := range c.children.Commands() {
		if err := validateTree(sub, current); err != nil {
			return err
		}
	}
	return nil
}
