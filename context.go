package clip

import (
	"fmt"
	"io"
	"log/slog"
)

// Context is the per-invocation bag passed through the pipeline: the matched
// command, bound values, injected I/O streams, and fields attached by
// plugins. It is created before the command:before emission and discarded
// after the action completes; instances are never reused.
//
// Listeners and middleware run sequentially, so downstream code may rely on
// upstream mutations (an auth middleware setting a user field a later
// middleware reads).
type Context struct {
	App     *App
	Command *Command
	Route   *RouteResult

	// Args and Options hold the bound values, defaults included.
	Args    map[string]any
	Options map[string]any

	// Standard I/O streams, injected by the runner so the engine stays
	// embeddable and testable.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	bind      *BindResult
	values    map[string]any
	logger    *slog.Logger
	validated bool
}

// Set attaches a plugin-provided field under key.
func (c *Context) Set(key string, value any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[key] = value
}

// Value retrieves a plugin-attached field.
func (c *Context) Value(key string) (any, bool) {
	value, ok := c.values[key]
	return value, ok
}

// Bind exposes the binder's raw result for plugins that inspect parse errors
// or unknown options directly.
func (c *Context) Bind() *BindResult { return c.bind }

// OptionSupplied reports whether the named option was explicitly present on
// the command line, as opposed to defaulted. Config layering keys off this.
func (c *Context) OptionSupplied(name string) bool {
	return c.bind != nil && c.bind.Supplied[name]
}

// SetLogger attaches the invocation logger.
func (c *Context) SetLogger(logger *slog.Logger) { c.logger = logger }

// Logger returns the invocation logger, falling back to slog.Default.
func (c *Context) Logger() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

// GetOption retrieves a bound option by name, with type inference:
//
//	port := clip.GetOption[float64](c, "port")
//	verbose := clip.GetOption[bool](c, "verbose")
//	tags := clip.GetOption[[]string](c, "tags")
//
// Numbers bind as float64. A missing name or a type mismatch panics: both
// mean the declaration and the access disagree, which is a programming
// error better surfaced loudly than papered over.
func GetOption[T any](c *Context, name string) T {
	value, ok := c.Options[name]
	if !ok {
		panic(fmt.Sprintf("internal error: option %q not bound on command %q", name, c.Command.name))
	}
	v, ok := value.(T)
	if !ok {
		panic(fmt.Sprintf("internal error: type mismatch for option %q: bound %T, requested %T", name, value, *new(T)))
	}
	return v
}

// GetArg retrieves a bound positional argument by name, with the same
// contract as GetOption.
func GetArg[T any](c *Context, name string) T {
	value, ok := c.Args[name]
	if !ok {
		panic(fmt.Sprintf("internal error: argument %q not bound on command %q", name, c.Command.name))
	}
	v, ok := value.(T)
	if !ok {
		panic(fmt.Sprintf("internal error: type mismatch for argument %q: bound %T, requested %T", name, value, *new(T)))
	}
	return v
}
