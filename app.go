package clip

import (
	"context"
	"fmt"
	"io"
	"os"
)

// App is one command-line application instance. Every registry an App
// depends on — the command tree, the kernel's listener map, middleware and
// plugin lists — is owned by the instance, never shared module-level state,
// so multiple instances coexist safely within a process (notably under
// test).
//
// The tree, declarations, and listener registry are built up front and are
// read-only once Run starts.
type App struct {
	name        string
	version     string
	description string

	root       *Command
	router     *Router
	kernel     *Kernel
	middleware []Middleware
	plugins    []Plugin

	strict     bool
	installed  bool
	installErr error
}

// New creates an application with an owned root command and kernel. The
// built-in help, version, and validation plugins are registered first, in
// that order, so reserved options are recognized ahead of ordinary option
// validation.
func New(name, version string) *App {
	app := &App{
		name:    name,
		version: version,
		root:    NewCommand(name),
		kernel:  NewKernel(),
		strict:  true,
	}
	app.router = NewRouter(app.root)
	app.plugins = []Plugin{helpPlugin{}, versionPlugin{}, validationPlugin{}}
	return app
}

// Name returns the application name.
func (a *App) Name() string { return a.name }

// Version returns the application version string.
func (a *App) Version() string { return a.version }

// Describe sets the application description shown in help output.
func (a *App) Describe(description string) *App {
	a.description = description
	a.root.Describe(description)
	return a
}

// Root returns the root command for declaring app-level arguments and
// options.
func (a *App) Root() *Command { return a.root }

// Command creates and registers a top-level command, returning it for
// chaining.
func (a *App) Command(name string) *Command {
	return a.root.AddCommand(name)
}

// Use appends global middleware, composed before any command-scoped
// middleware.
func (a *App) Use(mw ...Middleware) *App {
	a.middleware = append(a.middleware, mw...)
	return a
}

// AddPlugin registers a plugin. Install runs once, at the first Run, in
// registration order after the built-ins.
func (a *App) AddPlugin(p Plugin) *App {
	a.plugins = append(a.plugins, p)
	return a
}

// Kernel exposes the event bus, e.g. for actions emitting custom events.
func (a *App) Kernel() *Kernel { return a.kernel }

// Router exposes the router for read-only collaborators such as completion
// generators.
func (a *App) Router() *Router { return a.router }

// Lenient disables strict binding: unmatched option and flag tokens pass
// through to the unconsumed tail instead of failing validation.
func (a *App) Lenient() *App {
	a.strict = false
	return a
}

// RunOptions injects the standard streams for a run. Nil fields fall back to
// the os defaults.
type RunOptions struct {
	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

func checkAndSetRunOptions(opt *RunOptions) *RunOptions {
	if opt == nil {
		opt = &RunOptions{}
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	return opt
}

// install validates the tree and runs every plugin's Install exactly once.
func (a *App) install() error {
	if a.installed {
		return a.installErr
	}
	a.installed = true
	if err := validateTree(a.root, nil); err != nil {
		a.installErr = fmt.Errorf("invalid command tree: %w", err)
		return a.installErr
	}
	for _, p := range a.plugins {
		if err := p.Install(a.kernel); err != nil {
			a.installErr = fmt.Errorf("install plugin %q: %w", p.Name(), err)
			return a.installErr
		}
	}
	return nil
}

// Run drives one invocation end to end: route, bind, build the Context, run
// plugin initializers, emit command:before, run the middleware-wrapped
// action, emit command:after.
//
// Run never terminates the process. It returns nil on success, an
// ExitRequest when help or version output was produced, and a typed error
// for parse failures, validation failures, and unknown commands; ExitCode
// maps all three for the caller.
func (a *App) Run(ctx context.Context, argv []string, options *RunOptions) error {
	options = checkAndSetRunOptions(options)
	if err := a.install(); err != nil {
		return err
	}

	route, err := a.router.Route(argv)
	if err != nil {
		return err
	}
	result := Bind(route.Tokens, route.Command.arguments, route.Command.optionScope(), a.strict)

	c := &Context{
		App:     a,
		Command: route.Command,
		Route:   route,
		Args:    result.Args,
		Options: result.Options,
		Stdin:   options.Stdin,
		Stdout:  options.Stdout,
		Stderr:  options.Stderr,
		bind:    result,
	}

	for _, p := range a.plugins {
		if init, ok := p.(Initializer); ok {
			if err := init.OnInit(c); err != nil {
				return fmt.Errorf("plugin %q: %w", p.Name(), err)
			}
		}
	}

	if err := a.kernel.Emit(ctx, BeforeEvent{Context: c}); err != nil {
		return err
	}

	if route.Command.action == nil {
		if err := a.kernel.Emit(ctx, HelpEvent{Context: c, Command: route.Command}); err != nil {
			return err
		}
		return ErrHelpRequested
	}

	combined := make([]Middleware, 0, len(a.middleware)+len(route.Command.middleware))
	combined = append(combined, a.middleware...)
	combined = append(combined, route.Command.middleware...)

	if err := composeChain(combined, c, route.Command.action)(ctx); err != nil {
		return err
	}
	return a.kernel.Emit(ctx, AfterEvent{Context: c})
}

// hasReservedOption reports whether the routed tail carries one of the
// reserved option spellings, e.g. help/h or version/V. Reserved options are
// recognized lexically, before binding outcomes matter.
func hasReservedOption(route *RouteResult, names ...string) bool {
	for _, tok := range route.Tokens {
		if tok.Type != TokenOption {
			continue
		}
		for _, name := range names {
			if tok.Value == name {
				return true
			}
		}
	}
	return false
}

// helpPlugin intercepts -h/--help on command:before, emits the help event
// exactly once, and requests a help exit before validation or the action
// can run. It also installs the default usage renderer.
type helpPlugin struct{}

func (helpPlugin) Name() string    { return "clip.help" }
func (helpPlugin) Version() string { return "1.0.0" }

func (helpPlugin) Install(k *Kernel) error {
	k.Subscribe(EventCommandBefore, func(ctx context.Context, ev Event) error {
		c := ev.(BeforeEvent).Context
		if !hasReservedOption(c.Route, "help", "h") {
			return nil
		}
		if err := c.App.kernel.Emit(ctx, HelpEvent{Context: c, Command: c.Command}); err != nil {
			return err
		}
		return ErrHelpRequested
	})
	k.Subscribe(EventHelp, func(ctx context.Context, ev Event) error {
		help := ev.(HelpEvent)
		fmt.Fprintln(help.Context.Stdout, Usage(help.Command))
		return nil
	})
	return nil
}

// versionPlugin intercepts -V/--version the same way and installs the
// default version renderer.
type versionPlugin struct{}

func (versionPlugin) Name() string    { return "clip.version" }
func (versionPlugin) Version() string { return "1.0.0" }

func (versionPlugin) Install(k *Kernel) error {
	k.Subscribe(EventCommandBefore, func(ctx context.Context, ev Event) error {
		c := ev.(BeforeEvent).Context
		if !hasReservedOption(c.Route, "version", "V") {
			return nil
		}
		if err := c.App.kernel.Emit(ctx, VersionEvent{Context: c, App: c.App}); err != nil {
			return err
		}
		return ErrVersionRequested
	})
	k.Subscribe(EventVersion, func(ctx context.Context, ev Event) error {
		version := ev.(VersionEvent)
		fmt.Fprintf(version.Context.Stdout, "%s %s\n", version.App.name, version.App.version)
		return nil
	})
	return nil
}

// validationPlugin aggregates the binder's recorded errors into a single
// ValidationError on command:before. It subscribes after the help and
// version plugins, so an exit request wins over validation, and it runs at
// most once per invocation.
type validationPlugin struct{}

func (validationPlugin) Name() string    { return "clip.validation" }
func (validationPlugin) Version() string { return "1.0.0" }

func (validationPlugin) Install(k *Kernel) error {
	k.Subscribe(EventCommandBefore, func(ctx context.Context, ev Event) error {
		c := ev.(BeforeEvent).Context
		if c.validated {
			return nil
		}
		c.validated = true
		var issues []string
		for _, name := range c.bind.Unknown {
			issues = append(issues, (&UnknownOptionError{Name: name}).Error())
		}
		for _, bindErr := range c.bind.Errors {
			issues = append(issues, bindErr.Error())
		}
		if len(issues) > 0 {
			return &ValidationError{Issues: issues}
		}
		return nil
	})
	return nil
}
