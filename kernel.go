package clip

import "context"

// EventName identifies a kernel event. Plugins may define their own names
// beyond the built-in lifecycle set.
type EventName string

const (
	// EventCommandBefore fires once the Context is ready, before middleware.
	EventCommandBefore EventName = "command:before"
	// EventCommandAfter fires after the action completed without error.
	EventCommandAfter EventName = "command:after"
	// EventHelp fires when help output was requested.
	EventHelp EventName = "help"
	// EventVersion fires when version output was requested.
	EventVersion EventName = "version"
)

// Event is a closed set of lifecycle payloads, one variant per event name,
// each carrying exactly the fields that event needs. Plugin-defined events
// use CustomEvent.
type Event interface {
	Name() EventName
	event()
}

// BeforeEvent is the command:before payload.
type BeforeEvent struct {
	Context *Context
}

func (BeforeEvent) Name() EventName { return EventCommandBefore }
func (BeforeEvent) event()          {}

// AfterEvent is the command:after payload.
type AfterEvent struct {
	Context *Context
}

func (AfterEvent) Name() EventName { return EventCommandAfter }
func (AfterEvent) event()          {}

// HelpEvent is the help payload; Command is the node whose help was
// requested.
type HelpEvent struct {
	Context *Context
	Command *Command
}

func (HelpEvent) Name() EventName { return EventHelp }
func (HelpEvent) event()          {}

// VersionEvent is the version payload.
type VersionEvent struct {
	Context *Context
	App     *App
}

func (VersionEvent) Name() EventName { return EventVersion }
func (VersionEvent) event()          {}

// CustomEvent carries a plugin-defined event with an arbitrary payload.
type CustomEvent struct {
	Event   EventName
	Context *Context
	Payload any
}

func (e CustomEvent) Name() EventName { return e.Event }
func (CustomEvent) event()            {}

// Listener handles one event emission. Listeners may block on I/O; the
// kernel never runs them concurrently.
type Listener func(ctx context.Context, ev Event) error

// Kernel is an application-instance-scoped publish/subscribe bus. Each App
// owns its own kernel, so multiple CLI instances coexist in one process.
// The listener registry is mutated only during the build phase.
type Kernel struct {
	listeners map[EventName][]Listener
}

// NewKernel returns an empty kernel.
func NewKernel() *Kernel {
	return &Kernel{listeners: make(map[EventName][]Listener)}
}

// Subscribe registers a listener for the named event. Listeners fire in
// subscription order.
func (k *Kernel) Subscribe(name EventName, fn Listener) {
	k.listeners[name] = append(k.listeners[name], fn)
}

// Emit invokes every listener for the event, strictly in subscription order
// and strictly sequentially, so later listeners observe mutations made by
// earlier ones. The first listener error ends the emission; an ExitRequest
// from a help/version/validation listener travels this path. Emit does not
// preempt work a listener already started before returning the error.
func (k *Kernel) Emit(ctx context.Context, ev Event) error {
	for _, fn := range k.listeners[ev.Name()] {
		if err := fn(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// Plugin is an install-time extension. Install runs once per plugin at build
// time, in registration order, and subscribes kernel listeners.
type Plugin interface {
	Name() string
	Version() string
	Install(k *Kernel) error
}

// Initializer is an optional plugin capability: OnInit runs per invocation
// with the fresh Context, before command:before, in plugin registration
// order. Plugins attach Context fields or layer option values here.
type Initializer interface {
	OnInit(c *Context) error
}
