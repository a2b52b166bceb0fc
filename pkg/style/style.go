// Package style provides an optional terminal styling capability for
// rendering layers that read the invocation Context. The capability is
// resolved once at plugin-install time; when styling is unavailable the
// explicit no-op variant is attached instead of a nullable probe result.
package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/clipware/clip"
)

// Styler decorates help and error text. Implementations never mutate
// parsing state; they only transform strings.
type Styler interface {
	Heading(s string) string
	Emphasis(s string) string
	Error(s string) string
	Success(s string) string
	Muted(s string) string
}

// ContextKey is where the plugin attaches the resolved Styler on the
// Context.
const ContextKey = "clip.styler"

type renderer struct {
	heading  lipgloss.Style
	emphasis lipgloss.Style
	failure  lipgloss.Style
	success  lipgloss.Style
	muted    lipgloss.Style
}

func (r renderer) Heading(s string) string  { return r.heading.Render(s) }
func (r renderer) Emphasis(s string) string { return r.emphasis.Render(s) }
func (r renderer) Error(s string) string    { return r.failure.Render(s) }
func (r renderer) Success(s string) string  { return r.success.Render(s) }
func (r renderer) Muted(s string) string    { return r.muted.Render(s) }

// New returns the lipgloss-backed Styler.
func New() Styler {
	return renderer{
		heading:  lipgloss.NewStyle().Bold(true),
		emphasis: lipgloss.NewStyle().Underline(true),
		failure:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		muted:    lipgloss.NewStyle().Faint(true),
	}
}

type unavailable struct{}

func (unavailable) Heading(s string) string  { return s }
func (unavailable) Emphasis(s string) string { return s }
func (unavailable) Error(s string) string    { return s }
func (unavailable) Success(s string) string  { return s }
func (unavailable) Muted(s string) string    { return s }

// Unavailable returns the pass-through Styler used when styling is disabled
// or the terminal cannot render it.
func Unavailable() Styler { return unavailable{} }

// Resolve picks the concrete Styler once, at install time.
func Resolve(enabled bool) Styler {
	if enabled {
		return New()
	}
	return Unavailable()
}

// Plugin attaches a Styler to every invocation Context under ContextKey.
type Plugin struct {
	// Enabled selects the lipgloss renderer; disabled installs the
	// pass-through variant.
	Enabled bool

	styler Styler
}

func (p *Plugin) Name() string    { return "clip.style" }
func (p *Plugin) Version() string { return "1.0.0" }

// Install resolves the capability exactly once.
func (p *Plugin) Install(*clip.Kernel) error {
	p.styler = Resolve(p.Enabled)
	return nil
}

// OnInit attaches the resolved Styler to the fresh Context.
func (p *Plugin) OnInit(c *clip.Context) error {
	c.Set(ContextKey, p.styler)
	return nil
}

// FromContext returns the attached Styler, or the pass-through variant when
// the plugin is not registered.
func FromContext(c *clip.Context) Styler {
	if v, ok := c.Value(ContextKey); ok {
		if s, ok := v.(Styler); ok {
			return s
		}
	}
	return Unavailable()
}
