package clip

import (
	"strings"

	"github.com/clipware/clip/pkg/suggest"
)

// RouteResult is the outcome of resolving one argument vector against the
// command tree. It is invocation-scoped and never cached.
type RouteResult struct {
	// Command is the deepest matched command; the root when nothing matched.
	Command *Command

	// Path is the ordered list of matched names, excluding the root.
	Path []string

	// Tokens is the tokenized remainder after the matched path.
	Tokens []Token

	// Argv is the original argument vector, untouched.
	Argv []string
}

// Router resolves command paths against a tree and offers fuzzy corrections
// on a miss.
type Router struct {
	root *Command
}

// NewRouter returns a router over the given tree.
func NewRouter(root *Command) *Router {
	return &Router{root: root}
}

// Route walks the argument vector from the root: each leading element that
// names a child (by exact name or alias) descends one level. The walk stops
// at the first dash-prefixed element, so options, the -- separator, and
// negative numbers are never treated as path segments.
//
// A bare word that names no child is an UnknownCommandError only when the
// current command has children and declares no positional arguments;
// otherwise it flows through to the binder as a positional.
func (r *Router) Route(argv []string) (*RouteResult, error) {
	current := r.root
	var path []string
	idx := 0
	for idx < len(argv) {
		arg := argv[idx]
		if strings.HasPrefix(arg, "-") {
			break
		}
		child := current.children.Find(arg)
		if child == nil {
			if current.children.Len() > 0 && len(current.arguments) == 0 {
				routeErr := &UnknownCommandError{Name: arg}
				if s := r.Suggest(arg); s != nil {
					routeErr.Suggestion = s.name
				}
				return nil, routeErr
			}
			break
		}
		current = child
		path = append(path, child.name)
		idx++
	}
	return &RouteResult{
		Command: current,
		Path:    path,
		Tokens:  Tokenize(argv[idx:]),
		Argv:    argv,
	}, nil
}

// Suggest runs a fuzzy lookup over the flattened tree and returns the
// closest command, or nil when nothing clears the default threshold.
func (r *Router) Suggest(input string) *Command {
	var best *Command
	bestScore := 0.0
	var walk func(c *Command)
	walk = func(c *Command) {
		for _, sub := range c.children.Commands() {
			score := suggest.Similarity(input, sub.name)
			if score >= suggest.DefaultThreshold && score > bestScore {
				best = sub
				bestScore = score
			}
			walk(sub)
		}
	}
	walk(r.root)
	return best
}
