package clip

import (
	"slices"

	"github.com/clipware/clip/pkg/suggest"
)

// Registry holds the commands registered at one level of the tree, keyed by
// name, preserving registration order for alias tie-breaks and fuzzy
// scoring.
type Registry struct {
	order  []string
	byName map[string]*Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Command)}
}

// Register adds cmd under its name. Re-registering a name replaces the prior
// entry in place: the size is unchanged and the original registration slot
// keeps its position.
func (r *Registry) Register(cmd *Command) {
	if _, ok := r.byName[cmd.name]; !ok {
		r.order = append(r.order, cmd.name)
	}
	r.byName[cmd.name] = cmd
}

// Unregister removes the named command, reporting whether it was present.
func (r *Registry) Unregister(name string) bool {
	if _, ok := r.byName[name]; !ok {
		return false
	}
	delete(r.byName, name)
	if i := slices.Index(r.order, name); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return true
}

// Len returns the number of registered commands.
func (r *Registry) Len() int { return len(r.byName) }

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []*Command {
	cmds := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		cmds = append(cmds, r.byName[name])
	}
	return cmds
}

// Find resolves a name or alias. An exact name match always outranks an
// alias match; among alias matches the first-registered command wins.
func (r *Registry) Find(nameOrAlias string) *Command {
	if cmd, ok := r.byName[nameOrAlias]; ok {
		return cmd
	}
	for _, name := range r.order {
		if slices.Contains(r.byName[name].aliases, nameOrAlias) {
			return r.byName[name]
		}
	}
	return nil
}

// FindFuzzy returns the registered command whose name scores highest against
// input, provided the score reaches threshold. Ties resolve to the earlier
// registration.
func (r *Registry) FindFuzzy(input string, threshold float64) *Command {
	var best *Command
	bestScore := 0.0
	for _, name := range r.order {
		score := suggest.Similarity(input, name)
		if score >= threshold && score > bestScore {
			best = r.byName[name]
			bestScore = score
		}
	}
	return best
}
