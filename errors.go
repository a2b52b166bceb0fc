package clip

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownOptionError records an option or flag that no declaration matches.
// The binder reports these only under strict mode.
type UnknownOptionError struct {
	Name string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option %q", optionDisplayName(e.Name))
}

// MissingArgumentError records a required argument or option that received no
// token and has no default.
type MissingArgumentError struct {
	Name string

	// IsOption distinguishes a missing required option from a missing
	// positional argument.
	IsOption bool
}

func (e *MissingArgumentError) Error() string {
	if e.IsOption {
		return fmt.Sprintf("missing required option %q", optionDisplayName(e.Name))
	}
	return fmt.Sprintf("missing required argument %q", e.Name)
}

// InvalidOptionError records a type coercion failure, a choice-constraint
// violation, or a custom validator rejection. Name may refer to a positional
// argument as well as an option.
type InvalidOptionError struct {
	Name   string
	Value  string
	Reason string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid value %q for %q: %s", e.Value, e.Name, e.Reason)
}

// ValidationError aggregates every parse error from a single invocation, one
// message per line. The validation plugin raises it at most once, before the
// action runs.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Issues, "\n")
}

// UnknownCommandError is a router miss: a bare word that names no child of
// the current command. Suggestion, when non-empty, is the closest registered
// command name by fuzzy lookup.
type UnknownCommandError struct {
	Name       string
	Suggestion string
}

func (e *UnknownCommandError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown command %q. Did you mean %q?", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown command %q", e.Name)
}

// ExitKind identifies which intentional early exit was requested.
type ExitKind int

const (
	ExitHelp ExitKind = iota + 1
	ExitVersion
)

func (k ExitKind) String() string {
	switch k {
	case ExitHelp:
		return "help requested"
	case ExitVersion:
		return "version requested"
	default:
		return "exit requested"
	}
}

// ExitRequest is a pure control-flow signal: the user asked for help or the
// version, the corresponding event has already fired, and the runner should
// treat the invocation as a success. It travels the error channel so that it
// unwinds the pipeline, but it is not a failure.
type ExitRequest struct {
	Kind ExitKind
}

func (e *ExitRequest) Error() string {
	return e.Kind.String()
}

// Sentinel exit requests raised by the built-in help and version plugins.
var (
	ErrHelpRequested    = &ExitRequest{Kind: ExitHelp}
	ErrVersionRequested = &ExitRequest{Kind: ExitVersion}
)

// IsExitRequest reports whether err is an intentional early exit rather than
// a genuine failure.
func IsExitRequest(err error) bool {
	var req *ExitRequest
	return errors.As(err, &req)
}

// ExitCode maps a Run outcome to a process exit code for the external
// runner: nil and exit requests are success, everything else is failure. The
// engine itself never terminates the process.
func ExitCode(err error) int {
	if err == nil || IsExitRequest(err) {
		return 0
	}
	return 1
}

// optionDisplayName renders an option name the way the user typed it, with
// one dash for shorts and two for long names.
func optionDisplayName(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}
