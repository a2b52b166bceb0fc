// Package clip is a parsing-and-dispatch engine for building command-line
// tools. It turns raw process arguments into a resolved command with typed
// argument and option values, and drives that command's action through an
// ordered plugin and middleware pipeline.
//
// Commands are declared as a tree with a fluent builder. An invocation flows
// through a fixed sequence: the router walks the raw argument vector down the
// command tree, the tokenizer classifies the remaining tail, the binder
// coerces tokens against the matched command's declarations, and the kernel
// emits lifecycle events around the middleware-wrapped action. Parse failures
// are returned as data and aggregated by the validation plugin; help and
// version requests surface as a distinct exit-request signal rather than an
// error, so the engine itself never terminates the process.
package clip
