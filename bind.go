package clip

import (
	"fmt"
	"slices"
	"strconv"
)

// BindResult carries everything the binder produced for one invocation.
// Parse failures are recorded, never thrown: the validation plugin, or the
// caller, decides escalation policy.
type BindResult struct {
	// Args holds bound positional values by declaration name.
	Args map[string]any

	// Options holds bound option values by long name, defaults included.
	Options map[string]any

	// Supplied marks the options that were explicitly present on the command
	// line, as opposed to filled from defaults. Config layering above the
	// binder uses this to avoid clobbering user input.
	Supplied map[string]bool

	// Rest is the ordered unconsumed tail: surplus positionals and, in
	// non-strict mode, unmatched option and flag tokens.
	Rest []Token

	// Errors holds typed parse errors in the order they were detected.
	Errors []error

	// Unknown lists unmatched option and flag names, recorded only under
	// strict mode.
	Unknown []string
}

// Bind consumes tokens against a command's declarations. Options resolve
// first, consuming Option, Flag, and Value tokens; the remaining Argument
// tokens then bind positionally in declaration order. Defaults apply at bind
// time, only where nothing was supplied.
func Bind(tokens []Token, args []*Argument, opts []*Option, strict bool) *BindResult {
	b := &binder{
		tokens: tokens,
		opts:   opts,
		strict: strict,
		result: &BindResult{
			Args:     make(map[string]any),
			Options:  make(map[string]any),
			Supplied: make(map[string]bool),
		},
	}
	b.bindOptions()
	b.finishOptions(opts)
	b.bindPositionals(args)
	return b.result
}

type binder struct {
	tokens     []Token
	opts       []*Option
	strict     bool
	result     *BindResult
	positional []Token
	i          int
}

func (b *binder) bindOptions() {
	for b.i < len(b.tokens) {
		tok := b.tokens[b.i]
		switch tok.Type {
		case TokenSeparator:
			b.i++
		case TokenOption:
			b.bindOption(tok)
		case TokenFlag:
			b.bindFlag(tok)
		default:
			// Argument, or a stray Value with no owner.
			b.positional = append(b.positional, tok)
			b.i++
		}
	}
}

// bindOption consumes one Option token and whatever value tokens belong to
// it.
func (b *binder) bindOption(tok Token) {
	opt := b.findOption(tok.Value)
	if opt == nil {
		b.unmatched(tok)
		return
	}
	b.i++
	b.result.Supplied[opt.Name] = true

	// --name=value pairs the value lexically.
	if b.i < len(b.tokens) && b.tokens[b.i].Type == TokenValue {
		raw := b.tokens[b.i].Value
		b.i++
		if opt.Type == ArrayType {
			b.appendArray(opt, raw)
			return
		}
		b.setOption(opt, raw)
		return
	}

	switch opt.Type {
	case BooleanType:
		// Presence-only, unless a boolean literal follows explicitly.
		if raw, ok := b.peekArgument(); ok && (raw == "true" || raw == "false") {
			b.i++
			b.result.Options[opt.Name] = raw == "true"
			return
		}
		b.result.Options[opt.Name] = true
	case ArrayType:
		// Greedy: every consecutive trailing value joins the sequence.
		consumed := false
		for {
			raw, ok := b.peekArgument()
			if !ok {
				break
			}
			b.i++
			b.appendArray(opt, raw)
			consumed = true
		}
		if !consumed {
			b.recordError(&InvalidOptionError{Name: opt.Name, Value: "", Reason: "missing value"})
		}
	default:
		raw, ok := b.peekArgument()
		if !ok {
			b.recordError(&InvalidOptionError{Name: opt.Name, Value: "", Reason: "missing value"})
			return
		}
		b.i++
		b.setOption(opt, raw)
	}
}

// bindFlag resolves the lexical ambiguity of a multi-character single-dash
// token: a run of boolean shorts, a short with an inline value, or unknown.
func (b *binder) bindFlag(tok Token) {
	name := tok.Value

	allBooleanShorts := true
	for _, ch := range name {
		opt := b.findShort(string(ch))
		if opt == nil || opt.Type != BooleanType {
			allBooleanShorts = false
			break
		}
	}
	if allBooleanShorts {
		b.i++
		for _, ch := range name {
			opt := b.findShort(string(ch))
			b.result.Options[opt.Name] = true
			b.result.Supplied[opt.Name] = true
		}
		return
	}

	if opt := b.findShort(name[:1]); opt != nil && opt.Type != BooleanType {
		b.i++
		b.result.Supplied[opt.Name] = true
		if opt.Type == ArrayType {
			b.appendArray(opt, name[1:])
			return
		}
		b.setOption(opt, name[1:])
		return
	}

	b.unmatched(tok)
}

// unmatched handles an option or flag token with no declaration: strict mode
// records it as unknown and drops it; non-strict mode passes it through to
// the tail untouched, attached value included.
func (b *binder) unmatched(tok Token) {
	b.i++
	hasValue := b.i < len(b.tokens) && b.tokens[b.i].Type == TokenValue
	if b.strict {
		b.result.Unknown = append(b.result.Unknown, tok.Value)
		if hasValue {
			b.i++
		}
		return
	}
	b.result.Rest = append(b.result.Rest, tok)
	if hasValue {
		b.result.Rest = append(b.result.Rest, b.tokens[b.i])
		b.i++
	}
}

// finishOptions applies defaults, reports missing required options, and runs
// choice and validator checks over the supplied values.
func (b *binder) finishOptions(opts []*Option) {
	for _, opt := range opts {
		if !b.result.Supplied[opt.Name] {
			switch {
			case opt.Default != nil:
				b.result.Options[opt.Name] = opt.Default
			case opt.Required:
				b.recordError(&MissingArgumentError{Name: opt.Name, IsOption: true})
			case opt.Type == BooleanType:
				// Absent booleans bind false so typed access never misses.
				b.result.Options[opt.Name] = false
			}
			continue
		}
		value, ok := b.result.Options[opt.Name]
		if !ok {
			// Coercion already failed and recorded an error.
			continue
		}
		b.check(opt.Name, value, opt.Choices, opt.Validate)
	}
}

func (b *binder) bindPositionals(args []*Argument) {
	toks := b.positional
	ti := 0
	for _, arg := range args {
		if arg.Type == ArrayType {
			// A greedy trailing positional takes the whole remaining tail.
			var values []string
			for ; ti < len(toks); ti++ {
				values = append(values, toks[ti].Value)
			}
			if values == nil {
				if arg.Default != nil {
					b.result.Args[arg.Name] = arg.Default
				} else if arg.Required {
					b.recordError(&MissingArgumentError{Name: arg.Name})
				}
				continue
			}
			b.result.Args[arg.Name] = values
			b.check(arg.Name, values, arg.Choices, arg.Validate)
			continue
		}
		if ti >= len(toks) {
			if arg.Default != nil {
				b.result.Args[arg.Name] = arg.Default
			} else if arg.Required {
				b.recordError(&MissingArgumentError{Name: arg.Name})
			}
			continue
		}
		raw := toks[ti].Value
		ti++
		value, err := coerce(arg.Type, raw)
		if err != nil {
			b.recordError(&InvalidOptionError{Name: arg.Name, Value: raw, Reason: err.Error()})
			continue
		}
		b.result.Args[arg.Name] = value
		b.check(arg.Name, value, arg.Choices, arg.Validate)
	}
	for ; ti < len(toks); ti++ {
		b.result.Rest = append(b.result.Rest, toks[ti])
	}
}

// setOption coerces and stores one scalar option value.
func (b *binder) setOption(opt *Option, raw string) {
	value, err := coerce(opt.Type, raw)
	if err != nil {
		b.recordError(&InvalidOptionError{Name: opt.Name, Value: raw, Reason: err.Error()})
		return
	}
	b.result.Options[opt.Name] = value
}

func (b *binder) appendArray(opt *Option, raw string) {
	existing, _ := b.result.Options[opt.Name].([]string)
	b.result.Options[opt.Name] = append(existing, raw)
}

// check enforces choice constraints and the custom validator against a
// bound value.
func (b *binder) check(name string, value any, choices []string, validate func(any) error) {
	if len(choices) > 0 {
		if elems, ok := value.([]string); ok {
			for _, elem := range elems {
				if !slices.Contains(choices, elem) {
					b.recordError(&InvalidOptionError{Name: name, Value: elem, Reason: choiceReason(choices)})
				}
			}
		} else if s := valueText(value); !slices.Contains(choices, s) {
			b.recordError(&InvalidOptionError{Name: name, Value: s, Reason: choiceReason(choices)})
		}
	}
	if validate != nil {
		if err := validate(value); err != nil {
			b.recordError(&InvalidOptionError{Name: name, Value: valueText(value), Reason: err.Error()})
		}
	}
}

func (b *binder) recordError(err error) {
	b.result.Errors = append(b.result.Errors, err)
}

// peekArgument returns the next token's text when it is a plain Argument.
func (b *binder) peekArgument() (string, bool) {
	if b.i < len(b.tokens) && b.tokens[b.i].Type == TokenArgument {
		return b.tokens[b.i].Value, true
	}
	return "", false
}

func (b *binder) findOption(name string) *Option {
	for _, opt := range b.opts {
		if opt.Name == name || (opt.Short != "" && opt.Short == name) {
			return opt
		}
	}
	return nil
}

func (b *binder) findShort(short string) *Option {
	for _, opt := range b.opts {
		if opt.Short == short {
			return opt
		}
	}
	return nil
}

// coerce converts raw token text into the declared type. Array elements stay
// strings; choice constraints apply per element.
func coerce(typ ValueType, raw string) (any, error) {
	switch typ {
	case NumberType:
		if !numericText(raw) {
			return nil, fmt.Errorf("expected a number")
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number")
		}
		return n, nil
	case BooleanType:
		switch raw {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, fmt.Errorf("expected true or false")
		}
	default:
		return raw, nil
	}
}

// numericText reports whether raw matches the signed decimal grammar, the
// same shape the tokenizer accepts for negative positionals.
func numericText(raw string) bool {
	s := raw
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	digits, dot := 0, 0
	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9':
			digits++
		case ch == '.':
			dot++
			if dot > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}

func choiceReason(choices []string) string {
	return fmt.Sprintf("must be one of %v", choices)
}

// valueText renders a bound value for error messages and choice checks.
func valueText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
