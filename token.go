package clip

import (
	"regexp"
	"strings"
)

// TokenType classifies a single element of the argument vector.
type TokenType int

const (
	// TokenArgument is a positional value, or anything after the -- separator.
	TokenArgument TokenType = iota
	// TokenOption is a long option (--name) or a single-character short (-x).
	TokenOption
	// TokenFlag is a multi-character single-dash token (-abc). Whether it is a
	// combined run of shorts or a short with an inline value is ambiguous at
	// the lexical level and resolved by the binder.
	TokenFlag
	// TokenValue is the value half of a --name=value element.
	TokenValue
	// TokenSeparator is the first bare -- element.
	TokenSeparator
)

func (t TokenType) String() string {
	switch t {
	case TokenArgument:
		return "argument"
	case TokenOption:
		return "option"
	case TokenFlag:
		return "flag"
	case TokenValue:
		return "value"
	case TokenSeparator:
		return "separator"
	default:
		return "unknown"
	}
}

// Token is one classified lexical unit derived from a single argv element.
// Tokens are produced once per invocation and never mutated; their order is
// the original argv order, which is authoritative for positional binding.
type Token struct {
	Type TokenType

	// Raw is the argv element exactly as received.
	Raw string

	// Value is the normalized payload: the option name with dashes stripped,
	// the text after = for a Value token, or the element itself otherwise.
	Value string

	// Index is the position of the originating element in the argument vector.
	Index int
}

// signedNumber matches negative numeric literals such as -123 and -12.5,
// which must bind as positional arguments rather than options.
var signedNumber = regexp.MustCompile(`^-\d+(\.\d+)?$`)

// Tokenize classifies the argument vector into an ordered token sequence. It
// is deterministic and side-effect free; empty input yields an empty
// sequence.
//
// The first bare -- emits a Separator and switches every later element to
// Argument, including a second literal --. A --name=value element emits an
// Option token followed by a Value token.
func Tokenize(args []string) []Token {
	tokens := make([]Token, 0, len(args))
	argumentsOnly := false
	for i, arg := range args {
		if argumentsOnly {
			tokens = append(tokens, Token{Type: TokenArgument, Raw: arg, Value: arg, Index: i})
			continue
		}
		switch {
		case arg == "--":
			argumentsOnly = true
			tokens = append(tokens, Token{Type: TokenSeparator, Raw: arg, Value: arg, Index: i})
		case signedNumber.MatchString(arg):
			tokens = append(tokens, Token{Type: TokenArgument, Raw: arg, Value: arg, Index: i})
		case strings.HasPrefix(arg, "--"):
			name, value, hasValue := strings.Cut(arg[2:], "=")
			tokens = append(tokens, Token{Type: TokenOption, Raw: arg, Value: name, Index: i})
			if hasValue {
				tokens = append(tokens, Token{Type: TokenValue, Raw: arg, Value: value, Index: i})
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			name := arg[1:]
			if len(name) == 1 {
				tokens = append(tokens, Token{Type: TokenOption, Raw: arg, Value: name, Index: i})
			} else {
				tokens = append(tokens, Token{Type: TokenFlag, Raw: arg, Value: name, Index: i})
			}
		default:
			tokens = append(tokens, Token{Type: TokenArgument, Raw: arg, Value: arg, Index: i})
		}
	}
	return tokens
}
