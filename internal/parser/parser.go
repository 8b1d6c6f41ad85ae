// Package parser turns raw input lines into command invocations.
//
// Tokenization honors single and double quotes so arguments may contain
// spaces. A line whose first token is not a registered command is not an
// invocation; the engine hands such lines to the intent translator instead.
package parser

import (
	"strings"

	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// Parser recognizes command lines against a fixed set of command names.
type Parser struct {
	known map[string]struct{}
}

// New creates a parser that recognizes the given command names. Names are
// matched case-insensitively.
func New(commands []string) *Parser {
	known := make(map[string]struct{}, len(commands))
	for _, c := range commands {
		known[strings.ToLower(c)] = struct{}{}
	}
	return &Parser{known: known}
}

// Knows reports whether name is a registered command.
func (p *Parser) Knows(name string) bool {
	_, ok := p.known[strings.ToLower(name)]
	return ok
}

// Commands returns the registered command names in unspecified order.
func (p *Parser) Commands() []string {
	out := make([]string, 0, len(p.known))
	for name := range p.known {
		out = append(out, name)
	}
	return out
}

// Parse splits line into an invocation. It returns false when the line is
// empty or its first token names no registered command; such lines belong
// to the natural language path.
func (p *Parser) Parse(line string) (types.Invocation, bool) {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return types.Invocation{}, false
	}
	name := strings.ToLower(tokens[0])
	if !p.Knows(name) {
		return types.Invocation{}, false
	}
	return types.Invocation{Command: name, Args: tokens[1:]}, true
}

// Tokenize splits a line on whitespace while honoring single and double
// quotes. Quotes glue adjacent segments into one token, so `a"b c"` yields
// `ab c`. A line with an unterminated quote falls back to a plain
// whitespace split.
func Tokenize(line string) []string {
	var tokens []string
	var cur strings.Builder
	var quote byte
	inToken := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			inToken = true
		case c == ' ' || c == '\t':
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteByte(c)
			inToken = true
		}
	}

	if quote != 0 {
		return strings.Fields(line)
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

// Render reassembles an invocation into a line that Tokenize maps back to
// the same invocation, provided no argument contains a quote character.
// Arguments with whitespace, and empty arguments, are double-quoted.
func Render(inv types.Invocation) string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, inv.Command)
	for _, arg := range inv.Args {
		if arg == "" || strings.ContainsAny(arg, " \t") {
			parts = append(parts, `"`+arg+`"`)
		} else {
			parts = append(parts, arg)
		}
	}
	return strings.Join(parts, " ")
}

// SplitOptions separates dash-prefixed option tokens from positional
// arguments. A lone "-" is positional; commands like cd use it as a value.
func SplitOptions(args []string) (options, positional []string) {
	for _, arg := range args {
		if len(arg) > 1 && arg[0] == '-' {
			options = append(options, arg)
		} else {
			positional = append(positional, arg)
		}
	}
	return options, positional
}

// HasOption reports whether any option token contains the given flag
// letter, so both "-la" and separate "-l -a" forms match.
func HasOption(options []string, letter byte) bool {
	for _, opt := range options {
		for i := 1; i < len(opt); i++ {
			if opt[i] == letter {
				return true
			}
		}
	}
	return false
}
