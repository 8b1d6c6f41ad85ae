package types

import "strings"

// Invocation is a fully resolved command ready for dispatch: a lower-cased
// command name plus its positional arguments with all quoting removed.
type Invocation struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

// String renders the invocation for logs and diagnostics. Arguments
// containing whitespace are re-quoted.
func (inv Invocation) String() string {
	var sb strings.Builder
	sb.WriteString(inv.Command)
	for _, arg := range inv.Args {
		sb.WriteByte(' ')
		if arg == "" || strings.ContainsAny(arg, " \t") {
			sb.WriteByte('"')
			sb.WriteString(arg)
			sb.WriteByte('"')
		} else {
			sb.WriteString(arg)
		}
	}
	return sb.String()
}
