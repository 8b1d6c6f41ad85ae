package repl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func promptTerminal(colors bool) *Terminal {
	return &Terminal{
		pal:      newPalette(colors),
		username: "alice",
		hostname: "box",
		home:     "/home/alice",
	}
}

func TestPromptPlain(t *testing.T) {
	term := promptTerminal(false)

	assert.Equal(t, "alice@box:~/projects$ ", term.prompt("/home/alice/projects"))
	assert.Equal(t, "alice@box:~$ ", term.prompt("/home/alice"))
	assert.Equal(t, "alice@box:/etc$ ", term.prompt("/etc"))
}

func TestPromptColored(t *testing.T) {
	term := promptTerminal(true)

	p := term.prompt("/etc")
	assert.Contains(t, p, "\x1b[")
	assert.Contains(t, p, "alice@box")
	assert.Contains(t, p, "/etc")
	assert.True(t, strings.HasSuffix(p, " "))
}

func TestShortenPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short path unchanged", "/home/alice", "/home/alice"},
		{"exactly at limit unchanged", "/" + strings.Repeat("a", 29), "/" + strings.Repeat("a", 29)},
		{"deep path collapses", "/home/alice/projects/go/nlterm/internal", ".../nlterm/internal"},
		{"long single component unchanged", "/" + strings.Repeat("b", 40), "/" + strings.Repeat("b", 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shortenPath(tt.in))
		})
	}
}

func TestPromptCollapsedPathSkipsHomeContraction(t *testing.T) {
	term := promptTerminal(false)

	// Shortening runs first, so a collapsed path never matches the home
	// prefix and stays literal.
	got := term.prompt("/home/alice/projects/go/nlterm/internal")
	assert.Equal(t, "alice@box:.../nlterm/internal$ ", got)
}

func TestCentered(t *testing.T) {
	assert.Equal(t, "  ab  ", centered("ab", 6))
	assert.Equal(t, " ab  ", centered("ab", 5))
	assert.Equal(t, "ab", centered("ab", 1))
}
