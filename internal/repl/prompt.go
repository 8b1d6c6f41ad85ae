package repl

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/Adi-aygd/nlterm/internal/engine"
)

// promptPathLimit is the directory length beyond which the prompt
// collapses the path to its last two elements.
const promptPathLimit = 30

const bannerWidth = 62

// palette holds the output colors. Every color is forced on or off at
// construction so rendering does not depend on the global tty detection.
type palette struct {
	userHost  *color.Color
	dir       *color.Color
	symbol    *color.Color
	errorText *color.Color
	title     *color.Color
	subtitle  *color.Color
	heading   *color.Color
	bullet    *color.Color
	hint      *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		userHost:  color.New(color.FgGreen, color.Bold),
		dir:       color.New(color.FgBlue, color.Bold),
		symbol:    color.New(color.FgWhite, color.Bold),
		errorText: color.New(color.FgRed, color.Bold),
		title:     color.New(color.FgGreen, color.Bold),
		subtitle:  color.New(color.FgCyan),
		heading:   color.New(color.FgYellow, color.Bold),
		bullet:    color.New(color.FgWhite),
		hint:      color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{
		p.userHost, p.dir, p.symbol, p.errorText,
		p.title, p.subtitle, p.heading, p.bullet, p.hint,
	} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// prompt renders "user@host:dir$ ". Long paths collapse to ".../x/y" and
// the home directory contracts to ~.
func (t *Terminal) prompt(dir string) string {
	dir = shortenPath(dir)
	if t.home != "" && strings.HasPrefix(dir, t.home) {
		dir = "~" + strings.TrimPrefix(dir, t.home)
	}

	userHost := t.pal.userHost.Sprintf("%s@%s", t.username, t.hostname)
	return userHost + ":" + t.pal.dir.Sprint(dir) + t.pal.symbol.Sprint("$") + " "
}

// shortenPath keeps deep working directories from swallowing the prompt
// line. Shortening runs before home contraction, matching how the path
// reads in the unshortened case.
func shortenPath(dir string) string {
	if len(dir) <= promptPathLimit {
		return dir
	}
	parts := strings.Split(dir, "/")
	if len(parts) <= 3 {
		return dir
	}
	return strings.Join(append([]string{"..."}, parts[len(parts)-2:]...), "/")
}

func centered(text string, width int) string {
	pad := width - len([]rune(text))
	if pad < 0 {
		return text
	}
	left := pad / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}

func (t *Terminal) printBanner() {
	p := t.pal
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("╔" + strings.Repeat("═", bannerWidth) + "╗\n")
	b.WriteString("║" + p.title.Sprint(centered("NLTerm v"+engine.Version, bannerWidth)) + "║\n")
	b.WriteString("║" + p.subtitle.Sprint(centered("A Natural Language Command Terminal", bannerWidth)) + "║\n")
	b.WriteString("╚" + strings.Repeat("═", bannerWidth) + "╝\n")
	b.WriteString("\nWelcome! This terminal accepts shell commands and plain English.\n\n")

	b.WriteString(p.heading.Sprint("Features:") + "\n")
	for _, feature := range []string{
		"• File and directory operations (ls, cd, mkdir, rm, cp, mv, etc.)",
		"• System monitoring (ps, top, free, df, uptime)",
		"• Natural language commands (\"show me the files in this directory\")",
		"• Command history and built-in help",
		"• Error handling and auto-suggestions",
	} {
		b.WriteString(p.bullet.Sprint(feature) + "\n")
	}

	b.WriteString("\n" + p.hint.Sprint("Type 'help' for a list of available commands or 'exit' to quit.") + "\n")

	fmt.Fprint(t.out, b.String())
}
