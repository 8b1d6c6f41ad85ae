package intent

import (
	"regexp"
	"strings"
)

// suggestionGroups maps trigger words to canned command suggestions shown
// when no rule matched. Matching is substring-based on the normalized
// query, so "listing" triggers the "list" group.
var suggestionGroups = []struct {
	words       []string
	suggestions []string
}{
	{
		words:       []string{"list", "show", "display"},
		suggestions: []string{"ls", "ls -la", "pwd", "ps aux"},
	},
	{
		words:       []string{"create", "make", "new"},
		suggestions: []string{"mkdir <directory>", "touch <file>", "cp <source> <dest>"},
	},
	{
		words:       []string{"delete", "remove", "rm"},
		suggestions: []string{"rm <file>", "rm -r <directory>", "rmdir <directory>"},
	},
	{
		words:       []string{"find", "search", "locate"},
		suggestions: []string{`find . "<pattern>"`, `find <path> "<pattern>"`},
	},
	{
		words:       []string{"process", "running", "system"},
		suggestions: []string{"ps aux", "top", "free -h", "df -h", "uptime"},
	},
}

const maxSuggestions = 5

// Suggest returns up to five command suggestions for a query that resolved
// to nothing, keyed off recognizable verbs in the query.
func Suggest(query string) []string {
	q := Normalize(query)
	var out []string
	for _, g := range suggestionGroups {
		for _, w := range g.words {
			if strings.Contains(q, w) {
				out = append(out, g.suggestions...)
				break
			}
		}
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// Heuristics for telling prose from command-shaped input. A line that
// looks like prose gets intent suggestions; a command-shaped line gets
// treated as an unknown command instead.
var (
	proseIndicators = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:show|list|display|what|how|where|find|search|create|make|delete|remove)\b`),
		regexp.MustCompile(`\b(?:me|the|a|an|this|that|some|all)\b`),
		regexp.MustCompile(`\b(?:can|could|would|should|will)\b`),
		regexp.MustCompile(`\?$`),
	}

	commandShapes = []*regexp.Regexp{
		regexp.MustCompile(`^[a-zA-Z_-]+(\s+\S+)*$`),
		regexp.MustCompile(`^[a-zA-Z_-]+\s+-[a-zA-Z]+`),
	}

	listingVerbRe = regexp.MustCompile(`\b(?:show|list|display)\b`)
)

// IsProse reports whether the input reads as natural language rather than
// a command line. Ambiguous input defaults to prose.
func IsProse(query string) bool {
	q := Normalize(query)
	for _, re := range proseIndicators {
		if re.MatchString(q) {
			return true
		}
	}
	for _, re := range commandShapes {
		if re.MatchString(q) && !listingVerbRe.MatchString(q) {
			return false
		}
	}
	return true
}
