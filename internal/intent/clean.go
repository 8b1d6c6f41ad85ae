package intent

import (
	"regexp"
	"strings"
)

// articleRe strips filler words out of captured slots so "the backup
// folder" becomes "backup folder".
var articleRe = regexp.MustCompile(`\b(?:the|a|an|this|that)\b\s*`)

// pathNoiseRe drops a trailing "directory" or "folder" word from path
// phrases, so "the src directory" resolves to src and "this directory"
// to the current one.
var pathNoiseRe = regexp.MustCompile(`\s*\b(?:directory|folder)$`)

// cleanSlot dispatches on slot kind. The bool is false when the slot is
// required and cleaned to nothing.
func cleanSlot(slot, raw string) (string, bool) {
	if slot == "name" {
		v := cleanName(raw)
		return v, v != ""
	}
	return cleanPath(raw), true
}

// cleanPath normalizes a captured path phrase. Empty input means the
// current directory. Multi-word phrases of up to three words are quoted so
// they survive re-tokenization as a single argument.
func cleanPath(raw string) string {
	if raw == "" {
		return "."
	}
	p := articleRe.ReplaceAllString(raw, "")
	p = strings.Join(strings.Fields(p), " ")
	p = pathNoiseRe.ReplaceAllString(p, "")
	p = stripOuterQuotes(p)

	if strings.Contains(p, " ") && !strings.ContainsAny(p, `"'`) {
		if len(strings.Fields(p)) <= 3 {
			p = `"` + p + `"`
		}
	}
	if p == "" {
		return "."
	}
	return p
}

// cleanName normalizes a captured file or directory name. Two-word names
// are quoted; longer phrases collapse to underscores, matching how users
// tend to want "my test results" turned into a single name.
func cleanName(raw string) string {
	if raw == "" {
		return ""
	}
	n := articleRe.ReplaceAllString(raw, "")
	n = strings.Join(strings.Fields(n), " ")
	n = stripOuterQuotes(n)

	if strings.Contains(n, " ") {
		if len(strings.Fields(n)) <= 2 {
			n = `"` + n + `"`
		} else {
			n = strings.ReplaceAll(n, " ", "_")
		}
	}
	return n
}

func stripOuterQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
