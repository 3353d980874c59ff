package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// CountTier awards Points once a counted pattern reaches Min occurrences.
// Tiers are evaluated in order; put the highest Min first.
type CountTier struct {
	Min    int
	Points int
	Note   string
}

// scoreCount returns the points and note of the first tier count satisfies.
// When no tier matches it returns zero points and missNote (which may be empty).
func scoreCount(count int, tiers []CountTier, missNote string) (int, string) {
	for _, tier := range tiers {
		if count >= tier.Min {
			return tier.Points, tier.Note
		}
	}
	return 0, missNote
}

// openTag matches an opening tag whose name ends at whitespace, '/' or '>'.
// <b> therefore does not match <body> or <br>.
func openTag(names ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)<(?:` + strings.Join(names, "|") + `)(?:\s[^>]*)?/?>`)
}

// block matches a whole element from its opening tag to the first closing tag.
func block(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<` + name + `(?:\s[^>]*)?>.*?</` + name + `\s*>`)
}

var (
	scriptBlock = regexp.MustCompile(`(?is)<script[^>]*>.*?</script\s*>`)
	styleBlock  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style\s*>`)
	anyTag      = regexp.MustCompile(`<[^>]+>`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// extractText strips scripts, styles and tags and collapses whitespace.
func extractText(html string) string {
	if html == "" {
		return ""
	}
	text := scriptBlock.ReplaceAllString(html, "")
	text = styleBlock.ReplaceAllString(text, "")
	text = anyTag.ReplaceAllString(text, " ")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// count returns the number of non-overlapping matches of re in s.
func count(re *regexp.Regexp, s string) int {
	return len(re.FindAllStringIndex(s, -1))
}

// containsAny reports whether s contains any of the keywords, ignoring case.
func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// prefixRunes returns at most n runes from the start of s.
func prefixRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
