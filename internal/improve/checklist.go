// Package improve turns scorer evidence into a rule-based improvement checklist.
package improve

import (
	"strings"

	"github.com/dotcommander/aeoscore/internal/scoring"
)

// MaxItems caps the evidence-derived checklist.
const MaxItems = 10

// Checklist lines.
const (
	ItemH1            = "Add an H1 heading: state the product name in a single H1"
	ItemH2            = "Add H2 headings: split the main sections with at least two H2s"
	ItemH3            = "Add H3 headings: break detailed sections into H3 subsections"
	ItemSummaryBlock  = "Add a summary block: sum up the key facts in the first 5-7 lines"
	ItemFirstPara     = "Tighten the first paragraph: 50-200 characters that summarize the page"
	ItemSummaryWords  = `Add summary keywords: use words such as "summary", "overview" or "key features"`
	ItemListAdd       = "Add list structure: move USPs and specs into ul/ol lists"
	ItemListExpand    = "Expand lists: use at least two list blocks"
	ItemListItems     = "Expand list items: give each list at least five items"
	ItemSections      = "Add section structure: separate content with section or article tags"
	ItemSeparation    = "Strengthen structural separation: split sections with div or semantic tags"
	ItemEmphasisAdd   = "Add keyword emphasis: mark key terms with strong, em or mark"
	ItemEmphasisMore  = "Expand keyword emphasis: emphasize at least five key terms"
	ItemCTAButton     = "Add a CTA button: include a buy or contact button element"
	ItemCTAKeywords   = `Add CTA keywords: use action words such as "buy", "sign up" or "contact"`
	ItemEmptyParas    = "Remove empty paragraphs: drop p tags without content"
	ItemDuplicateText = "Remove duplicate content: merge repeated paragraphs"
	ItemFAQ           = "Add an FAQ section: answer at least three common questions"
	ItemURLMeasure    = "Measure URL structure: run the analysis with the page URL (prefer /products/<product-name> paths)"
)

// defaultChecklist is used when the evidence triggers no rule.
var defaultChecklist = []string{
	ItemH1,
	ItemSummaryBlock,
	ItemListAdd,
	ItemH2,
	ItemFAQ,
	ItemEmphasisAdd,
	ItemCTAButton,
}

// rule adds item when match holds for the collected evidence.
type rule struct {
	item  string
	match func(f facts) bool
}

// facts indexes content evidence by check.
type facts map[string][]string

func (f facts) ran(check string) bool {
	_, ok := f[check]
	return ok
}

// has reports whether any detail of check contains substr.
func (f facts) has(check, substr string) bool {
	for _, d := range f[check] {
		if strings.Contains(strings.ToLower(d), strings.ToLower(substr)) {
			return true
		}
	}
	return false
}

var rules = []rule{
	{ItemH1, func(f facts) bool { return f.has(scoring.CheckHeadings, "H1 heading absent") }},
	{ItemH2, func(f facts) bool {
		return f.has(scoring.CheckHeadings, "H2 heading absent") || f.has(scoring.CheckHeadings, "1 H2 heading")
	}},
	{ItemH3, func(f facts) bool {
		return f.ran(scoring.CheckHeadings) && !f.has(scoring.CheckHeadings, "H3 heading present")
	}},
	{ItemSummaryBlock, func(f facts) bool { return f.has(scoring.CheckSummary, "paragraph structure absent") }},
	{ItemFirstPara, func(f facts) bool { return f.has(scoring.CheckSummary, "length out of range") }},
	{ItemSummaryWords, func(f facts) bool {
		return f.ran(scoring.CheckSummary) && !f.has(scoring.CheckSummary, "summary keyword present")
	}},
	{ItemListAdd, func(f facts) bool { return f.has(scoring.CheckLists, "list absent") }},
	{ItemListExpand, func(f facts) bool { return f.has(scoring.CheckLists, "1 list") }},
	{ItemListItems, func(f facts) bool {
		return f.ran(scoring.CheckLists) && !f.has(scoring.CheckLists, "list absent") && !f.has(scoring.CheckLists, "5+ list items")
	}},
	{ItemSections, func(f facts) bool { return !f.has(scoring.CheckSections, "semantic section") }},
	{ItemSeparation, func(f facts) bool { return !f.has(scoring.CheckSections, "structural separation") }},
	{ItemEmphasisAdd, func(f facts) bool { return f.has(scoring.CheckEmphasis, "insufficient") }},
	{ItemEmphasisMore, func(f facts) bool {
		return f.ran(scoring.CheckEmphasis) && !f.has(scoring.CheckEmphasis, "5+ emphasized")
	}},
	{ItemCTAButton, func(f facts) bool { return !f.has(scoring.CheckCTA, "button element present") }},
	{ItemCTAKeywords, func(f facts) bool { return !f.has(scoring.CheckCTA, "CTA keyword present") }},
	{ItemEmptyParas, func(f facts) bool { return f.has(scoring.CheckParagraphs, "empty paragraph") }},
	{ItemDuplicateText, func(f facts) bool { return f.has(scoring.CheckParagraphs, "duplicate") }},
}

// Checklist derives up to MaxItems improvement lines from content evidence.
// Without evidence, or when no rule fires, the default checklist is used.
// When the URL slot is unmeasured ItemURLMeasure is appended after the cap.
func Checklist(evidence []scoring.Evidence, urlMeasured bool) []string {
	items := fromEvidence(evidence)
	if len(items) == 0 {
		items = append(items, defaultChecklist...)
	}
	if !urlMeasured {
		items = append(items, ItemURLMeasure)
	}
	return items
}

func fromEvidence(evidence []scoring.Evidence) []string {
	if len(evidence) == 0 {
		return nil
	}

	f := make(facts)
	for _, ev := range evidence {
		f[ev.Check] = append(f[ev.Check], ev.Detail)
	}

	var items []string
	seen := make(map[string]bool)
	for _, r := range rules {
		if seen[r.item] || !r.match(f) {
			continue
		}
		seen[r.item] = true
		items = append(items, r.item)
		if len(items) == MaxItems {
			break
		}
	}
	return items
}
