package scoring

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Check names, in evaluation order. Evidence carries these as Evidence.Check.
const (
	CheckHeadings   = "Heading structure"
	CheckSummary    = "Summary paragraph"
	CheckLists      = "List usage"
	CheckSections   = "Section separation"
	CheckEmphasis   = "Keyword emphasis"
	CheckCTA        = "CTA context"
	CheckParagraphs = "Duplicate/empty paragraphs"
)

// DefaultSummaryKeywords signal a summary-style first paragraph.
var DefaultSummaryKeywords = []string{
	"요약", "개요", "소개", "개념", "특징", "주요",
	"summary", "overview", "introduction", "key features", "at a glance",
}

// DefaultCTAKeywords signal a call to action in the plain text.
var DefaultCTAKeywords = []string{
	"구매", "신청", "문의", "연락", "더보기", "자세히", "지금", "바로",
	"buy", "order", "sign up", "subscribe", "contact", "learn more", "read more", "get started",
}

var (
	h1Tag       = openTag("h1")
	h2Tag       = openTag("h2")
	h3Tag       = openTag("h3")
	paragraph   = block("p")
	ulBlock     = block("ul")
	olBlock     = block("ol")
	liTag       = openTag("li")
	semanticTag = openTag("section", "article")
	divTag      = openTag("div")
	emphasisTag = openTag("strong", "em", "mark", "b")
	buttonTag   = openTag("button")
	anchorTag   = openTag("a")
)

// contentCheck is one weighted structural check.
type contentCheck struct {
	name   string
	weight float64
	max    int
	run    func(text string) (int, []string)
}

// ContentScorer scores the structure of HTML-ish content on a 0-100 scale
type ContentScorer struct {
	SummaryKeywords []string
	CTAKeywords     []string
}

// NewContentScorer creates a ContentScorer with the default keyword sets
func NewContentScorer() *ContentScorer {
	return &ContentScorer{
		SummaryKeywords: DefaultSummaryKeywords,
		CTAKeywords:     DefaultCTAKeywords,
	}
}

func (s *ContentScorer) checks() []contentCheck {
	return []contentCheck{
		{CheckHeadings, 0.25, 40, checkHeadings},
		{CheckSummary, 0.15, 20, s.checkSummary},
		{CheckLists, 0.20, 20, checkLists},
		{CheckSections, 0.15, 15, checkSections},
		{CheckEmphasis, 0.10, 10, checkEmphasis},
		{CheckCTA, 0.10, 10, s.checkCTA},
		{CheckParagraphs, 0.05, 10, checkParagraphs},
	}
}

// Compute scores text. It returns nil for blank input and when a check panics.
func (s *ContentScorer) Compute(text string) (result *Score) {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			result = nil
		}
	}()

	var totalScore, totalWeight float64
	var evidence []Evidence

	for _, c := range s.checks() {
		points, notes := c.run(text)
		points = clamp(points, 0, c.max)
		totalScore += float64(points) * c.weight
		totalWeight += c.weight
		for _, note := range notes {
			evidence = append(evidence, Evidence{Check: c.name, Detail: note})
		}
	}

	final := 0
	if totalWeight > 0 {
		final = int(math.Round(totalScore / totalWeight))
	}
	return NewScore(final, evidence)
}

func checkHeadings(text string) (int, []string) {
	score := 0
	var notes []string

	if count(h1Tag, text) > 0 {
		score += 20
		notes = append(notes, "H1 heading present")
	} else {
		notes = append(notes, "H1 heading absent")
	}

	points, note := scoreCount(count(h2Tag, text), []CountTier{
		{Min: 2, Points: 15, Note: "2+ H2 headings"},
		{Min: 1, Points: 10, Note: "1 H2 heading"},
	}, "H2 heading absent")
	score += points
	notes = append(notes, note)

	if count(h3Tag, text) > 0 {
		score += 5
		notes = append(notes, "H3 heading present")
	}

	return score, notes
}

func (s *ContentScorer) checkSummary(text string) (int, []string) {
	paragraphs := paragraph.FindAllString(text, -1)
	if len(paragraphs) == 0 {
		return 0, []string{"paragraph structure absent"}
	}

	first := extractText(paragraphs[0])
	length := utf8.RuneCountInString(first)
	score := 0
	var notes []string

	switch {
	case length >= 50 && length <= 200:
		score += 15
		notes = append(notes, "first paragraph well sized")
	case length > 0:
		score += 5
		notes = append(notes, "first paragraph present (length out of range)")
	}

	if containsAny(first, s.SummaryKeywords) {
		score += 5
		notes = append(notes, "summary keyword present")
	}

	return score, notes
}

func checkLists(text string) (int, []string) {
	var notes []string

	score, note := scoreCount(count(ulBlock, text)+count(olBlock, text), []CountTier{
		{Min: 2, Points: 15, Note: "2+ lists"},
		{Min: 1, Points: 10, Note: "1 list"},
	}, "list absent")
	notes = append(notes, note)

	if count(liTag, text) >= 5 {
		score += 5
		notes = append(notes, "5+ list items")
	}

	return score, notes
}

func checkSections(text string) (int, []string) {
	var notes []string

	score, note := scoreCount(count(semanticTag, text), []CountTier{
		{Min: 2, Points: 10, Note: "2+ semantic sections"},
		{Min: 1, Points: 5, Note: "1 semantic section"},
	}, "")
	if note != "" {
		notes = append(notes, note)
	}

	if count(divTag, text) >= 3 {
		score += 5
		notes = append(notes, "structural separation (3+ div blocks)")
	}

	return score, notes
}

func checkEmphasis(text string) (int, []string) {
	score, note := scoreCount(count(emphasisTag, text), []CountTier{
		{Min: 5, Points: 10, Note: "5+ emphasized keywords"},
		{Min: 2, Points: 5, Note: "2+ emphasized keywords"},
	}, "keyword emphasis insufficient")
	return score, []string{note}
}

func (s *ContentScorer) checkCTA(text string) (int, []string) {
	score := 0
	var notes []string

	if count(buttonTag, text) > 0 {
		score += 5
		notes = append(notes, "button element present")
	}

	if count(anchorTag, text) >= 2 {
		score += 3
		notes = append(notes, "2+ links")
	}

	if containsAny(extractText(text), s.CTAKeywords) {
		score += 2
		notes = append(notes, "CTA keyword present")
	}

	return score, notes
}

func checkParagraphs(text string) (int, []string) {
	paragraphs := paragraph.FindAllString(text, -1)
	if len(paragraphs) == 0 {
		return 0, []string{"paragraphs missing"}
	}

	score := 10
	var notes []string

	empty := 0
	prefixes := make(map[string]struct{}, len(paragraphs))
	for _, p := range paragraphs {
		content := extractText(p)
		if content == "" {
			empty++
		}
		prefixes[prefixRunes(strings.ToLower(content), 50)] = struct{}{}
	}

	if empty > 0 {
		score -= empty * 2
		if empty == 1 {
			notes = append(notes, "1 empty paragraph")
		} else {
			notes = append(notes, fmt.Sprintf("%d empty paragraphs", empty))
		}
	}

	duplicateRatio := 1 - float64(len(prefixes))/float64(len(paragraphs))
	if duplicateRatio > 0.3 {
		score -= 5
		notes = append(notes, "many duplicate paragraphs")
	}

	return score, notes
}
