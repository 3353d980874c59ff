package scoring

import (
	"regexp"
	"strings"
)

// emphasisOpen matches the tags that count as emphasizing a brand name.
var emphasisOpen = openTag("strong", "em", "b", "h1", "h2", "h3")

// brandWindow is how many runes after an emphasis tag are searched for the brand.
const brandWindow = 200

// BrandScorer scores how present and emphasized a brand name is.
// It does not produce evidence.
type BrandScorer struct{}

// NewBrandScorer creates a new BrandScorer
func NewBrandScorer() *BrandScorer {
	return &BrandScorer{}
}

// Compute scores brand presence in text. Blank arguments yield nil.
func (s *BrandScorer) Compute(brand, text string) (result *Score) {
	brand = strings.TrimSpace(brand)
	if brand == "" || strings.TrimSpace(text) == "" {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			result = nil
		}
	}()

	brandLower := strings.ToLower(brand)
	textLower := strings.ToLower(text)

	if !strings.Contains(textLower, brandLower) {
		return NewScore(20, nil)
	}

	mentions, err := regexp.Compile(regexp.QuoteMeta(brandLower))
	if err != nil {
		return nil
	}

	score := 50
	points, _ := scoreCount(count(mentions, textLower), []CountTier{
		{Min: 3, Points: 30},
		{Min: 2, Points: 20},
		{Min: 1, Points: 10},
	}, "")
	score += points

	if emphasized(textLower, brandLower) {
		score += 10
	}

	return NewScore(score, nil)
}

// emphasized reports whether brand appears within brandWindow runes
// of any opening emphasis or heading tag.
func emphasized(text, brand string) bool {
	for _, loc := range emphasisOpen.FindAllStringIndex(text, -1) {
		if strings.Contains(prefixRunes(text[loc[0]:], brandWindow), brand) {
			return true
		}
	}
	return false
}
