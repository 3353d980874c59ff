package scoring

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/weppos/publicsuffix-go/publicsuffix"
)

// URL check names.
const (
	CheckPathDepth   = "Path depth"
	CheckSlugQuality = "Slug quality"
	CheckQuery       = "Query parameters"
	CheckDomain      = "Registrable domain"
)

var (
	schemePrefix   = regexp.MustCompile(`(?i)^https?://`)
	hangul         = regexp.MustCompile(`[\x{AC00}-\x{D7A3}]`)
	hyphenatedSlug = regexp.MustCompile(`(?i)^[a-z]+(-[a-z]+)+$`)
	singleWordSlug = regexp.MustCompile(`(?i)^[a-z]+$`)
	digitsOnly     = regexp.MustCompile(`^\d+$`)
)

// trackingParams are query keys that look like analytics or session tracking.
var trackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"ref", "referrer", "session", "sessionid", "tracking", "track",
}

// URLScorer scores the readability of a page URL.
type URLScorer struct{}

// NewURLScorer creates a new URLScorer
func NewURLScorer() *URLScorer {
	return &URLScorer{}
}

// Compute scores raw. Blank or unparseable URLs yield nil.
func (s *URLScorer) Compute(raw string) *Score {
	u := parseURL(raw)
	if u == nil {
		return nil
	}

	segments := pathSegments(u.EscapedPath())
	depth := scorePathDepth(segments)
	slug := scoreSlugQuality(segments)
	query := scoreQueryParams(u.Query())

	evidence := []Evidence{
		{Check: CheckPathDepth, Detail: depthNote(depth)},
		{Check: CheckSlugQuality, Detail: slugNote(slug)},
		{Check: CheckQuery, Detail: queryNote(query)},
	}
	if domain, err := publicsuffix.Domain(u.Hostname()); err == nil {
		evidence = append(evidence, Evidence{Check: CheckDomain, Detail: domain})
	}

	return NewScore(depth+slug+query, evidence)
}

// parseURL assumes https when no scheme is given.
func parseURL(raw string) *url.URL {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if !schemePrefix.MatchString(raw) {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return nil
	}
	return u
}

func pathSegments(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if unescaped, err := url.PathUnescape(seg); err == nil {
			seg = unescaped
		}
		segments = append(segments, seg)
	}
	return segments
}

// scorePathDepth rewards shallow paths (0-30).
func scorePathDepth(segments []string) int {
	switch len(segments) {
	case 0, 1:
		return 30
	case 2:
		return 25
	case 3:
		return 20
	case 4:
		return 15
	default:
		return 10
	}
}

// scoreSlugQuality rewards readable segments and penalizes ids and tokens (0-30).
func scoreSlugQuality(segments []string) int {
	score := 0
	for _, seg := range segments {
		if hangul.MatchString(seg) {
			score += 8
		}
		if hyphenatedSlug.MatchString(seg) {
			score += 8
		}
		if singleWordSlug.MatchString(seg) && len(seg) >= 3 {
			score += 5
		}
		if digitsOnly.MatchString(seg) {
			score -= 5
		}
		if len([]rune(seg)) >= 32 {
			score -= 10
		}
		if isUUID(seg) {
			score -= 10
		}
	}
	return clamp(score, 0, 30)
}

func isUUID(seg string) bool {
	if len(seg) != 36 {
		return false
	}
	_, err := uuid.Parse(seg)
	return err == nil
}

// scoreQueryParams starts at 20 and deducts for volume and tracking keys.
func scoreQueryParams(values url.Values) int {
	if len(values) == 0 {
		return 20
	}

	score := 20
	switch {
	case len(values) > 5:
		score -= 10
	case len(values) > 3:
		score -= 5
	}

	for key := range values {
		lower := strings.ToLower(key)
		for _, tp := range trackingParams {
			if strings.Contains(lower, tp) {
				score -= 3
				break
			}
		}
	}

	return max(score, 0)
}

func depthNote(points int) string {
	switch {
	case points >= 25:
		return "path depth appropriate"
	case points <= 10:
		return "path too deep"
	default:
		return "path depth moderate"
	}
}

func slugNote(points int) string {
	switch {
	case points >= 20:
		return "meaningful slug present"
	case points <= 5:
		return "slug unclear or mostly ids/tokens"
	default:
		return "slug quality moderate"
	}
}

func queryNote(points int) string {
	if points >= 15 {
		return "query parameters appropriate"
	}
	return "too many query or tracking parameters"
}
