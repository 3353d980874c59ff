package scoring

import "testing"

func TestURLScorer_Compute(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantNil    bool
		wantPoints int
	}{
		{name: "blank", raw: "  ", wantNil: true},
		{name: "no host", raw: "https://", wantNil: true},
		{name: "bare domain", raw: "example.com", wantPoints: 50},
		{name: "readable slug", raw: "https://example.com/blog/how-to-cook", wantPoints: 58},
		{name: "korean slug", raw: "https://example.kr/%EC%83%81%ED%92%88", wantPoints: 58},
		{name: "numeric id", raw: "https://shop.example.com/p/12345", wantPoints: 45},
		{name: "uuid segment", raw: "https://example.com/items/0190b4c6-7e2a-7c4e-9d3f-2b1a9e8c7d6f", wantPoints: 45},
		{name: "deep path", raw: "https://example.com/a/b/c/d/e/f", wantPoints: 30},
		{name: "tracking params", raw: "https://example.com/?utm_source=x&utm_medium=y&ref=z", wantPoints: 41},
		{
			name:       "too many params",
			raw:        "https://example.com/?a=1&b=2&c=3&d=4&e=5&f=6",
			wantPoints: 40,
		},
	}

	s := NewURLScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Compute(tt.raw)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Compute(%q) = %+v, want nil", tt.raw, got)
				}
				return
			}
			points, ok := got.Points()
			if !ok {
				t.Fatalf("Compute(%q) returned an unmeasured score", tt.raw)
			}
			if points != tt.wantPoints {
				t.Errorf("Compute(%q) points = %d, want %d (evidence %v)", tt.raw, points, tt.wantPoints, evidenceDetails(got))
			}
		})
	}
}

func TestURLScorer_Evidence(t *testing.T) {
	got := NewURLScorer().Compute("https://blog.example.co.uk/posts/how-to-cook?utm_source=feed")

	for _, want := range []struct{ check, detail string }{
		{CheckPathDepth, "path depth appropriate"},
		{CheckSlugQuality, "slug quality moderate"},
		{CheckQuery, "query parameters appropriate"},
		{CheckDomain, "example.co.uk"},
	} {
		if !hasDetail(got, want.check, want.detail) {
			t.Errorf("missing evidence %s: %s in %v", want.check, want.detail, evidenceDetails(got))
		}
	}
}

func TestPathSegments(t *testing.T) {
	got := pathSegments("/a//b%20c/")
	if len(got) != 2 || got[0] != "a" || got[1] != "b c" {
		t.Errorf("pathSegments() = %q", got)
	}
}
