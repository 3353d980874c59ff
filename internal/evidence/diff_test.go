package evidence

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBullets(t *testing.T) {
	e := &Entry{Items: []Item{
		{Label: "CONTENT", Title: "Heading structure", Detail: "H1 heading present"},
		{Label: "CONTENT", Title: "Heading structure", Detail: "  H2 heading absent "},
		{Label: "CONTENT", Title: "List usage", Detail: "List usage: list absent"},
		{Label: "CONTENT", Title: "Keyword emphasis", Detail: "keyword emphasis insufficient"},
		{Label: "CONTENT", Title: "", Detail: "Duplicate/empty paragraphs: 2 empty paragraphs"},
		{Label: "CONTENT", Title: "요약", Detail: "요약 문단 부재"},
		{Label: "URL", Title: "Query parameters", Detail: "query missing"},
		{Label: "CONTENT", Title: "List usage", Detail: "list absent"},
	}}

	assert.Equal(t, []string{
		"H2 heading absent",
		"list absent",
		"keyword emphasis insufficient",
		"2 empty paragraphs",
		"요약 문단 부재",
	}, Bullets(e))

	assert.Empty(t, Bullets(nil))
}

func TestBullets_Cap(t *testing.T) {
	e := &Entry{}
	for i := 0; i < 12; i++ {
		e.Items = append(e.Items, Item{Label: "CONTENT", Detail: fmt.Sprintf("section %d missing", i)})
	}
	assert.Len(t, Bullets(e), MaxBullets)
}

func TestCompare(t *testing.T) {
	prev := entryWithID("p", "H1 heading absent", "list absent", "paragraphs missing")
	cur := entryWithID("c", "list absent", "keyword emphasis insufficient")

	d := Compare(&cur, &prev)
	assert.True(t, d.HasPrevious)
	assert.Equal(t, []string{"keyword emphasis insufficient"}, d.Added)
	assert.Equal(t, []string{"H1 heading absent", "paragraphs missing"}, d.Removed)
	assert.Equal(t, InterpretRestructuring, d.Interpretation())
}

func TestCompare_NoPrevious(t *testing.T) {
	entries := []Entry{
		entryWithID("a"),
		entryWithID("b", "list absent"),
		entryWithID("c", "H1 heading absent", "list absent", "H2 heading absent"),
	}
	for _, e := range entries {
		t.Run(e.Meta.ID, func(t *testing.T) {
			d := Compare(&e, nil)
			assert.Empty(t, d.Removed)
			assert.NotNil(t, d.Removed)
			assert.Equal(t, Bullets(&e), d.Added)
			assert.False(t, d.HasPrevious)
			assert.Equal(t, InterpretNoPrevious, d.Interpretation())
		})
	}
}

func TestCompare_Self(t *testing.T) {
	e := entryWithID("a", "H1 heading absent", "list absent", "1 empty paragraph")
	d := Compare(&e, &e)
	assert.Empty(t, d.Added)
	assert.Empty(t, d.Removed)
	assert.Equal(t, InterpretNoChange, d.Interpretation())
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		added, removed int
		want           Interpretation
	}{
		{added: 2, removed: 0, want: InterpretImproving},
		{added: 0, removed: 1, want: InterpretRegressing},
		{added: 0, removed: 0, want: InterpretNoChange},
		{added: 3, removed: 3, want: InterpretRestructuring},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.added, tt.removed), func(t *testing.T) {
			assert.Equal(t, tt.want, Interpret(tt.added, tt.removed))
		})
	}
}
