package scoring

// Slot names one of the three fixed score categories.
type Slot string

const (
	SlotBranding           Slot = "branding"
	SlotContentStructureV2 Slot = "contentStructureV2"
	SlotURLStructureV1     Slot = "urlStructureV1"
)

// AllSlots lists the slots in their fixed priority order.
var AllSlots = []Slot{SlotBranding, SlotContentStructureV2, SlotURLStructureV1}

// Label returns the short upper-case label used in reason lines.
func (s Slot) Label() string {
	switch s {
	case SlotBranding:
		return "BRAND"
	case SlotContentStructureV2:
		return "CONTENT"
	case SlotURLStructureV1:
		return "URL"
	default:
		return string(s)
	}
}

// ScoreSlots holds exactly the three named score slots.
// It is rebuilt for every analysis; old values are never patched in.
type ScoreSlots struct {
	Branding           *Score `json:"branding"`
	ContentStructureV2 *Score `json:"contentStructureV2"`
	URLStructureV1     *Score `json:"urlStructureV1"`
}

// Get returns the score held by slot.
func (s ScoreSlots) Get(slot Slot) *Score {
	switch slot {
	case SlotBranding:
		return s.Branding
	case SlotContentStructureV2:
		return s.ContentStructureV2
	case SlotURLStructureV1:
		return s.URLStructureV1
	default:
		return nil
	}
}

// Input is everything one analysis run needs.
type Input struct {
	Text  string
	Brand string
	URL   string
}

// Analyzer runs the three scorers over one input.
type Analyzer struct {
	Content *ContentScorer
	Brand   *BrandScorer
	URL     *URLScorer
}

// NewAnalyzer creates an Analyzer with default scorers
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		Content: NewContentScorer(),
		Brand:   NewBrandScorer(),
		URL:     NewURLScorer(),
	}
}

// Analyze builds a fresh ScoreSlots value for in.
func (a *Analyzer) Analyze(in Input) ScoreSlots {
	return ScoreSlots{
		Branding:           a.Brand.Compute(in.Brand, in.Text),
		ContentStructureV2: a.Content.Compute(in.Text),
		URLStructureV1:     a.URL.Compute(in.URL),
	}
}
