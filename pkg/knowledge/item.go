package knowledge

import "strings"

// Kind discriminates the four knowledge sources.
type Kind string

const (
	KindInsight   Kind = "insight"
	KindActivity  Kind = "activity"
	KindStatement Kind = "statement"
	KindQuestion  Kind = "question"
)

// Item is one entry of the knowledge catalogue. All four sources flatten
// into this shape; fields that a source does not carry stay empty.
type Item struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Keywords is the curator-assigned keyword list, already lowercased.
	Keywords []string `json:"keywords,omitempty"`
	// Element is the VESPA element facet in upper case ("VISION", ...),
	// empty for element-agnostic items.
	Element string `json:"vespa_element,omitempty"`
	// Level is the education level facet ("Level 2", "Level 3"), empty
	// for level-agnostic items.
	Level string `json:"level,omitempty"`
	// PDFLink is set on activities that ship a printable resource.
	PDFLink string `json:"pdf_link,omitempty"`
	// ScoreBand tags coaching questions with the score range they suit
	// ("High", "Medium", "Low").
	ScoreBand string `json:"score_band,omitempty"`
}

// Corpus returns the lowercased searchable text of the item: name,
// keyword list, description, and element, concatenated.
func (it Item) Corpus() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(it.Name))
	for _, kw := range it.Keywords {
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(kw))
	}
	b.WriteByte(' ')
	b.WriteString(strings.ToLower(it.Description))
	b.WriteByte(' ')
	b.WriteString(strings.ToLower(it.Element))
	return b.String()
}

// HasResource reports whether the item links a usable PDF resource.
func (it Item) HasResource() bool {
	return it.PDFLink != "" && it.PDFLink != "#"
}

// Catalogue holds the four immutable knowledge sources. It is built once at
// startup and only ever read afterwards; components receive it by pointer
// and must not mutate it.
type Catalogue struct {
	Insights   []Item
	Activities []Item
	Statements []Item
	Questions  []Item
}

// Source returns the item list for one kind, in catalogue order.
func (c *Catalogue) Source(kind Kind) []Item {
	switch kind {
	case KindInsight:
		return c.Insights
	case KindActivity:
		return c.Activities
	case KindStatement:
		return c.Statements
	case KindQuestion:
		return c.Questions
	}
	return nil
}

// Kinds lists every source kind in the catalogue's canonical order.
func Kinds() []Kind {
	return []Kind{KindInsight, KindActivity, KindStatement, KindQuestion}
}

// Empty reports whether no source loaded any items.
func (c *Catalogue) Empty() bool {
	return len(c.Insights) == 0 && len(c.Activities) == 0 &&
		len(c.Statements) == 0 && len(c.Questions) == 0
}
