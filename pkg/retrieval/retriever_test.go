package retrieval

import (
	"reflect"
	"testing"

	"student-coach-be/internal/pkg/logger"
	"student-coach-be/pkg/knowledge"
)

func testCatalogue() *knowledge.Catalogue {
	return &knowledge.Catalogue{
		Insights: []knowledge.Item{
			{ID: "in-1", Kind: knowledge.KindInsight, Name: "Growth Mindset", Description: "Ability grows with effort.", Keywords: []string{"mindset", "resilience"}},
			{ID: "in-2", Kind: knowledge.KindInsight, Name: "Spaced Repetition", Description: "Revisiting material over time improves recall.", Keywords: []string{"memory", "revision"}},
			{ID: "in-3", Kind: knowledge.KindInsight, Name: "Ikigai", Description: "Purpose mapping for motivation.", Keywords: []string{"purpose", "motivation"}},
		},
		Activities: []knowledge.Item{
			{ID: "act-1", Kind: knowledge.KindActivity, Name: "Ikigai", Description: "Connect studies to personal purpose.", Keywords: []string{"purpose", "motivation"}, Element: "VISION", Level: "Level 3"},
			{ID: "act-2", Kind: knowledge.KindActivity, Name: "Weekly Planner", Description: "Build a study schedule.", Keywords: []string{"planning", "schedule"}, Element: "SYSTEMS", Level: "Level 2"},
			{ID: "act-3", Kind: knowledge.KindActivity, Name: "Dream Board", Description: "Visualise long term goals.", Keywords: []string{"goals", "future"}, Element: "VISION"},
		},
		Statements: []knowledge.Item{
			{ID: "st-1", Kind: knowledge.KindStatement, Name: "I know why my studies matter to my future."},
			{ID: "st-2", Kind: knowledge.KindStatement, Name: "I plan my revision in advance."},
		},
		Questions: []knowledge.Item{
			{ID: "q-1", Kind: knowledge.KindQuestion, Name: "Where do you want to be in five years?", Element: "VISION", Level: "Level 3", ScoreBand: "Low"},
			{ID: "q-2", Kind: knowledge.KindQuestion, Name: "How do you organise your week?", Element: "SYSTEMS", Level: "Level 3", ScoreBand: "Medium"},
		},
	}
}

func newTestRetriever() *Retriever {
	return NewRetriever(testCatalogue(), logger.NewNopLogger())
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "stop words and short tokens dropped",
			text: "Can you help me with my student's motivation?",
			want: []string{"motivation"},
		},
		{
			name: "punctuation stripped",
			text: `She said: "revision, revision."`,
			want: []string{"said:", "revision", "revision"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "all stop words",
			text: "can you give me some ideas",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractKeywords(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectElement(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Struggling with homework (vision related)", "VISION"},
		{"this looks effort related to me", "EFFORT"},
		{"no element here", ""},
		{"(SYSTEMS related) cannot keep a planner", "SYSTEMS"},
	}
	for _, tt := range tests {
		if got := DetectElement(tt.text); got != tt.want {
			t.Errorf("DetectElement(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestRetrieveRanksNameMatchFirst(t *testing.T) {
	r := newTestRetriever()
	got := r.Retrieve(Query{RawText: "Any thoughts on the ikigai exercise for motivation?"})

	if len(got) == 0 {
		t.Fatal("Retrieve returned nothing")
	}
	// Both the insight and the activity named Ikigai match on name; they
	// must outrank description-only matches.
	if got[0].Item.Name != "Ikigai" {
		t.Errorf("top item = %q, want Ikigai", got[0].Item.Name)
	}
	for _, it := range got {
		if it.Score <= scoreThreshold {
			t.Errorf("item %q surfaced with score %v at or below threshold", it.Item.ID, it.Score)
		}
	}
}

func TestRetrieveDeterminism(t *testing.T) {
	r := newTestRetriever()
	q := Query{RawText: "How can I help with revision planning and motivation?", Level: "Level 3"}

	first := r.Retrieve(q)
	for i := 0; i < 5; i++ {
		again := r.Retrieve(q)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, again)
		}
	}
}

func TestRetrieveCaps(t *testing.T) {
	r := newTestRetriever()
	// A broad query touching every source.
	got := r.Retrieve(Query{RawText: "motivation revision planner purpose goals organise studies future week", Level: "Level 3"})

	if len(got) > totalCap {
		t.Fatalf("len = %d, exceeds total cap %d", len(got), totalCap)
	}
	counts := map[knowledge.Kind]int{}
	for _, it := range got {
		counts[it.Kind]++
	}
	for kind, n := range counts {
		if n > perSourceCap[kind] {
			t.Errorf("%s count = %d, exceeds per-source cap %d", kind, n, perSourceCap[kind])
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("result not sorted by score: %v after %v", got[i].Score, got[i-1].Score)
		}
	}
}

func TestRetrieveNoOverlapReturnsEmpty(t *testing.T) {
	r := newTestRetriever()
	got := r.Retrieve(Query{RawText: "quantum chromodynamics homework"})
	if len(got) != 0 {
		t.Errorf("Retrieve = %+v, want empty", got)
	}
}

func TestRetrieveFacetOnlyMatch(t *testing.T) {
	r := newTestRetriever()
	// No keyword overlap, but the element marker tags the topic; facet
	// matches alone clear the threshold.
	got := r.Retrieve(Query{RawText: "xyzzy (vision related)"})
	if len(got) == 0 {
		t.Fatal("Retrieve returned nothing for facet-only query")
	}
	for _, it := range got {
		if it.Item.Element != "VISION" {
			t.Errorf("facet-only result includes %q with element %q", it.Item.ID, it.Item.Element)
		}
	}
}

func TestRetrieveLevelAffinity(t *testing.T) {
	r := newTestRetriever()
	got := r.Retrieve(Query{RawText: "goals purpose future (vision related)", Level: "Level 3"})

	var actNames []string
	for _, it := range got {
		if it.Kind == knowledge.KindActivity {
			actNames = append(actNames, it.Item.Name)
		}
	}
	if len(actNames) < 2 {
		t.Fatalf("expected at least two vision activities, got %v", actNames)
	}
	// Ikigai is an exact level match and must outrank the level-agnostic
	// Dream Board.
	if actNames[0] != "Ikigai" {
		t.Errorf("first activity = %q, want exact-level Ikigai", actNames[0])
	}
}
