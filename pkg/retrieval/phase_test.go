package retrieval

import (
	"testing"

	"student-coach-be/pkg/knowledge"
)

func TestResolvePhase(t *testing.T) {
	tests := []struct {
		name     string
		turns    int
		explicit bool
		want     Phase
	}{
		{name: "first turn builds rapport", turns: 0, explicit: false, want: PhaseRapport},
		{name: "second turn still rapport", turns: 1, explicit: false, want: PhaseRapport},
		{name: "third turn explores", turns: 2, explicit: false, want: PhaseExploration},
		{name: "long conversation explores", turns: 50, explicit: false, want: PhaseExploration},
		{name: "explicit request on first turn", turns: 0, explicit: true, want: PhaseActivityEligible},
		{name: "explicit request late", turns: 9, explicit: true, want: PhaseActivityEligible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePhase(tt.turns, tt.explicit)
			if got != tt.want {
				t.Errorf("ResolvePhase(%d, %v) = %q, want %q", tt.turns, tt.explicit, got, tt.want)
			}
		})
	}
}

func TestResolvePhaseTotality(t *testing.T) {
	for turns := 0; turns <= 10; turns++ {
		for _, explicit := range []bool{false, true} {
			switch ResolvePhase(turns, explicit) {
			case PhaseRapport, PhaseExploration, PhaseActivityEligible:
			default:
				t.Fatalf("ResolvePhase(%d, %v) returned unknown phase", turns, explicit)
			}
		}
	}
}

func TestDetectActivityRequest(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Can you suggest an activity for vision?", true},
		{"Any worksheets on goal setting?", true},
		{"What can we do about her motivation?", true},
		{"She seems flat lately", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := DetectActivityRequest(tt.text); got != tt.want {
			t.Errorf("DetectActivityRequest(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func gatedFixture() []ScoredItem {
	return []ScoredItem{
		{Item: knowledge.Item{ID: "in-1", Kind: knowledge.KindInsight}, Score: 9, Kind: knowledge.KindInsight},
		{Item: knowledge.Item{ID: "act-1", Kind: knowledge.KindActivity, Element: "VISION"}, Score: 8, Kind: knowledge.KindActivity},
		{Item: knowledge.Item{ID: "act-2", Kind: knowledge.KindActivity, Element: "SYSTEMS"}, Score: 7, Kind: knowledge.KindActivity},
		{Item: knowledge.Item{ID: "act-3", Kind: knowledge.KindActivity, Element: "VISION"}, Score: 6, Kind: knowledge.KindActivity},
		{Item: knowledge.Item{ID: "q-1", Kind: knowledge.KindQuestion}, Score: 5, Kind: knowledge.KindQuestion},
	}
}

func TestGateActivitiesRapport(t *testing.T) {
	got := GateActivities(gatedFixture(), PhaseRapport, "VISION")
	for _, it := range got {
		if it.Kind == knowledge.KindActivity {
			t.Errorf("rapport phase surfaced activity %q", it.Item.ID)
		}
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2 non-activity items", len(got))
	}
}

func TestGateActivitiesEligible(t *testing.T) {
	got := GateActivities(gatedFixture(), PhaseActivityEligible, "VISION")

	var acts []string
	for _, it := range got {
		if it.Kind == knowledge.KindActivity {
			acts = append(acts, it.Item.ID)
		}
	}
	// Capped at two, and only the topic's own element passes; the
	// SYSTEMS activity is skipped even though it outscores act-3.
	if len(acts) != 2 || acts[0] != "act-1" || acts[1] != "act-3" {
		t.Errorf("activities = %v, want [act-1 act-3]", acts)
	}
}

func TestGateActivitiesExploration(t *testing.T) {
	got := GateActivities(gatedFixture(), PhaseExploration, "VISION")
	if len(got) != len(gatedFixture()) {
		t.Errorf("exploration should pass everything through, got %d of %d", len(got), len(gatedFixture()))
	}
}
