package retrieval

import (
	"strings"

	"student-coach-be/pkg/knowledge"
)

// ============================================================================
// CONVERSATION PHASE GATE
// ============================================================================

// Phase controls whether activity suggestions may surface this turn.
type Phase string

const (
	// PhaseRapport is the opening of a conversation: activities are
	// excluded so the tutor builds rapport before prescribing tasks.
	PhaseRapport Phase = "rapport"
	// PhaseExploration allows activities as soft offers only.
	PhaseExploration Phase = "exploration"
	// PhaseActivityEligible allows direct activity suggestions, capped
	// tightly and restricted to the topic's own element.
	PhaseActivityEligible Phase = "activity_eligible"
)

// rapportTurnThreshold is the number of prior user turns below which the
// conversation is still in rapport building.
const rapportTurnThreshold = 2

// ResolvePhase derives the conversation phase for one turn. It is a pure
// function of the caller-supplied history length and request signal; no
// state is kept between calls, so the core never owns session storage.
func ResolvePhase(priorUserTurns int, explicitRequest bool) Phase {
	if explicitRequest {
		return PhaseActivityEligible
	}
	if priorUserTurns < rapportTurnThreshold {
		return PhaseRapport
	}
	return PhaseExploration
}

// activityRequestMarkers are phrases that signal the tutor is explicitly
// asking for something to do with the student, not just talking.
var activityRequestMarkers = []string{
	"activity", "activities", "exercise", "exercises", "worksheet",
	"task", "tasks", "resource", "resources", "something to do",
	"something we can do", "what can we do",
}

// DetectActivityRequest reports whether the message explicitly asks for an
// activity.
func DetectActivityRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range activityRequestMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// activityEligibleCap is the tighter activity bound applied when the tutor
// explicitly asked for one.
const activityEligibleCap = 2

// GateActivities applies the phase rules to a retrieval result, returning
// the items that may be surfaced this turn. Non-activity items always pass.
func GateActivities(items []ScoredItem, phase Phase, topicTag string) []ScoredItem {
	out := make([]ScoredItem, 0, len(items))
	activities := 0
	for _, it := range items {
		if it.Kind != knowledge.KindActivity {
			out = append(out, it)
			continue
		}
		switch phase {
		case PhaseRapport:
			// dropped regardless of score
		case PhaseActivityEligible:
			// Only activities whose element matches the topic tag;
			// with no tag, only element-agnostic ones qualify.
			if activities < activityEligibleCap && it.Item.Element == topicTag {
				out = append(out, it)
				activities++
			}
		default:
			out = append(out, it)
			activities++
		}
	}
	return out
}
