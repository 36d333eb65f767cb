package entity

import (
	"time"
)

// VESPAScores holds the five coaching-model scores on a 1-10 scale. A nil
// pointer means the score is missing for that cycle.
type VESPAScores struct {
	Vision   *float64 `json:"vision,omitempty"`
	Effort   *float64 `json:"effort,omitempty"`
	Systems  *float64 `json:"systems,omitempty"`
	Practice *float64 `json:"practice,omitempty"`
	Attitude *float64 `json:"attitude,omitempty"`
	Overall  *float64 `json:"overall,omitempty"`
}

// Element returns the score for a named element, or nil when the name is
// not one of the five elements or the score is absent.
func (v VESPAScores) Element(name string) *float64 {
	switch name {
	case "Vision":
		return v.Vision
	case "Effort":
		return v.Effort
	case "Systems":
		return v.Systems
	case "Practice":
		return v.Practice
	case "Attitude":
		return v.Attitude
	}
	return nil
}

// StudentSnapshot is everything the assembler knows about one student at the
// moment a coaching context is built. Any field may be missing; assembly
// degrades per-section rather than failing.
type StudentSnapshot struct {
	StudentID     string            `json:"student_id"`
	Name          string            `json:"name"`
	Email         string            `json:"email,omitempty"`
	Level         string            `json:"level"` // "Level 2" or "Level 3"
	Cycle         int               `json:"cycle"`
	SchoolID      string            `json:"school_id"`
	Scores        *VESPAScores      `json:"scores,omitempty"`
	Academic      *AcademicProfile  `json:"academic,omitempty"`
	Reflections   map[string]string `json:"reflections,omitempty"`
	Goals         []string          `json:"goals,omitempty"`
	Questionnaire []ScoredStatement `json:"questionnaire,omitempty"`
}

// ScoredStatement is one questionnaire statement with the student's 1-5
// response, tagged with the VESPA element it probes.
type ScoredStatement struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// ChatMessage is one turn in a coaching conversation. Id is the record
// store's identifier for the saved message.
type ChatMessage struct {
	Id        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Liked     bool      `json:"is_liked"`
	CreatedAt time.Time `json:"timestamp"`
}

// CohortAverages is the school-level mean of each VESPA element for one
// cycle, used to contrast a student against their cohort.
type CohortAverages struct {
	SchoolID   string    `json:"school_id"`
	Cycle      int       `json:"cycle"`
	Vision     float64   `json:"vision"`
	Effort     float64   `json:"effort"`
	Systems    float64   `json:"systems"`
	Practice   float64   `json:"practice"`
	Attitude   float64   `json:"attitude"`
	Overall    float64   `json:"overall"`
	SampleSize int       `json:"sample_size"`
	ComputedAt time.Time `json:"computed_at"`
}
