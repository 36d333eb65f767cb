package dto

import (
	"student-coach-be/internal/entity"
	"student-coach-be/pkg/benchmark"
)

// --- Coaching Data ---

type CoachingDataRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

// VESPAElementDetail is one element's slice of the coaching profile.
type VESPAElementDetail struct {
	Score         interface{} `json:"score_1_to_10"` // number or "N/A"
	Band          string      `json:"score_band"`    // High / Medium / Low / Very Low / N/A
	CohortAverage float64     `json:"cohort_average,omitempty"`
}

// QuestionHighlight is one questionnaire statement surfaced as a talking
// point.
type QuestionHighlight struct {
	Text     string `json:"text"`
	Score    int    `json:"score"`
	Category string `json:"category"`
}

type QuestionHighlights struct {
	Top3    []QuestionHighlight `json:"top_3"`
	Bottom3 []QuestionHighlight `json:"bottom_3"`
}

// StructuredInsights is the model-generated briefing for the tutor. Every
// key is always present; failed generation fills them with error text.
type StructuredInsights struct {
	StudentOverviewSummary      string   `json:"student_overview_summary"`
	ChartComparativeInsights    string   `json:"chart_comparative_insights"`
	MostImportantQuestions      []string `json:"most_important_coaching_questions"`
	StudentCommentAnalysis      string   `json:"student_comment_analysis"`
	SuggestedStudentGoals       []string `json:"suggested_student_goals"`
	AcademicBenchmarkAnalysis   string   `json:"academic_benchmark_analysis"`
	QuestionnaireInterpretation string   `json:"questionnaire_interpretation_and_reflection_summary"`
}

type CoachingDataResponse struct {
	StudentName        string                        `json:"student_name"`
	StudentLevel       string                        `json:"student_level"`
	CurrentCycle       int                           `json:"current_cycle"`
	VespaProfile       map[string]VESPAElementDetail `json:"vespa_profile"`
	SchoolAverages     *entity.CohortAverages        `json:"school_vespa_averages,omitempty"`
	AcademicBenchmarks *benchmark.ProfileBenchmark   `json:"academic_benchmarks,omitempty"`
	Reflections        map[string]string             `json:"student_reflections,omitempty"`
	Goals              []string                      `json:"student_goals,omitempty"`
	QuestionHighlights QuestionHighlights            `json:"questionnaire_highlights"`
	AllScoredResponses []entity.ScoredStatement      `json:"all_scored_questionnaire_statements,omitempty"`
	Insights           StructuredInsights            `json:"llm_generated_insights"`
	PreviousSummary    string                        `json:"previous_interaction_summary,omitempty"`
}
