package service

import (
	"context"
	"testing"

	"student-coach-be/internal/dto"
	"student-coach-be/internal/entity"
	"student-coach-be/internal/pkg/logger"
	"student-coach-be/pkg/benchmark"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver() *benchmark.Resolver {
	return benchmark.NewResolver(benchmark.GradePointsTable{}, benchmark.TableSet{}, logger.NewNopLogger())
}

func testSnapshot() *entity.StudentSnapshot {
	return &entity.StudentSnapshot{
		StudentID: "stu-1",
		Name:      "Alex Smith",
		Email:     "alex@example.com",
		Level:     "Level 3",
		Cycle:     2,
		SchoolID:  "school-1",
		Scores: &entity.VESPAScores{
			Vision:  floatPtr(7),
			Effort:  floatPtr(3),
			Systems: floatPtr(5),
			Overall: floatPtr(5),
		},
		Reflections: map[string]string{"rrc2_comment": "I want to improve my revision."},
		Goals:       []string{"Revise twice a week"},
	}
}

func TestGetCoachingDataAssemblesBriefing(t *testing.T) {
	students := &fakeStudentRepo{
		snapshot: testSnapshot(),
		summary:  "Previous overview.",
		questionnaire: []entity.ScoredStatement{
			{Text: "I plan my week", Category: "SYSTEMS", Score: 1},
			{Text: "I know my goals", Category: "VISION", Score: 5},
			{Text: "I keep trying", Category: "EFFORT", Score: 3},
			{Text: "I test myself", Category: "PRACTICE", Score: 2},
		},
	}
	cohorts := &fakeCohortRepo{averages: &entity.CohortAverages{SchoolID: "school-1", Vision: 6.1, Effort: 5.4}}
	provider := &fakeProvider{response: `{
		"student_overview_summary": "Alex works hard but lacks structure.",
		"chart_comparative_insights": "Effort is below the school average.",
		"most_important_coaching_questions": ["What does a good week look like?"],
		"student_comment_analysis": "Motivated to improve revision.",
		"suggested_student_goals": ["Build a weekly plan"],
		"academic_benchmark_analysis": "On track against MEGs.",
		"questionnaire_interpretation_and_reflection_summary": "Low systems responses."
	}`}

	svc := NewCoachingService(students, cohorts, newTestResolver(), provider, "gpt-3.5-turbo", logger.NewNopLogger())
	res, err := svc.GetCoachingData(context.Background(), &dto.CoachingDataRequest{StudentID: "stu-1"})
	require.NoError(t, err)

	assert.Equal(t, "Alex Smith", res.StudentName)
	assert.Equal(t, "Level 3", res.StudentLevel)
	assert.Equal(t, 2, res.CurrentCycle)
	assert.Equal(t, "Previous overview.", res.PreviousSummary)
	assert.Equal(t, "Alex works hard but lacks structure.", res.Insights.StudentOverviewSummary)

	// The model call is constrained to a deterministic JSON response.
	assert.Equal(t, 0.5, provider.lastOptions.Temperature)
	assert.Equal(t, 700, provider.lastOptions.MaxTokens)
	assert.True(t, provider.lastOptions.JSONMode)

	// A usable overview is written back for the next session.
	assert.True(t, students.saveCalled)
	assert.Equal(t, "Alex works hard but lacks structure.", students.savedSummary)

	// Profile details carry the score band and cohort comparison.
	vision := res.VespaProfile["Vision"]
	assert.Equal(t, float64(7), vision.Score)
	assert.NotEmpty(t, vision.Band)
	assert.Equal(t, 6.1, vision.CohortAverage)

	// Missing scores render as N/A rather than being dropped.
	practice := res.VespaProfile["Practice"]
	assert.Equal(t, "N/A", practice.Score)
}

func TestGetCoachingDataSnapshotErrorFailsRequest(t *testing.T) {
	students := &fakeStudentRepo{}
	svc := NewCoachingService(students, &fakeCohortRepo{}, newTestResolver(), &fakeProvider{}, "gpt-3.5-turbo", logger.NewNopLogger())

	_, err := svc.GetCoachingData(context.Background(), &dto.CoachingDataRequest{StudentID: "missing"})
	require.Error(t, err)
}

func TestGetCoachingDataModelFailureYieldsErrorInsights(t *testing.T) {
	students := &fakeStudentRepo{snapshot: testSnapshot()}
	provider := &fakeProvider{err: context.DeadlineExceeded}

	svc := NewCoachingService(students, &fakeCohortRepo{}, newTestResolver(), provider, "gpt-3.5-turbo", logger.NewNopLogger())
	res, err := svc.GetCoachingData(context.Background(), &dto.CoachingDataRequest{StudentID: "stu-1"})
	require.NoError(t, err)

	assert.Contains(t, res.Insights.StudentOverviewSummary, "Error")
	assert.Contains(t, res.Insights.AcademicBenchmarkAnalysis, "Error")
	assert.NotEmpty(t, res.Insights.MostImportantQuestions)

	// Error text must never overwrite the stored summary.
	assert.False(t, students.saveCalled)
}

func TestGetCoachingDataFillsMissingInsightKeys(t *testing.T) {
	students := &fakeStudentRepo{snapshot: testSnapshot()}
	provider := &fakeProvider{response: `{"student_overview_summary": "Solid progress this cycle."}`}

	svc := NewCoachingService(students, &fakeCohortRepo{}, newTestResolver(), provider, "gpt-3.5-turbo", logger.NewNopLogger())
	res, err := svc.GetCoachingData(context.Background(), &dto.CoachingDataRequest{StudentID: "stu-1"})
	require.NoError(t, err)

	assert.Equal(t, "Solid progress this cycle.", res.Insights.StudentOverviewSummary)
	assert.Contains(t, res.Insights.ChartComparativeInsights, "did not provide")
	assert.Contains(t, res.Insights.QuestionnaireInterpretation, "did not provide")
	assert.True(t, students.saveCalled)
}

func TestQuestionnaireHighlights(t *testing.T) {
	statements := []entity.ScoredStatement{
		{Text: "q1", Category: "VISION", Score: 4},
		{Text: "q2", Category: "EFFORT", Score: 1},
		{Text: "q3", Category: "SYSTEMS", Score: 5},
		{Text: "q4", Category: "PRACTICE", Score: 2},
		{Text: "q5", Category: "ATTITUDE", Score: 3},
	}

	highlights := questionnaireHighlights(statements)

	require.Len(t, highlights.Bottom3, 3)
	require.Len(t, highlights.Top3, 3)
	assert.Equal(t, "q2", highlights.Bottom3[0].Text)
	assert.Equal(t, "q4", highlights.Bottom3[1].Text)
	assert.Equal(t, "q3", highlights.Top3[0].Text)
	assert.Equal(t, "q1", highlights.Top3[1].Text)
}

func TestQuestionnaireHighlightsEmpty(t *testing.T) {
	highlights := questionnaireHighlights(nil)
	assert.Empty(t, highlights.Top3)
	assert.Empty(t, highlights.Bottom3)
}

func TestInsightUsable(t *testing.T) {
	tests := []struct {
		name    string
		summary string
		want    bool
	}{
		{"normal summary", "Alex is making good progress.", true},
		{"empty", "", false},
		{"error text", "Error generating insights from the model.", false},
		{"unavailable text", "Insights are unavailable right now.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, insightUsable(tt.summary))
		})
	}
}
