package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"student-coach-be/internal/constant"
	"student-coach-be/internal/dto"
	"student-coach-be/internal/entity"
	"student-coach-be/internal/pkg/logger"
	"student-coach-be/internal/repository/contract"
	"student-coach-be/pkg/benchmark"
	"student-coach-be/pkg/coachctx"
	"student-coach-be/pkg/llm"
)

// ICoachingService builds the full coaching briefing for one student.
type ICoachingService interface {
	GetCoachingData(ctx context.Context, request *dto.CoachingDataRequest) (*dto.CoachingDataResponse, error)
}

type coachingService struct {
	students  contract.StudentRepository
	cohorts   contract.CohortRepository
	resolver  *benchmark.Resolver
	provider  llm.LLMProvider
	log       logger.ILogger
	chatModel string
}

func NewCoachingService(
	students contract.StudentRepository,
	cohorts contract.CohortRepository,
	resolver *benchmark.Resolver,
	provider llm.LLMProvider,
	chatModel string,
	log logger.ILogger,
) ICoachingService {
	return &coachingService{
		students:  students,
		cohorts:   cohorts,
		resolver:  resolver,
		provider:  provider,
		log:       log,
		chatModel: chatModel,
	}
}

func (s *coachingService) GetCoachingData(ctx context.Context, request *dto.CoachingDataRequest) (*dto.CoachingDataResponse, error) {
	snapshot, err := s.students.GetSnapshot(ctx, request.StudentID)
	if err != nil {
		return nil, fmt.Errorf("get coaching data: %w", err)
	}

	// School averages are best-effort: the briefing still works without
	// a cohort comparison.
	var cohort *entity.CohortAverages
	if snapshot.SchoolID != "" {
		cohort, err = s.cohorts.Averages(ctx, snapshot.SchoolID)
		if err != nil {
			s.log.Warn("coaching_service", "Could not compute school averages", map[string]interface{}{
				"school_id": snapshot.SchoolID,
				"error":     err.Error(),
			})
		}
	}

	academic, err := s.students.GetAcademicProfile(ctx, snapshot.Email, snapshot.Name)
	if err != nil {
		s.log.Warn("coaching_service", "Could not fetch academic profile", map[string]interface{}{
			"student_id": request.StudentID,
			"error":      err.Error(),
		})
		academic = &entity.AcademicProfile{}
	}
	snapshot.Academic = academic
	benchmarks := s.resolver.ResolveProfile(*academic)

	questionnaire, err := s.students.GetQuestionnaire(ctx, request.StudentID, snapshot.Cycle)
	if err != nil {
		s.log.Warn("coaching_service", "Could not fetch questionnaire", map[string]interface{}{
			"student_id": request.StudentID,
			"cycle":      snapshot.Cycle,
			"error":      err.Error(),
		})
	}
	snapshot.Questionnaire = questionnaire
	highlights := questionnaireHighlights(questionnaire)

	previousSummary, err := s.students.GetCoachingSummary(ctx, request.StudentID)
	if err != nil {
		previousSummary = ""
	}

	insights := s.generateInsights(ctx, snapshot, cohort, &benchmarks, highlights)

	// Persist the fresh overview so the next chat session starts warm.
	if insightUsable(insights.StudentOverviewSummary) {
		if err := s.students.SaveCoachingSummary(ctx, request.StudentID, insights.StudentOverviewSummary); err != nil {
			s.log.Warn("coaching_service", "Could not save coaching summary", map[string]interface{}{
				"student_id": request.StudentID,
				"error":      err.Error(),
			})
		}
	}

	return &dto.CoachingDataResponse{
		StudentName:        snapshot.Name,
		StudentLevel:       snapshot.Level,
		CurrentCycle:       snapshot.Cycle,
		VespaProfile:       vespaProfile(snapshot.Scores, cohort),
		SchoolAverages:     cohort,
		AcademicBenchmarks: &benchmarks,
		Reflections:        snapshot.Reflections,
		Goals:              snapshot.Goals,
		QuestionHighlights: highlights,
		AllScoredResponses: questionnaire,
		Insights:           insights,
		PreviousSummary:    previousSummary,
	}, nil
}

// generateInsights asks the model for the structured tutor briefing. The
// call is bounded and never fails the request: any failure yields the
// error-filled structure instead.
func (s *coachingService) generateInsights(
	ctx context.Context,
	snapshot *entity.StudentSnapshot,
	cohort *entity.CohortAverages,
	benchmarks *benchmark.ProfileBenchmark,
	highlights dto.QuestionHighlights,
) dto.StructuredInsights {
	payload := map[string]interface{}{
		"student_name":             snapshot.Name,
		"student_level":            snapshot.Level,
		"current_cycle":            snapshot.Cycle,
		"vespa_profile":            vespaProfile(snapshot.Scores, cohort),
		"school_vespa_averages":    cohort,
		"academic_benchmarks":      benchmarks,
		"reflections_and_goals":    map[string]interface{}{"reflections": snapshot.Reflections, "goals": snapshot.Goals},
		"questionnaire_highlights": highlights,
	}
	serialized, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		s.log.Error("coaching_service", "Could not serialize student data for the model", map[string]interface{}{
			"error": err.Error(),
		})
		return errorInsights("Error: could not prepare student data.")
	}

	messages := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: fmt.Sprintf(constant.InsightsSystemPromptTemplate, orUnknown(snapshot.Level), orUnknown(snapshot.Name))},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(constant.InsightsUserPromptTemplate, string(serialized))},
	}

	raw, err := s.provider.Chat(ctx, messages,
		llm.WithModel(s.chatModel),
		llm.WithTemperature(0.5),
		llm.WithMaxTokens(700),
		llm.WithJSONMode(),
	)
	if err != nil {
		s.log.Error("coaching_service", "Insights generation failed", map[string]interface{}{
			"student_id": snapshot.StudentID,
			"error":      err.Error(),
		})
		return errorInsights("Error generating insights from the model.")
	}

	var insights dto.StructuredInsights
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &insights); err != nil {
		s.log.Error("coaching_service", "Insights response was not valid JSON", map[string]interface{}{
			"student_id": snapshot.StudentID,
			"error":      err.Error(),
		})
		return errorInsights("Error parsing the model response.")
	}

	// Every key must be present for the frontend; fill gaps explicitly.
	fillMissingInsights(&insights)
	return insights
}

func errorInsights(message string) dto.StructuredInsights {
	return dto.StructuredInsights{
		StudentOverviewSummary:      message,
		ChartComparativeInsights:    message,
		MostImportantQuestions:      []string{message},
		StudentCommentAnalysis:      message,
		SuggestedStudentGoals:       []string{message},
		AcademicBenchmarkAnalysis:   message,
		QuestionnaireInterpretation: message,
	}
}

func fillMissingInsights(in *dto.StructuredInsights) {
	const missing = "Error: the model did not provide this section."
	if in.StudentOverviewSummary == "" {
		in.StudentOverviewSummary = missing
	}
	if in.ChartComparativeInsights == "" {
		in.ChartComparativeInsights = missing
	}
	if len(in.MostImportantQuestions) == 0 {
		in.MostImportantQuestions = []string{missing}
	}
	if in.StudentCommentAnalysis == "" {
		in.StudentCommentAnalysis = missing
	}
	if len(in.SuggestedStudentGoals) == 0 {
		in.SuggestedStudentGoals = []string{missing}
	}
	if in.AcademicBenchmarkAnalysis == "" {
		in.AcademicBenchmarkAnalysis = missing
	}
	if in.QuestionnaireInterpretation == "" {
		in.QuestionnaireInterpretation = missing
	}
}

// insightUsable reports whether a generated overview is worth persisting.
func insightUsable(summary string) bool {
	lower := strings.ToLower(summary)
	return summary != "" && !strings.Contains(lower, "error") && !strings.Contains(lower, "unavailable")
}

func vespaProfile(scores *entity.VESPAScores, cohort *entity.CohortAverages) map[string]dto.VESPAElementDetail {
	profile := map[string]dto.VESPAElementDetail{}
	if scores == nil {
		return profile
	}
	elements := map[string]*float64{
		"Vision":   scores.Vision,
		"Effort":   scores.Effort,
		"Systems":  scores.Systems,
		"Practice": scores.Practice,
		"Attitude": scores.Attitude,
		"Overall":  scores.Overall,
	}
	for name, score := range elements {
		detail := dto.VESPAElementDetail{Score: "N/A", Band: "N/A"}
		if score != nil {
			detail.Score = *score
			detail.Band = coachctx.ScoreBandText(*score)
		}
		if cohort != nil {
			detail.CohortAverage = cohortElement(cohort, name)
		}
		profile[name] = detail
	}
	return profile
}

func cohortElement(cohort *entity.CohortAverages, name string) float64 {
	switch name {
	case "Vision":
		return cohort.Vision
	case "Effort":
		return cohort.Effort
	case "Systems":
		return cohort.Systems
	case "Practice":
		return cohort.Practice
	case "Attitude":
		return cohort.Attitude
	case "Overall":
		return cohort.Overall
	}
	return 0
}

// questionnaireHighlights picks the three lowest- and highest-scored
// statements as session talking points.
func questionnaireHighlights(statements []entity.ScoredStatement) dto.QuestionHighlights {
	highlights := dto.QuestionHighlights{
		Top3:    []dto.QuestionHighlight{},
		Bottom3: []dto.QuestionHighlight{},
	}
	if len(statements) == 0 {
		return highlights
	}

	sorted := make([]entity.ScoredStatement, len(statements))
	copy(sorted, statements)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })

	for i := 0; i < len(sorted) && i < 3; i++ {
		highlights.Bottom3 = append(highlights.Bottom3, dto.QuestionHighlight{
			Text:     sorted[i].Text,
			Score:    sorted[i].Score,
			Category: sorted[i].Category,
		})
	}
	for i := 0; i < len(sorted) && i < 3; i++ {
		q := sorted[len(sorted)-1-i]
		highlights.Top3 = append(highlights.Top3, dto.QuestionHighlight{
			Text:     q.Text,
			Score:    q.Score,
			Category: q.Category,
		})
	}
	return highlights
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
