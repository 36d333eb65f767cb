package dto

// --- Chat ---

type ChatHistoryMessage struct {
	Id        string `json:"id,omitempty"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	IsLiked   bool   `json:"is_liked,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// InitialChatContext carries previously generated insights forward into a
// chat session so the model does not start cold.
type InitialChatContext struct {
	StudentName                 string `json:"student_name,omitempty"`
	StudentLevel                string `json:"student_level,omitempty"`
	StudentOverviewSummary      string `json:"student_overview_summary,omitempty"`
	AcademicBenchmarkAnalysis   string `json:"academic_benchmark_analysis,omitempty"`
	QuestionnaireInterpretation string `json:"questionnaire_interpretation_and_reflection_summary,omitempty"`
}

type ChatTurnRequest struct {
	StudentID string               `json:"student_id" validate:"required"`
	Message   string               `json:"message" validate:"required"`
	History   []ChatHistoryMessage `json:"chat_history,omitempty"`
	Context   *InitialChatContext  `json:"initial_context,omitempty"`
}

// SuggestedActivity is an activity surfaced alongside the reply so the UI
// can link its resource.
type SuggestedActivity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Element string `json:"vespa_element,omitempty"`
	Level   string `json:"level,omitempty"`
	PDFLink string `json:"pdf_link,omitempty"`
}

type ChatTurnResponse struct {
	AIResponse          string              `json:"ai_response"`
	SuggestedActivities []SuggestedActivity `json:"suggested_activities_in_chat"`
	MessageID           string              `json:"ai_message_id,omitempty"`
}

type ChatHistoryRequest struct {
	StudentID   string `json:"student_id" validate:"required"`
	MaxMessages int    `json:"max_messages,omitempty"`
}

type ChatHistoryResponse struct {
	ChatHistory []ChatHistoryMessage `json:"chat_history"`
	TotalCount  int                  `json:"total_count"`
	LikedCount  int                  `json:"liked_count"`
	Summary     string               `json:"summary,omitempty"`
}

type UpdateChatLikeRequest struct {
	MessageID string `json:"message_id" validate:"required"`
	IsLiked   *bool  `json:"is_liked" validate:"required"`
}

type ClearOldChatsRequest struct {
	StudentID   string `json:"student_id" validate:"required"`
	KeepLiked   *bool  `json:"keep_liked,omitempty"`
	TargetCount int    `json:"target_count,omitempty"`
}

type ClearOldChatsResponse struct {
	DeletedCount   int      `json:"deleted_count"`
	RemainingCount int      `json:"remaining_count"`
	DeletedIDs     []string `json:"deleted_ids,omitempty"`
}
