package service

import (
	"context"
	"fmt"
	"strings"

	"student-coach-be/internal/constant"
	"student-coach-be/internal/dto"
	"student-coach-be/internal/entity"
	"student-coach-be/internal/pkg/logger"
	"student-coach-be/internal/repository/contract"
	"student-coach-be/pkg/coachctx"
	"student-coach-be/pkg/knowledge"
	"student-coach-be/pkg/llm"
	"student-coach-be/pkg/retrieval"

	"github.com/google/uuid"
)

const (
	defaultHistoryLimit     = 50
	defaultClearTargetCount = 150
)

// IChatService handles the tutor-facing coaching conversation.
type IChatService interface {
	SendTurn(ctx context.Context, request *dto.ChatTurnRequest) (*dto.ChatTurnResponse, error)
	History(ctx context.Context, request *dto.ChatHistoryRequest) (*dto.ChatHistoryResponse, error)
	UpdateLike(ctx context.Context, request *dto.UpdateChatLikeRequest) error
	ClearOldChats(ctx context.Context, request *dto.ClearOldChatsRequest) (*dto.ClearOldChatsResponse, error)
}

type chatService struct {
	students  contract.StudentRepository
	chats     contract.ChatLogRepository
	retriever *retrieval.Retriever
	assembler *coachctx.Assembler
	provider  llm.LLMProvider
	log       logger.ILogger
	chatModel string
}

func NewChatService(
	students contract.StudentRepository,
	chats contract.ChatLogRepository,
	retriever *retrieval.Retriever,
	assembler *coachctx.Assembler,
	provider llm.LLMProvider,
	chatModel string,
	log logger.ILogger,
) IChatService {
	return &chatService{
		students:  students,
		chats:     chats,
		retriever: retriever,
		assembler: assembler,
		provider:  provider,
		log:       log,
		chatModel: chatModel,
	}
}

func (s *chatService) SendTurn(ctx context.Context, request *dto.ChatTurnRequest) (*dto.ChatTurnResponse, error) {
	turnID := uuid.NewString()
	s.log.Info("chat_service", "Chat turn received", map[string]interface{}{
		"turn_id":    turnID,
		"student_id": request.StudentID,
		"history":    len(request.History),
	})

	// The tutor's message is logged before generation so it survives a
	// failed model call.
	if _, err := s.chats.SaveMessage(ctx, request.StudentID, constant.ChatMessageRoleUser, request.Message); err != nil {
		s.log.Warn("chat_service", "Could not persist tutor message", map[string]interface{}{
			"turn_id": turnID,
			"error":   err.Error(),
		})
	}

	snapshot := s.loadSnapshot(ctx, request)

	topic := retrieval.DetectElement(request.Message)
	explicit := retrieval.DetectActivityRequest(request.Message)
	phase := retrieval.ResolvePhase(priorUserTurns(request.History), explicit)

	retrieved := s.retriever.Retrieve(retrieval.Query{
		RawText:  request.Message,
		TopicTag: topic,
		Level:    snapshot.Level,
	})

	assembled := s.assembler.Assemble(coachctx.Input{
		Snapshot:  snapshot,
		Retrieved: retrieved,
		Phase:     phase,
		TopicTag:  topic,
	})

	messages := s.buildMessages(request, snapshot, assembled)

	reply, err := s.provider.Chat(ctx, messages,
		llm.WithModel(s.chatModel),
		llm.WithTemperature(0.65),
		llm.WithMaxTokens(350),
	)
	if err != nil {
		s.log.Error("chat_service", "Chat generation failed", map[string]interface{}{
			"turn_id": turnID,
			"error":   err.Error(),
		})
		reply = "An error occurred while generating my response. Please try again."
	}

	messageID, err := s.chats.SaveMessage(ctx, request.StudentID, constant.ChatMessageRoleAssistant, reply)
	if err != nil {
		s.log.Warn("chat_service", "Could not persist assistant message", map[string]interface{}{
			"turn_id": turnID,
			"error":   err.Error(),
		})
	}

	return &dto.ChatTurnResponse{
		AIResponse:          reply,
		SuggestedActivities: suggestedActivities(retrieved, phase, topic),
		MessageID:           messageID,
	}, nil
}

// loadSnapshot prefers the caller-provided context and falls back to the
// record store; chat still works with an anonymous snapshot.
func (s *chatService) loadSnapshot(ctx context.Context, request *dto.ChatTurnRequest) *entity.StudentSnapshot {
	snapshot, err := s.students.GetSnapshot(ctx, request.StudentID)
	if err != nil {
		s.log.Warn("chat_service", "Could not fetch student snapshot for chat", map[string]interface{}{
			"student_id": request.StudentID,
			"error":      err.Error(),
		})
		snapshot = &entity.StudentSnapshot{StudentID: request.StudentID}
	}
	if request.Context != nil {
		if snapshot.Name == "" {
			snapshot.Name = request.Context.StudentName
		}
		if snapshot.Level == "" {
			snapshot.Level = request.Context.StudentLevel
		}
	}
	return snapshot
}

func (s *chatService) buildMessages(request *dto.ChatTurnRequest, snapshot *entity.StudentSnapshot, assembled string) []llm.Message {
	name := snapshot.Name
	if name == "" {
		name = "the student"
	}
	level := snapshot.Level
	if level == "" {
		level = "unknown"
	}

	messages := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: fmt.Sprintf(constant.ChatSystemPromptTemplate, name, level)},
	}

	var preamble strings.Builder
	if request.Context != nil {
		preamble.WriteString("Key previously generated insights for this student (use this as context for the current chat):\n")
		if request.Context.StudentOverviewSummary != "" {
			preamble.WriteString("- Overall Student Snapshot: " + request.Context.StudentOverviewSummary + "\n")
		}
		if request.Context.AcademicBenchmarkAnalysis != "" {
			preamble.WriteString("- Academic Benchmark Analysis: " + request.Context.AcademicBenchmarkAnalysis + "\n")
		}
		if request.Context.QuestionnaireInterpretation != "" {
			preamble.WriteString("- Questionnaire Interpretation: " + request.Context.QuestionnaireInterpretation + "\n")
		}
		preamble.WriteString("\n")
	}
	preamble.WriteString(assembled)
	preamble.WriteString("\nGiven the student's profile and the coaching resources above, respond to the tutor's latest message. Adhere to all persona and response guidelines.")
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleSystem, Content: preamble.String()})

	for _, turn := range request.History {
		content := turn.Content
		if turn.IsLiked && turn.Role == constant.ChatMessageRoleAssistant {
			content = constant.LikedMessageMarker + content
		}
		messages = append(messages, llm.Message{Role: turn.Role, Content: content})
	}
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: request.Message})
	return messages
}

func (s *chatService) History(ctx context.Context, request *dto.ChatHistoryRequest) (*dto.ChatHistoryResponse, error) {
	limit := request.MaxMessages
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	messages, total, liked, err := s.chats.History(ctx, request.StudentID, limit)
	if err != nil {
		return nil, fmt.Errorf("chat history: %w", err)
	}

	history := make([]dto.ChatHistoryMessage, 0, len(messages))
	for _, m := range messages {
		entry := dto.ChatHistoryMessage{
			Id:      m.Id,
			Role:    m.Role,
			Content: m.Content,
			IsLiked: m.Liked,
		}
		if !m.CreatedAt.IsZero() {
			entry.Timestamp = m.CreatedAt.Format("02/01/2006 15:04:05")
		}
		history = append(history, entry)
	}

	summary, err := s.students.GetCoachingSummary(ctx, request.StudentID)
	if err != nil {
		summary = ""
	}

	return &dto.ChatHistoryResponse{
		ChatHistory: history,
		TotalCount:  total,
		LikedCount:  liked,
		Summary:     summary,
	}, nil
}

func (s *chatService) UpdateLike(ctx context.Context, request *dto.UpdateChatLikeRequest) error {
	return s.chats.SetLiked(ctx, request.MessageID, *request.IsLiked)
}

// ClearOldChats trims a student's log down to the target count, deleting
// oldest-first and skipping liked messages unless told otherwise.
func (s *chatService) ClearOldChats(ctx context.Context, request *dto.ClearOldChatsRequest) (*dto.ClearOldChatsResponse, error) {
	keepLiked := true
	if request.KeepLiked != nil {
		keepLiked = *request.KeepLiked
	}
	target := request.TargetCount
	if target <= 0 {
		target = defaultClearTargetCount
	}

	all, err := s.chats.All(ctx, request.StudentID)
	if err != nil {
		return nil, fmt.Errorf("clear old chats: %w", err)
	}

	toDelete := len(all) - target
	response := &dto.ClearOldChatsResponse{RemainingCount: len(all)}
	if toDelete <= 0 {
		return response, nil
	}

	var candidates []string
	for _, m := range all {
		if keepLiked && m.Liked {
			continue
		}
		candidates = append(candidates, m.Id)
	}
	if len(candidates) > toDelete {
		candidates = candidates[:toDelete]
	}

	for _, id := range candidates {
		if id == "" {
			continue
		}
		if err := s.chats.Delete(ctx, id); err != nil {
			s.log.Warn("chat_service", "Could not delete chat message", map[string]interface{}{
				"message_id": id,
				"error":      err.Error(),
			})
			continue
		}
		response.DeletedCount++
		response.DeletedIDs = append(response.DeletedIDs, id)
	}
	response.RemainingCount = len(all) - response.DeletedCount

	s.log.Info("chat_service", "Cleared old chat messages", map[string]interface{}{
		"student_id": request.StudentID,
		"deleted":    response.DeletedCount,
		"remaining":  response.RemainingCount,
	})
	return response, nil
}

// priorUserTurns counts tutor turns already in the conversation.
func priorUserTurns(history []dto.ChatHistoryMessage) int {
	count := 0
	for _, m := range history {
		if m.Role == constant.ChatMessageRoleUser {
			count++
		}
	}
	return count
}

// suggestedActivities surfaces the phase-gated activities that accompany
// the reply so the UI can link resources.
func suggestedActivities(retrieved []retrieval.ScoredItem, phase retrieval.Phase, topic string) []dto.SuggestedActivity {
	gated := retrieval.GateActivities(retrieved, phase, topic)
	activities := []dto.SuggestedActivity{}
	for _, item := range gated {
		if item.Kind != knowledge.KindActivity {
			continue
		}
		activity := dto.SuggestedActivity{
			ID:      item.Item.ID,
			Name:    item.Item.Name,
			Element: item.Item.Element,
			Level:   item.Item.Level,
		}
		if item.Item.HasResource() {
			activity.PDFLink = item.Item.PDFLink
		}
		activities = append(activities, activity)
	}
	return activities
}
