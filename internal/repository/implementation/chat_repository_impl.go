package implementation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"student-coach-be/internal/entity"
	"student-coach-be/internal/pkg/logger"
	"student-coach-be/internal/repository/contract"
)

const objChatLog = "object_118"

// object_118 fields.
const (
	fieldChatStudentConn = "field_3275"
	fieldChatAuthor      = "field_3273"
	fieldChatContent     = "field_3277"
	fieldChatTimestamp   = "field_3276"
	fieldChatStudentLink = "field_3274"
	fieldChatLiked       = "field_3279"
)

const (
	authorCoach = "AI Coach"
	authorTutor = "Tutor"

	// Timestamps are stored in the record store's day-first format.
	chatTimestampLayout = "02/01/2006 15:04:05"
)

type ChatLogRepositoryImpl struct {
	store contract.RecordStore
	log   logger.ILogger
	now   func() time.Time
}

func NewChatLogRepository(store contract.RecordStore, log logger.ILogger) contract.ChatLogRepository {
	return &ChatLogRepositoryImpl{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

func (r *ChatLogRepositoryImpl) SaveMessage(ctx context.Context, studentID, role, content string) (string, error) {
	if studentID == "" || content == "" {
		return "", fmt.Errorf("save chat message: missing student id or content")
	}

	author := authorTutor
	if role == "assistant" {
		author = authorCoach
	}

	payload := map[string]interface{}{
		fieldChatStudentConn: studentID,
		fieldChatAuthor:      author,
		fieldChatContent:     content,
		fieldChatTimestamp:   r.now().Format(chatTimestampLayout),
	}

	// Link to the underlying student account when the coaching record
	// exposes it; the message still saves without the link.
	if accountID := r.studentAccountID(ctx, studentID); accountID != "" {
		payload[fieldChatStudentLink] = accountID
	}

	record, err := r.store.CreateRecord(ctx, objChatLog, payload)
	if err != nil {
		return "", fmt.Errorf("save chat message: %w", err)
	}
	return recordString(record, "id"), nil
}

func (r *ChatLogRepositoryImpl) studentAccountID(ctx context.Context, studentID string) string {
	record, err := r.store.GetRecord(ctx, objStudentRecords, studentID)
	if err != nil {
		r.log.Warn("chat_repository", "Could not fetch student record for account link", map[string]interface{}{
			"student_id": studentID,
			"error":      err.Error(),
		})
		return ""
	}
	return connectionID(record, fieldStudentLink)
}

func (r *ChatLogRepositoryImpl) History(ctx context.Context, studentID string, maxMessages int) ([]*entity.ChatMessage, int, int, error) {
	if maxMessages <= 0 {
		maxMessages = 50
	}

	filters := []contract.Filter{{Field: fieldChatStudentConn, Operator: "is", Value: studentID}}
	page, err := r.store.GetRecords(ctx, objChatLog, filters, 1, maxMessages*2)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("fetch chat history: %w", err)
	}

	messages := mapChatRecords(page.Records)
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})

	total := len(messages)
	if len(messages) > maxMessages {
		messages = messages[:maxMessages]
	}

	liked := 0
	for _, m := range messages {
		if m.Liked {
			liked++
		}
	}

	// Chronological order for the caller: oldest of the recent batch first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, total, liked, nil
}

func (r *ChatLogRepositoryImpl) All(ctx context.Context, studentID string) ([]*entity.ChatMessage, error) {
	filters := []contract.Filter{{Field: fieldChatStudentConn, Operator: "is", Value: studentID}}
	records, err := r.store.GetAllRecords(ctx, objChatLog, filters)
	if err != nil {
		return nil, fmt.Errorf("fetch all chat messages: %w", err)
	}
	messages := mapChatRecords(records)
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *ChatLogRepositoryImpl) SetLiked(ctx context.Context, messageID string, liked bool) error {
	value := "No"
	if liked {
		value = "Yes"
	}
	payload := map[string]interface{}{fieldChatLiked: value}
	if _, err := r.store.UpdateRecord(ctx, objChatLog, messageID, payload); err != nil {
		return fmt.Errorf("update like status: %w", err)
	}
	return nil
}

func (r *ChatLogRepositoryImpl) Delete(ctx context.Context, messageID string) error {
	if err := r.store.DeleteRecord(ctx, objChatLog, messageID); err != nil {
		return fmt.Errorf("delete chat message: %w", err)
	}
	return nil
}

func mapChatRecords(records []contract.Record) []*entity.ChatMessage {
	messages := make([]*entity.ChatMessage, 0, len(records))
	for _, record := range records {
		role := "user"
		if recordString(record, fieldChatAuthor) == authorCoach {
			role = "assistant"
		}
		createdAt, _ := time.Parse(chatTimestampLayout, recordString(record, fieldChatTimestamp))
		messages = append(messages, &entity.ChatMessage{
			Id:        recordString(record, "id"),
			StudentID: connectionID(record, fieldChatStudentConn),
			Role:      role,
			Content:   recordString(record, fieldChatContent),
			Liked:     recordString(record, fieldChatLiked) == "Yes",
			CreatedAt: createdAt,
		})
	}
	return messages
}
