package contract

import (
	"context"

	"student-coach-be/internal/entity"
)

// ChatLogRepository persists coaching conversation turns in the record store.
type ChatLogRepository interface {
	// SaveMessage appends one turn to the student's chat log and returns
	// the stored record's id.
	SaveMessage(ctx context.Context, studentID, role, content string) (string, error)

	// History returns the most recent maxMessages turns in chronological
	// order, plus the total and liked counts across the student's log.
	History(ctx context.Context, studentID string, maxMessages int) (messages []*entity.ChatMessage, total int, liked int, err error)

	// All returns every stored turn for the student, oldest first.
	All(ctx context.Context, studentID string) ([]*entity.ChatMessage, error)

	// SetLiked flags or unflags one stored message.
	SetLiked(ctx context.Context, messageID string, liked bool) error

	// Delete removes one stored message.
	Delete(ctx context.Context, messageID string) error
}
