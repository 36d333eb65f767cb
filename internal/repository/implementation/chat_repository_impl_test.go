package implementation

import (
	"context"
	"testing"
	"time"

	"student-coach-be/internal/pkg/logger"
	"student-coach-be/internal/repository/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatRecord(id, author, content, timestamp, liked string) contract.Record {
	return contract.Record{
		"id":             id,
		"field_3273":     author,
		"field_3277":     content,
		"field_3276":     timestamp,
		"field_3279":     liked,
		"field_3275_raw": []interface{}{map[string]interface{}{"id": "stu-1"}},
	}
}

func TestSaveMessageWritesAuthorAndTimestamp(t *testing.T) {
	store := newFakeRecordStore()
	store.put(objStudentRecords, "stu-1", contract.Record{
		"field_132_raw": []interface{}{map[string]interface{}{"id": "acct-1"}},
	})
	repo := &ChatLogRepositoryImpl{
		store: store,
		log:   logger.NewNopLogger(),
		now:   func() time.Time { return time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC) },
	}

	id, err := repo.SaveMessage(context.Background(), "stu-1", "assistant", "Try a weekly planner.")
	require.NoError(t, err)
	assert.Equal(t, "created-1", id)

	require.Len(t, store.created, 1)
	payload := store.created[0].payload
	assert.Equal(t, objChatLog, store.created[0].objectKey)
	assert.Equal(t, authorCoach, payload[fieldChatAuthor])
	assert.Equal(t, "Try a weekly planner.", payload[fieldChatContent])
	assert.Equal(t, "10/03/2026 09:30:00", payload[fieldChatTimestamp])
	assert.Equal(t, "acct-1", payload[fieldChatStudentLink])
}

func TestSaveMessageTutorAuthorWithoutAccountLink(t *testing.T) {
	store := newFakeRecordStore()
	repo := NewChatLogRepository(store, logger.NewNopLogger())

	_, err := repo.SaveMessage(context.Background(), "stu-1", "user", "How is Alex doing?")
	require.NoError(t, err)

	payload := store.created[0].payload
	assert.Equal(t, authorTutor, payload[fieldChatAuthor])
	_, linked := payload[fieldChatStudentLink]
	assert.False(t, linked)
}

func TestSaveMessageRejectsEmptyContent(t *testing.T) {
	repo := NewChatLogRepository(newFakeRecordStore(), logger.NewNopLogger())
	_, err := repo.SaveMessage(context.Background(), "stu-1", "user", "")
	require.Error(t, err)
}

func TestHistoryReturnsRecentBatchChronologically(t *testing.T) {
	store := newFakeRecordStore()
	store.pages[objChatLog] = []contract.Record{
		chatRecord("m1", authorTutor, "first", "01/03/2026 09:00:00", "No"),
		chatRecord("m3", authorTutor, "third", "01/03/2026 11:00:00", "No"),
		chatRecord("m2", authorCoach, "second", "01/03/2026 10:00:00", "Yes"),
	}
	repo := NewChatLogRepository(store, logger.NewNopLogger())

	messages, total, liked, err := repo.History(context.Background(), "stu-1", 2)
	require.NoError(t, err)

	assert.Equal(t, 3, total)
	assert.Equal(t, 1, liked)

	// Only the two most recent survive, oldest of the batch first.
	require.Len(t, messages, 2)
	assert.Equal(t, "second", messages[0].Content)
	assert.Equal(t, "assistant", messages[0].Role)
	assert.True(t, messages[0].Liked)
	assert.Equal(t, "third", messages[1].Content)
	assert.Equal(t, "user", messages[1].Role)
}

func TestAllReturnsOldestFirst(t *testing.T) {
	store := newFakeRecordStore()
	store.pages[objChatLog] = []contract.Record{
		chatRecord("m2", authorCoach, "later", "02/03/2026 09:00:00", "No"),
		chatRecord("m1", authorTutor, "earlier", "01/03/2026 09:00:00", "No"),
	}
	repo := NewChatLogRepository(store, logger.NewNopLogger())

	messages, err := repo.All(context.Background(), "stu-1")
	require.NoError(t, err)

	require.Len(t, messages, 2)
	assert.Equal(t, "earlier", messages[0].Content)
	assert.Equal(t, "later", messages[1].Content)
	assert.Equal(t, "stu-1", messages[0].StudentID)
}

func TestSetLikedMapsBoolToYesNo(t *testing.T) {
	store := newFakeRecordStore()
	repo := NewChatLogRepository(store, logger.NewNopLogger())

	require.NoError(t, repo.SetLiked(context.Background(), "m1", true))
	assert.Equal(t, map[string]interface{}{fieldChatLiked: "Yes"}, store.updated["m1"])

	require.NoError(t, repo.SetLiked(context.Background(), "m1", false))
	assert.Equal(t, map[string]interface{}{fieldChatLiked: "No"}, store.updated["m1"])
}

func TestDeleteRemovesRecord(t *testing.T) {
	store := newFakeRecordStore()
	repo := NewChatLogRepository(store, logger.NewNopLogger())

	require.NoError(t, repo.Delete(context.Background(), "m1"))
	assert.Equal(t, []string{"m1"}, store.deleted)
}
