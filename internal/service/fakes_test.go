package service

import (
	"context"
	"errors"
	"fmt"

	"student-coach-be/internal/entity"
	"student-coach-be/pkg/llm"
)

// fakeStudentRepo implements contract.StudentRepository for service tests.
type fakeStudentRepo struct {
	snapshot      *entity.StudentSnapshot
	snapshotErr   error
	academic      *entity.AcademicProfile
	academicErr   error
	questionnaire []entity.ScoredStatement
	summary       string
	savedSummary  string
	saveCalled    bool
}

func (f *fakeStudentRepo) GetSnapshot(_ context.Context, studentID string) (*entity.StudentSnapshot, error) {
	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}
	if f.snapshot == nil {
		return nil, errors.New("student not found: " + studentID)
	}
	return f.snapshot, nil
}

func (f *fakeStudentRepo) GetAcademicProfile(_ context.Context, _, _ string) (*entity.AcademicProfile, error) {
	if f.academicErr != nil {
		return nil, f.academicErr
	}
	if f.academic == nil {
		return &entity.AcademicProfile{}, nil
	}
	return f.academic, nil
}

func (f *fakeStudentRepo) GetQuestionnaire(_ context.Context, _ string, _ int) ([]entity.ScoredStatement, error) {
	return f.questionnaire, nil
}

func (f *fakeStudentRepo) SaveCoachingSummary(_ context.Context, _, summary string) error {
	f.saveCalled = true
	f.savedSummary = summary
	return nil
}

func (f *fakeStudentRepo) GetCoachingSummary(_ context.Context, _ string) (string, error) {
	return f.summary, nil
}

// fakeCohortRepo implements contract.CohortRepository.
type fakeCohortRepo struct {
	averages *entity.CohortAverages
	err      error
}

func (f *fakeCohortRepo) Averages(_ context.Context, _ string) (*entity.CohortAverages, error) {
	return f.averages, f.err
}

// fakeChatRepo implements contract.ChatLogRepository with an in-memory log.
type fakeChatRepo struct {
	messages  []*entity.ChatMessage
	saved     []*entity.ChatMessage
	saveErr   error
	deleted   []string
	deleteErr map[string]error
	liked     map[string]bool
	nextID    int
}

func (f *fakeChatRepo) SaveMessage(_ context.Context, studentID, role, content string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.nextID++
	id := fmt.Sprintf("msg-%d", f.nextID)
	f.saved = append(f.saved, &entity.ChatMessage{Id: id, StudentID: studentID, Role: role, Content: content})
	return id, nil
}

func (f *fakeChatRepo) History(_ context.Context, _ string, maxMessages int) ([]*entity.ChatMessage, int, int, error) {
	liked := 0
	for _, m := range f.messages {
		if m.Liked {
			liked++
		}
	}
	out := f.messages
	if len(out) > maxMessages {
		out = out[len(out)-maxMessages:]
	}
	return out, len(f.messages), liked, nil
}

func (f *fakeChatRepo) All(_ context.Context, _ string) ([]*entity.ChatMessage, error) {
	return f.messages, nil
}

func (f *fakeChatRepo) SetLiked(_ context.Context, messageID string, liked bool) error {
	if f.liked == nil {
		f.liked = map[string]bool{}
	}
	f.liked[messageID] = liked
	return nil
}

func (f *fakeChatRepo) Delete(_ context.Context, messageID string) error {
	if err := f.deleteErr[messageID]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, messageID)
	return nil
}

// fakeProvider implements llm.LLMProvider, recording the last call.
type fakeProvider struct {
	response     string
	err          error
	lastMessages []llm.Message
	lastOptions  llm.Options
	calls        int
}

func (f *fakeProvider) Chat(_ context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls++
	f.lastMessages = history
	f.lastOptions = llm.Options{}
	for _, opt := range opts {
		opt(&f.lastOptions)
	}
	return f.response, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }
