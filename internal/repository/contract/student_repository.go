package contract

import (
	"context"

	"student-coach-be/internal/entity"
)

// StudentRepository reads student profile data out of the record store.
type StudentRepository interface {
	// GetSnapshot fetches the student's coaching record: name, level,
	// current cycle, school connection, VESPA scores, reflections and
	// goals. Questionnaire and academic data are fetched separately.
	GetSnapshot(ctx context.Context, studentID string) (*entity.StudentSnapshot, error)

	// GetAcademicProfile resolves the student's account by email, then
	// looks their academic profile up by account id, falling back to an
	// exact name match. A missing profile is not an error: the returned
	// profile has no subjects.
	GetAcademicProfile(ctx context.Context, email, studentName string) (*entity.AcademicProfile, error)

	// GetQuestionnaire fetches the student's per-statement questionnaire
	// responses for one cycle. Returns an empty slice when the cycle has
	// no submission.
	GetQuestionnaire(ctx context.Context, studentID string, cycle int) ([]entity.ScoredStatement, error)

	// SaveCoachingSummary writes the latest AI coaching overview back to
	// the student's record so the next session can pick it up.
	SaveCoachingSummary(ctx context.Context, studentID, summary string) error

	// GetCoachingSummary reads the stored overview, "" when absent.
	GetCoachingSummary(ctx context.Context, studentID string) (string, error)
}
