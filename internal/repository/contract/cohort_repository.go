package contract

import (
	"context"

	"student-coach-be/internal/entity"
)

// CohortRepository aggregates school-wide VESPA averages.
type CohortRepository interface {
	// Averages returns the mean VESPA scores across every student record
	// in the school, or nil when the school has no scored students.
	Averages(ctx context.Context, schoolID string) (*entity.CohortAverages, error)
}
