package implementation

import (
	"context"
	"fmt"
	"math"
	"time"

	"student-coach-be/internal/entity"
	"student-coach-be/internal/pkg/logger"
	"student-coach-be/internal/repository/contract"
)

type CohortRepositoryImpl struct {
	store contract.RecordStore
	log   logger.ILogger
}

func NewCohortRepository(store contract.RecordStore, log logger.ILogger) contract.CohortRepository {
	return &CohortRepositoryImpl{store: store, log: log}
}

// Averages walks every student record in the school and averages each VESPA
// element over the students that have a score for it.
func (r *CohortRepositoryImpl) Averages(ctx context.Context, schoolID string) (*entity.CohortAverages, error) {
	if schoolID == "" {
		return nil, fmt.Errorf("cohort averages: missing school id")
	}

	filters := []contract.Filter{{Field: fieldSchoolConn, Operator: "is", Value: schoolID}}
	records, err := r.store.GetAllRecords(ctx, objStudentRecords, filters)
	if err != nil {
		return nil, fmt.Errorf("fetch school students: %w", err)
	}
	if len(records) == 0 {
		// Some schools are linked through the raw connection field only.
		fallback := []contract.Filter{{Field: fieldSchoolConn + "_raw", Operator: "contains", Value: schoolID}}
		records, err = r.store.GetAllRecords(ctx, objStudentRecords, fallback)
		if err != nil {
			return nil, fmt.Errorf("fetch school students (fallback): %w", err)
		}
	}
	if len(records) == 0 {
		r.log.Warn("cohort_repository", "No student records found for school", map[string]interface{}{
			"school_id": schoolID,
		})
		return nil, nil
	}

	elementFields := map[string]string{
		"Vision":   fieldVision,
		"Effort":   fieldEffort,
		"Systems":  fieldSystems,
		"Practice": fieldPractice,
		"Attitude": fieldAttitude,
		"Overall":  fieldOverall,
	}
	sums := map[string]float64{}
	counts := map[string]int{}

	for _, record := range records {
		for element, field := range elementFields {
			if score := recordFloat(record, field); score != nil {
				sums[element] += *score
				counts[element]++
			}
		}
	}

	mean := func(element string) float64 {
		if counts[element] == 0 {
			return 0
		}
		return math.Round(sums[element]/float64(counts[element])*100) / 100
	}

	averages := &entity.CohortAverages{
		SchoolID:   schoolID,
		Vision:     mean("Vision"),
		Effort:     mean("Effort"),
		Systems:    mean("Systems"),
		Practice:   mean("Practice"),
		Attitude:   mean("Attitude"),
		Overall:    mean("Overall"),
		SampleSize: len(records),
		ComputedAt: time.Now(),
	}
	r.log.Info("cohort_repository", "Calculated school VESPA averages", map[string]interface{}{
		"school_id": schoolID,
		"students":  len(records),
	})
	return averages, nil
}
