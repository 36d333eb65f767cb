package implementation

import (
	"context"
	"testing"

	"student-coach-be/internal/pkg/logger"
	"student-coach-be/internal/repository/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAveragesComputesPerElementMeans(t *testing.T) {
	store := newFakeRecordStore()
	store.pages[objStudentRecords] = []contract.Record{
		{"field_147": 7.0, "field_148": 4.0},
		{"field_147": 6.0, "field_148": "5.5"},
		{"field_147": 5.0}, // no effort score: excluded from that mean
	}
	repo := NewCohortRepository(store, logger.NewNopLogger())

	averages, err := repo.Averages(context.Background(), "school-1")
	require.NoError(t, err)
	require.NotNil(t, averages)

	assert.Equal(t, "school-1", averages.SchoolID)
	assert.Equal(t, 6.0, averages.Vision)
	assert.Equal(t, 4.75, averages.Effort)
	assert.Zero(t, averages.Systems)
	assert.Equal(t, 3, averages.SampleSize)
	assert.False(t, averages.ComputedAt.IsZero())
}

func TestAveragesRoundsToTwoDecimals(t *testing.T) {
	store := newFakeRecordStore()
	store.pages[objStudentRecords] = []contract.Record{
		{"field_147": 7.0},
		{"field_147": 6.0},
		{"field_147": 6.0},
	}
	repo := NewCohortRepository(store, logger.NewNopLogger())

	averages, err := repo.Averages(context.Background(), "school-1")
	require.NoError(t, err)
	assert.Equal(t, 6.33, averages.Vision)
}

func TestAveragesEmptySchoolReturnsNil(t *testing.T) {
	repo := NewCohortRepository(newFakeRecordStore(), logger.NewNopLogger())

	averages, err := repo.Averages(context.Background(), "school-1")
	require.NoError(t, err)
	assert.Nil(t, averages)
}

func TestAveragesRequiresSchoolID(t *testing.T) {
	repo := NewCohortRepository(newFakeRecordStore(), logger.NewNopLogger())
	_, err := repo.Averages(context.Background(), "")
	require.Error(t, err)
}
