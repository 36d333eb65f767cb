package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"student-coach-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCohortRepo struct {
	averages *entity.CohortAverages
	err      error
	calls    int
}

func (c *countingCohortRepo) Averages(_ context.Context, _ string) (*entity.CohortAverages, error) {
	c.calls++
	return c.averages, c.err
}

func TestCachedCohortRepositoryComputesOncePerWindow(t *testing.T) {
	inner := &countingCohortRepo{averages: &entity.CohortAverages{SchoolID: "school-1", Vision: 6.2}}
	repo := NewCachedCohortRepository(inner, time.Hour)

	first, err := repo.Averages(context.Background(), "school-1")
	require.NoError(t, err)
	second, err := repo.Averages(context.Background(), "school-1")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Same(t, first, second)
}

func TestCachedCohortRepositoryKeysBySchool(t *testing.T) {
	inner := &countingCohortRepo{averages: &entity.CohortAverages{Vision: 5}}
	repo := NewCachedCohortRepository(inner, time.Hour)

	_, err := repo.Averages(context.Background(), "school-1")
	require.NoError(t, err)
	_, err = repo.Averages(context.Background(), "school-2")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedCohortRepositoryDoesNotCacheMisses(t *testing.T) {
	inner := &countingCohortRepo{}
	repo := NewCachedCohortRepository(inner, time.Hour)

	averages, err := repo.Averages(context.Background(), "empty-school")
	require.NoError(t, err)
	assert.Nil(t, averages)

	_, err = repo.Averages(context.Background(), "empty-school")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedCohortRepositoryPropagatesErrors(t *testing.T) {
	inner := &countingCohortRepo{err: errors.New("store down")}
	repo := NewCachedCohortRepository(inner, time.Hour)

	_, err := repo.Averages(context.Background(), "school-1")
	assert.Error(t, err)
}
