package memory

import (
	"context"
	"time"

	"student-coach-be/internal/entity"
	"student-coach-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// CachedCohortRepository decorates a CohortRepository with a TTL cache so
// one school's averages are computed at most once per TTL window.
type CachedCohortRepository struct {
	inner contract.CohortRepository
	cache *cache.Cache
}

func NewCachedCohortRepository(inner contract.CohortRepository, ttl time.Duration) *CachedCohortRepository {
	// Purge expired entries at a fraction of the TTL.
	c := cache.New(ttl, ttl/2)
	return &CachedCohortRepository{
		inner: inner,
		cache: c,
	}
}

func (r *CachedCohortRepository) Averages(ctx context.Context, schoolID string) (*entity.CohortAverages, error) {
	if x, found := r.cache.Get(schoolID); found {
		return x.(*entity.CohortAverages), nil
	}

	averages, err := r.inner.Averages(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if averages != nil {
		r.cache.Set(schoolID, averages, cache.DefaultExpiration)
	}
	return averages, nil
}
