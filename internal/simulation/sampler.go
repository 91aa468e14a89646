package simulation

import (
	"github.com/yourusername/pitwall/internal/models"
)

// RandomSource is the slice of *rand.Rand the sampler needs.
// Tests inject fixed sequences through it.
type RandomSource interface {
	Intn(n int) int
}

// Sampler draws the season a trial is resolved against
type Sampler interface {
	Sample(rng RandomSource) *models.SeasonDataset
}

// UniformSampler picks each season of a fixed pool with equal probability
type UniformSampler struct {
	pool []*models.SeasonDataset
}

// NewUniformSampler creates a sampler over the given seasons
func NewUniformSampler(pool ...*models.SeasonDataset) (*UniformSampler, error) {
	if len(pool) == 0 {
		return nil, models.ErrEmptyPool
	}
	for _, season := range pool {
		if season == nil {
			return nil, models.ErrEmptyPool
		}
	}
	return &UniformSampler{pool: append([]*models.SeasonDataset(nil), pool...)}, nil
}

// Sample implements Sampler
func (s *UniformSampler) Sample(rng RandomSource) *models.SeasonDataset {
	if len(s.pool) == 1 {
		return s.pool[0]
	}
	return s.pool[rng.Intn(len(s.pool))]
}

// Pool returns the seasons the sampler draws from
func (s *UniformSampler) Pool() []*models.SeasonDataset {
	return s.pool
}
