package screenings

import (
	"context"

	"github.com/Domenick1991/cinemabooking/internal/domain"
	"github.com/Domenick1991/cinemabooking/internal/repository"
)

type ScreeningUseCase interface {
	List(ctx context.Context) ([]domain.Screening, error)
}

type Cache interface {
	GetScreenings(ctx context.Context) ([]domain.Screening, error)
	SetScreenings(ctx context.Context, screenings []domain.Screening) error
}

type ScreeningService struct {
	repo  repository.ScreeningRepository
	cache Cache
}

func NewScreeningService(repo repository.ScreeningRepository, cache Cache) *ScreeningService {
	return &ScreeningService{repo: repo, cache: cache}
}

// List returns the showtimes catalog, cache-aside through redis.
func (s *ScreeningService) List(ctx context.Context) ([]domain.Screening, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetScreenings(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	screenings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetScreenings(ctx, screenings)
	}
	return screenings, nil
}

var _ ScreeningUseCase = (*ScreeningService)(nil)
