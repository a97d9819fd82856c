package review

import (
	"context"
	"sort"
	"time"

	"github.com/car-parts-api/internal/domain"
	"github.com/car-parts-api/internal/pkg/id"
)

// Service posts and lists reviews. No access control applies here.
type Service interface {
	Create(ctx context.Context, req domain.CreateReviewRequest) (*domain.Review, error)
	List(ctx context.Context) ([]domain.Review, error)
}

type reviewStore interface {
	Put(ctx context.Context, rev *domain.Review) error
	Scan(ctx context.Context) ([]domain.Review, error)
}

type service struct {
	repo reviewStore
}

func NewService(repo reviewStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.CreateReviewRequest) (*domain.Review, error) {
	rev := &domain.Review{
		ReviewID:  id.New(),
		Email:     req.Email,
		Name:      req.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *service) List(ctx context.Context) ([]domain.Review, error) {
	reviews, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].ReviewID > reviews[j].ReviewID // ULIDs: newest first
	})
	return reviews, nil
}
