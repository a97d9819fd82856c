package catalog

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	s3infra "github.com/car-parts-api/internal/infrastructure/s3"
	"github.com/car-parts-api/internal/domain"
	"github.com/car-parts-api/internal/pkg/id"
)

// Service is the parts catalog. Plain create/read/delete plus S3-backed
// part images.
type Service interface {
	Create(ctx context.Context, req domain.CreatePartRequest) (*domain.Part, error)
	List(ctx context.Context) ([]domain.Part, error)
	Get(ctx context.Context, partID string) (*domain.Part, error)
	Delete(ctx context.Context, partID string) error
	UploadImage(ctx context.Context, partID, filename string, r io.Reader) (string, error)
	DownloadImage(ctx context.Context, partID string) (io.ReadCloser, string, error)
}

type partStore interface {
	Put(ctx context.Context, p *domain.Part) error
	Get(ctx context.Context, partID string) (*domain.Part, error)
	Scan(ctx context.Context) ([]domain.Part, error)
	SetImageURL(ctx context.Context, partID, url string) error
	HardDelete(ctx context.Context, partID string) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, string, error)
}

type service struct {
	repo   partStore
	images objectStore // nil when S3 is unavailable
}

func NewService(repo partStore, images objectStore) Service {
	return &service{repo: repo, images: images}
}

func (s *service) Create(ctx context.Context, req domain.CreatePartRequest) (*domain.Part, error) {
	now := time.Now().UTC()
	p := &domain.Part{
		PartID:       id.New(),
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		MinOrderQty:  req.MinOrderQty,
		AvailableQty: req.AvailableQty,
		ImageURL:     req.ImageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) List(ctx context.Context) ([]domain.Part, error) {
	parts, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(parts, func(i, j int) bool {
		return parts[i].PartID > parts[j].PartID // ULIDs: newest first
	})
	return parts, nil
}

func (s *service) Get(ctx context.Context, partID string) (*domain.Part, error) {
	return s.repo.Get(ctx, partID)
}

func (s *service) Delete(ctx context.Context, partID string) error {
	return s.repo.HardDelete(ctx, partID)
}

func (s *service) UploadImage(ctx context.Context, partID, filename string, r io.Reader) (string, error) {
	if s.images == nil {
		return "", fmt.Errorf("image storage is not configured: %w", domain.ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, partID); err != nil {
		return "", err
	}
	key := "parts/" + partID
	url, err := s.images.Upload(ctx, key, r, s3infra.DetectContentType(filename))
	if err != nil {
		return "", err
	}
	if err := s.repo.SetImageURL(ctx, partID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *service) DownloadImage(ctx context.Context, partID string) (io.ReadCloser, string, error) {
	if s.images == nil {
		return nil, "", fmt.Errorf("image storage is not configured: %w", domain.ErrNotFound)
	}
	p, err := s.repo.Get(ctx, partID)
	if err != nil {
		return nil, "", err
	}
	if p.ImageURL == "" {
		return nil, "", fmt.Errorf("part %s has no image: %w", partID, domain.ErrNotFound)
	}
	return s.images.Download(ctx, "parts/"+partID)
}
