package user

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/car-parts-api/internal/domain"
	"github.com/car-parts-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName      = "name"
	fieldEducation = "education"
	fieldLinkedIn  = "linkedin"
	fieldPhone     = "phone"
	fieldLocation  = "location"
	fieldRole      = "role"
)

// Service is the user directory: profile upserts keyed by email, role
// queries for access control, and admin promotion.
type Service interface {
	// Upsert creates or merges the profile stored under email and returns the
	// persisted record together with a freshly signed access token.
	Upsert(ctx context.Context, email string, req domain.UpsertUserRequest) (*domain.User, string, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
	PromoteToAdmin(ctx context.Context, targetEmail, requesterEmail string) error
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	Scan(ctx context.Context) ([]domain.User, error)
}

type tokenSigner interface {
	Sign(email string) (string, error)
}

type service struct {
	repo   userStore
	signer tokenSigner
}

func NewService(repo userStore, signer tokenSigner) Service {
	return &service{repo: repo, signer: signer}
}

func (s *service) Upsert(ctx context.Context, email string, req domain.UpsertUserRequest) (*domain.User, string, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		updates := profileUpdates(req.Name, req.Education, req.LinkedIn, req.Phone, req.Location)
		// Role is merged only when the caller supplied it explicitly.
		if req.Role != nil {
			updates[fieldRole] = *req.Role
		}
		if len(updates) > 0 {
			if err := s.repo.Update(ctx, existing.UserID, updates); err != nil {
				return nil, "", err
			}
			if existing, err = s.repo.Get(ctx, existing.UserID); err != nil {
				return nil, "", err
			}
		}
	case errors.Is(err, domain.ErrNotFound):
		now := time.Now().UTC()
		existing = &domain.User{
			UserID:    id.New(),
			Email:     email,
			Role:      domain.RoleRegular,
			CreatedAt: now,
			UpdatedAt: now,
		}
		applyProfile(existing, req)
		if req.Role != nil {
			existing.Role = *req.Role
		}
		if err := s.repo.Put(ctx, existing); err != nil {
			return nil, "", err
		}
	default:
		return nil, "", err
	}

	token, err := s.signer.Sign(email)
	if err != nil {
		return nil, "", err
	}
	return existing, token, nil
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].UserID > users[j].UserID // ULIDs: newest first
	})
	return users, nil
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	updates := profileUpdates(req.Name, req.Education, req.LinkedIn, req.Phone, req.Location)
	if len(updates) == 0 {
		return s.repo.Get(ctx, userID)
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

// PromoteToAdmin re-reads the requester's role as a second guard on top of
// the admin middleware, then sets the target's role. Idempotent.
func (s *service) PromoteToAdmin(ctx context.Context, targetEmail, requesterEmail string) error {
	requester, err := s.repo.GetByEmail(ctx, requesterEmail)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("requester %s has no account: %w", requesterEmail, domain.ErrForbidden)
		}
		return err
	}
	if requester.Role != domain.RoleAdmin {
		return fmt.Errorf("requester %s is not an admin: %w", requesterEmail, domain.ErrForbidden)
	}
	target, err := s.repo.GetByEmail(ctx, targetEmail)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleAdmin {
		return nil
	}
	return s.repo.Update(ctx, target.UserID, map[string]interface{}{fieldRole: domain.RoleAdmin})
}

// IsAdmin reports whether email belongs to an admin. A missing directory
// record is not an error, it simply means "not an admin".
func (s *service) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.Role == domain.RoleAdmin, nil
}

func profileUpdates(name, education, linkedin, phone, location *string) map[string]interface{} {
	updates := map[string]interface{}{}
	if name != nil {
		updates[fieldName] = *name
	}
	if education != nil {
		updates[fieldEducation] = *education
	}
	if linkedin != nil {
		updates[fieldLinkedIn] = *linkedin
	}
	if phone != nil {
		updates[fieldPhone] = *phone
	}
	if location != nil {
		updates[fieldLocation] = *location
	}
	return updates
}

func applyProfile(u *domain.User, req domain.UpsertUserRequest) {
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Education != nil {
		u.Education = *req.Education
	}
	if req.LinkedIn != nil {
		u.LinkedIn = *req.LinkedIn
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
}
