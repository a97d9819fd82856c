package user

import (
	"context"
	"errors"
	"testing"

	"github.com/car-parts-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}
func (m *mockUserStore) Scan(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func strptr(s string) *string { return &s }

// --- Upsert tests ---

func TestUpsert_CreatesWhenAbsent(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "alice@example.com" && u.Role == domain.RoleRegular && u.Name == "Alice"
	})).Return(nil)

	signer := &mockSigner{}
	signer.On("Sign", "alice@example.com").Return("token-1", nil)

	svc := NewService(us, signer)
	u, token, err := svc.Upsert(context.Background(), "alice@example.com",
		domain.UpsertUserRequest{Name: strptr("Alice")})

	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
	assert.Equal(t, domain.RoleRegular, u.Role)
	us.AssertExpectations(t)
	signer.AssertExpectations(t)
}

func TestUpsert_MergesWhenPresent(t *testing.T) {
	existing := &domain.User{UserID: "u1", Email: "alice@example.com", Name: "Alice", Role: domain.RoleAdmin}
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(existing, nil)
	us.On("Update", mock.Anything, "u1", map[string]interface{}{
		fieldLocation: "Dhaka",
	}).Return(nil)
	us.On("Get", mock.Anything, "u1").Return(
		&domain.User{UserID: "u1", Email: "alice@example.com", Name: "Alice", Location: "Dhaka", Role: domain.RoleAdmin}, nil)

	signer := &mockSigner{}
	signer.On("Sign", "alice@example.com").Return("token-2", nil)

	svc := NewService(us, signer)
	u, _, err := svc.Upsert(context.Background(), "alice@example.com",
		domain.UpsertUserRequest{Location: strptr("Dhaka")})

	require.NoError(t, err)
	assert.Equal(t, "Dhaka", u.Location)
	// Role stays admin: the update map never contained a role key.
	assert.Equal(t, domain.RoleAdmin, u.Role)
	us.AssertExpectations(t)
}

func TestUpsert_NoFields_StillIssuesToken(t *testing.T) {
	existing := &domain.User{UserID: "u1", Email: "alice@example.com"}
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(existing, nil)

	signer := &mockSigner{}
	signer.On("Sign", "alice@example.com").Return("token-3", nil)

	svc := NewService(us, signer)
	_, token, err := svc.Upsert(context.Background(), "alice@example.com", domain.UpsertUserRequest{})

	require.NoError(t, err)
	assert.Equal(t, "token-3", token)
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsert_StoreFailurePropagates(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, errors.New("store down"))

	svc := NewService(us, &mockSigner{})
	_, _, err := svc.Upsert(context.Background(), "alice@example.com", domain.UpsertUserRequest{})
	assert.Error(t, err)
}

// --- UpdateProfile ---

func TestUpdateProfile_OnlyProfileFields(t *testing.T) {
	us := &mockUserStore{}
	us.On("Update", mock.Anything, "u1", map[string]interface{}{
		fieldName:  "Alice B",
		fieldPhone: "555-0100",
	}).Return(nil)
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Name: "Alice B"}, nil)

	svc := NewService(us, &mockSigner{})
	u, err := svc.UpdateProfile(context.Background(), "u1", domain.UpdateProfileRequest{
		Name:  strptr("Alice B"),
		Phone: strptr("555-0100"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Alice B", u.Name)
	us.AssertExpectations(t)
}

// --- PromoteToAdmin ---

func TestPromoteToAdmin_RequesterNotAdmin(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "bob@example.com").Return(
		&domain.User{UserID: "u2", Email: "bob@example.com", Role: domain.RoleRegular}, nil)

	svc := NewService(us, &mockSigner{})
	err := svc.PromoteToAdmin(context.Background(), "carol@example.com", "bob@example.com")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestPromoteToAdmin_RequesterMissing(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	svc := NewService(us, &mockSigner{})
	err := svc.PromoteToAdmin(context.Background(), "carol@example.com", "ghost@example.com")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestPromoteToAdmin_SetsRole(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "admin@example.com").Return(
		&domain.User{UserID: "u1", Role: domain.RoleAdmin}, nil)
	us.On("GetByEmail", mock.Anything, "carol@example.com").Return(
		&domain.User{UserID: "u3", Role: domain.RoleRegular}, nil)
	us.On("Update", mock.Anything, "u3", map[string]interface{}{fieldRole: domain.RoleAdmin}).Return(nil)

	svc := NewService(us, &mockSigner{})
	err := svc.PromoteToAdmin(context.Background(), "carol@example.com", "admin@example.com")

	require.NoError(t, err)
	us.AssertExpectations(t)
}

func TestPromoteToAdmin_Idempotent(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "admin@example.com").Return(
		&domain.User{UserID: "u1", Role: domain.RoleAdmin}, nil)
	us.On("GetByEmail", mock.Anything, "carol@example.com").Return(
		&domain.User{UserID: "u3", Role: domain.RoleAdmin}, nil)

	svc := NewService(us, &mockSigner{})
	err := svc.PromoteToAdmin(context.Background(), "carol@example.com", "admin@example.com")

	require.NoError(t, err)
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

// --- IsAdmin ---

func TestIsAdmin_MissingUserIsFalse(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	svc := NewService(us, &mockSigner{})
	isAdmin, err := svc.IsAdmin(context.Background(), "ghost@example.com")

	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestIsAdmin_True(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "admin@example.com").Return(
		&domain.User{Role: domain.RoleAdmin}, nil)

	svc := NewService(us, &mockSigner{})
	isAdmin, err := svc.IsAdmin(context.Background(), "admin@example.com")

	require.NoError(t, err)
	assert.True(t, isAdmin)
}

// --- List ---

func TestList_NewestFirst(t *testing.T) {
	us := &mockUserStore{}
	us.On("Scan", mock.Anything).Return([]domain.User{
		{UserID: "01AAAAAAAAAAAAAAAAAAAAAAAA"},
		{UserID: "01CCCCCCCCCCCCCCCCCCCCCCCC"},
		{UserID: "01BBBBBBBBBBBBBBBBBBBBBBBB"},
	}, nil)

	svc := NewService(us, &mockSigner{})
	users, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "01CCCCCCCCCCCCCCCCCCCCCCCC", users[0].UserID)
	assert.Equal(t, "01AAAAAAAAAAAAAAAAAAAAAAAA", users[2].UserID)
}
