package service

import (
	"context"
	"errors"
	"testing"

	"carshare/internal/httpapi/models"
	"carshare/internal/httpapi/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOwnershipRepository mocks the OwnershipRepository interface
type MockOwnershipRepository struct {
	mock.Mock
}

func (m *MockOwnershipRepository) Exists(ctx context.Context, userID string, carID int64) (bool, error) {
	args := m.Called(ctx, userID, carID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOwnershipRepository) Attach(ctx context.Context, userID string, carID int64) error {
	args := m.Called(ctx, userID, carID)
	return args.Error(0)
}

func (m *MockOwnershipRepository) Detach(ctx context.Context, userID string, carID int64) error {
	args := m.Called(ctx, userID, carID)
	return args.Error(0)
}

func (m *MockOwnershipRepository) UsersForCar(ctx context.Context, carID int64) ([]models.User, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockOwnershipRepository) CarsForUser(ctx context.Context, userID string) ([]models.Car, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Car), args.Error(1)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newOwnershipService() (OwnershipService, *MockOwnershipRepository, *MockUserRepository) {
	ownerships := new(MockOwnershipRepository)
	users := new(MockUserRepository)
	return NewOwnershipService(ownerships, users), ownerships, users
}

func TestHasAccess_RowExists(t *testing.T) {
	svc, ownerships, _ := newOwnershipService()
	ownerships.On("Exists", mock.Anything, "user-1", int64(7)).Return(true, nil)

	ok, err := svc.HasAccess(context.Background(), 7, "user-1")

	assert.NoError(t, err)
	assert.True(t, ok)
	ownerships.AssertExpectations(t)
}

func TestHasAccess_NoRow(t *testing.T) {
	svc, ownerships, _ := newOwnershipService()
	ownerships.On("Exists", mock.Anything, "user-1", int64(7)).Return(false, nil)

	ok, err := svc.HasAccess(context.Background(), 7, "user-1")

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestHasAccess_UnauthenticatedIsAlwaysFalse(t *testing.T) {
	svc, ownerships, _ := newOwnershipService()

	ok, err := svc.HasAccess(context.Background(), 7, "")

	assert.NoError(t, err)
	assert.False(t, ok)
	// The repository must not even be consulted for an absent actor.
	ownerships.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

func TestAttach_Success(t *testing.T) {
	svc, ownerships, _ := newOwnershipService()
	ownerships.On("Exists", mock.Anything, "user-1", int64(7)).Return(false, nil)
	ownerships.On("Attach", mock.Anything, "user-1", int64(7)).Return(nil)

	err := svc.Attach(context.Background(), 7, "user-1")

	assert.NoError(t, err)
	ownerships.AssertExpectations(t)
}

func TestAttach_AlreadyAttached(t *testing.T) {
	svc, ownerships, _ := newOwnershipService()
	ownerships.On("Exists", mock.Anything, "user-1", int64(7)).Return(true, nil)

	err := svc.Attach(context.Background(), 7, "user-1")

	assert.ErrorIs(t, err, ErrAlreadyAttached)
	ownerships.AssertNotCalled(t, "Attach", mock.Anything, mock.Anything, mock.Anything)
}

func TestAttach_ConcurrentLoserGetsConflict(t *testing.T) {
	// The pre-check passes but a parallel attach wins the insert; the
	// uniqueness violation must come back as the same conflict outcome.
	svc, ownerships, _ := newOwnershipService()
	ownerships.On("Exists", mock.Anything, "user-1", int64(7)).Return(false, nil)
	ownerships.On("Attach", mock.Anything, "user-1", int64(7)).Return(repository.ErrDuplicate)

	err := svc.Attach(context.Background(), 7, "user-1")

	assert.ErrorIs(t, err, ErrAlreadyAttached)
}

func TestDetach_Success(t *testing.T) {
	svc, ownerships, _ := newOwnershipService()
	ownerships.On("Exists", mock.Anything, "user-1", int64(7)).Return(true, nil)
	ownerships.On("Detach", mock.Anything, "user-1", int64(7)).Return(nil)

	err := svc.Detach(context.Background(), 7, "user-1")

	assert.NoError(t, err)
	ownerships.AssertExpectations(t)
}

func TestDetach_NotAttached(t *testing.T) {
	svc, ownerships, _ := newOwnershipService()
	ownerships.On("Exists", mock.Anything, "user-1", int64(7)).Return(false, nil)

	err := svc.Detach(context.Background(), 7, "user-1")

	assert.ErrorIs(t, err, ErrNotAttached)
	ownerships.AssertNotCalled(t, "Detach", mock.Anything, mock.Anything, mock.Anything)
}

func TestDetach_RowGoneUnderneath(t *testing.T) {
	svc, ownerships, _ := newOwnershipService()
	ownerships.On("Exists", mock.Anything, "user-1", int64(7)).Return(true, nil)
	ownerships.On("Detach", mock.Anything, "user-1", int64(7)).Return(repository.ErrNotFound)

	err := svc.Detach(context.Background(), 7, "user-1")

	assert.ErrorIs(t, err, ErrNotAttached)
}

func TestShare_Success(t *testing.T) {
	svc, ownerships, users := newOwnershipService()
	recipient := &models.User{ID: "user-2", Name: "Charlie", Email: "charlie@example.com"}

	ownerships.On("Exists", mock.Anything, "user-1", int64(7)).Return(true, nil)
	users.On("FindByEmail", mock.Anything, "charlie@example.com").Return(recipient, nil)
	ownerships.On("Exists", mock.Anything, "user-2", int64(7)).Return(false, nil)
	ownerships.On("Attach", mock.Anything, "user-2", int64(7)).Return(nil)

	got, err := svc.Share(context.Background(), 7, "user-1", "charlie@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "user-2", got.ID)
	assert.Equal(t, "charlie@example.com", got.Email)
	ownerships.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestShare_GrantorWithoutAccessIsForbidden(t *testing.T) {
	svc, ownerships, users := newOwnershipService()
	ownerships.On("Exists", mock.Anything, "user-1", int64(7)).Return(false, nil)

	_, err := svc.Share(context.Background(), 7, "user-1", "charlie@example.com")

	assert.ErrorIs(t, err, ErrNoAccess)
	// Recipient state is irrelevant when the grantor holds no rights.
	users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestShare_RecipientUnknown(t *testing.T) {
	svc, ownerships, users := newOwnershipService()
	ownerships.On("Exists", mock.Anything, "user-1", int64(7)).Return(true, nil)
	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	_, err := svc.Share(context.Background(), 7, "user-1", "nobody@example.com")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestShare_RecipientAlreadyHasAccess(t *testing.T) {
	svc, ownerships, users := newOwnershipService()
	recipient := &models.User{ID: "user-2", Email: "charlie@example.com"}

	ownerships.On("Exists", mock.Anything, "user-1", int64(7)).Return(true, nil)
	users.On("FindByEmail", mock.Anything, "charlie@example.com").Return(recipient, nil)
	ownerships.On("Exists", mock.Anything, "user-2", int64(7)).Return(true, nil)

	_, err := svc.Share(context.Background(), 7, "user-1", "charlie@example.com")

	assert.ErrorIs(t, err, ErrAlreadyShared)
	ownerships.AssertNotCalled(t, "Attach", mock.Anything, mock.Anything, mock.Anything)
}

func TestShare_ConcurrentLoserGetsConflict(t *testing.T) {
	svc, ownerships, users := newOwnershipService()
	recipient := &models.User{ID: "user-2", Email: "charlie@example.com"}

	ownerships.On("Exists", mock.Anything, "user-1", int64(7)).Return(true, nil)
	users.On("FindByEmail", mock.Anything, "charlie@example.com").Return(recipient, nil)
	ownerships.On("Exists", mock.Anything, "user-2", int64(7)).Return(false, nil)
	ownerships.On("Attach", mock.Anything, "user-2", int64(7)).Return(repository.ErrDuplicate)

	_, err := svc.Share(context.Background(), 7, "user-1", "charlie@example.com")

	assert.ErrorIs(t, err, ErrAlreadyShared)
}

func TestCarUsers_ReturnsAssociatedUsers(t *testing.T) {
	svc, ownerships, _ := newOwnershipService()
	expected := []models.User{
		{ID: "user-1", Email: "alice@example.com"},
		{ID: "user-2", Email: "bob@example.com"},
	}
	ownerships.On("UsersForCar", mock.Anything, int64(7)).Return(expected, nil)

	users, err := svc.CarUsers(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	// Membership matters, ordering does not.
	ids := []string{users[0].ID, users[1].ID}
	assert.Contains(t, ids, "user-1")
	assert.Contains(t, ids, "user-2")
}

// Full sharing scenario: A attaches, B cannot share, A shares to C, A
// detaches and C keeps access.
func TestSharingLifecycle(t *testing.T) {
	svc, ownerships, users := newOwnershipService()
	carID := int64(7)
	c := &models.User{ID: "C", Email: "c@example.com"}

	// A attaches car 7.
	ownerships.On("Exists", mock.Anything, "A", carID).Return(false, nil).Once()
	ownerships.On("Attach", mock.Anything, "A", carID).Return(nil).Once()
	assert.NoError(t, svc.Attach(context.Background(), carID, "A"))

	// B holds nothing, so sharing to C is forbidden.
	ownerships.On("Exists", mock.Anything, "B", carID).Return(false, nil).Once()
	_, err := svc.Share(context.Background(), carID, "B", "c@example.com")
	assert.ErrorIs(t, err, ErrNoAccess)

	// A shares to C.
	ownerships.On("Exists", mock.Anything, "A", carID).Return(true, nil).Once()
	users.On("FindByEmail", mock.Anything, "c@example.com").Return(c, nil).Once()
	ownerships.On("Exists", mock.Anything, "C", carID).Return(false, nil).Once()
	ownerships.On("Attach", mock.Anything, "C", carID).Return(nil).Once()
	shared, err := svc.Share(context.Background(), carID, "A", "c@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "C", shared.ID)

	// A detaches; C's independent row survives.
	ownerships.On("Exists", mock.Anything, "A", carID).Return(true, nil).Once()
	ownerships.On("Detach", mock.Anything, "A", carID).Return(nil).Once()
	assert.NoError(t, svc.Detach(context.Background(), carID, "A"))

	ownerships.On("Exists", mock.Anything, "C", carID).Return(true, nil).Once()
	stillHas, err := svc.HasAccess(context.Background(), carID, "C")
	assert.NoError(t, err)
	assert.True(t, stillHas)

	ownerships.AssertExpectations(t)
}

func TestAttach_RepositoryFailurePropagates(t *testing.T) {
	svc, ownerships, _ := newOwnershipService()
	boom := errors.New("connection reset")
	ownerships.On("Exists", mock.Anything, "user-1", int64(7)).Return(false, boom)

	err := svc.Attach(context.Background(), 7, "user-1")

	assert.ErrorIs(t, err, boom)
}
