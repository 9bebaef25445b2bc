package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"inventory-backend/internal/user"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]user.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestUserService_CreateUser_HashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	expectedID := primitive.NewObjectID()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).
		Return(expectedID, nil).
		Once()

	created, err := svc.CreateUser(context.Background(), &user.User{
		Name:  "Amina K",
		Email: "amina@example.com",
		Role:  user.RoleAdmin,
	}, "somepassword")

	require.NoError(t, err)
	require.Equal(t, expectedID, created.ID)
	require.NotEqual(t, "somepassword", created.PasswordHash, "password must be stored hashed")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("somepassword")))
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_MissingFields(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	_, err := svc.CreateUser(context.Background(), &user.User{Name: "Amina K"}, "")

	require.ErrorIs(t, err, user.ErrValidation)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_CreateUser_InvalidRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	_, err := svc.CreateUser(context.Background(), &user.User{
		Name:  "Amina K",
		Email: "amina@example.com",
		Role:  user.Role("superadmin"),
	}, "somepassword")

	require.ErrorIs(t, err, user.ErrValidation)
}

func TestUserService_CreateUser_EmailExists(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).
		Return(primitive.NilObjectID, user.ErrEmailExists).
		Once()

	created, err := svc.CreateUser(context.Background(), &user.User{
		Name:  "Amina K",
		Email: "duplicate@example.com",
	}, "somepassword")

	require.ErrorIs(t, err, user.ErrEmailExists)
	require.Nil(t, created)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Authenticate(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("somepassword"), bcrypt.DefaultCost)
	require.NoError(t, err)

	stored := &user.User{
		ID:           primitive.NewObjectID(),
		Name:         "Amina K",
		Email:        "amina@example.com",
		Role:         user.RoleEmployee,
		PasswordHash: string(hash),
	}

	mockRepo.On("GetByEmail", mock.Anything, "amina@example.com").Return(stored, nil)

	authenticated, err := svc.Authenticate(context.Background(), "amina@example.com", "somepassword")
	require.NoError(t, err)
	require.Equal(t, stored.ID, authenticated.ID)

	_, err = svc.Authenticate(context.Background(), "amina@example.com", "wrongpassword")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestUserService_Authenticate_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, user.ErrNotFound).
		Once()

	// Unknown email reads the same as a wrong password.
	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "somepassword")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestUserService_UpdateUser_RoleOnly(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	var captured *user.User
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*user.User")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*user.User)
		}).
		Return(nil).
		Once()

	err := svc.UpdateUser(context.Background(), &user.User{
		ID:   primitive.NewObjectID(),
		Role: user.RoleAdmin,
	}, "")

	require.NoError(t, err)
	require.Equal(t, user.RoleAdmin, captured.Role)
	require.Empty(t, captured.Name, "omitted name must not be rewritten")
	require.Empty(t, captured.Email, "omitted email must not be rewritten")
	require.Empty(t, captured.PasswordHash, "omitted password must not be rehashed")
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_NoFields(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	err := svc.UpdateUser(context.Background(), &user.User{ID: primitive.NewObjectID()}, "")

	require.ErrorIs(t, err, user.ErrValidation)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	id := primitive.NewObjectID()
	mockRepo.On("Delete", mock.Anything, id).Return(user.ErrNotFound).Once()

	err := svc.DeleteUser(context.Background(), id)
	require.ErrorIs(t, err, user.ErrNotFound)
}
