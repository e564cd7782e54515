package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, email, password, name, phone string) (User, error) {
	args := m.Called(ctx, email, password, name, phone)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, "a@b.com", mock.AnythingOfType("string"), "A", "+1").
			Return(User{ID: 1, Email: "a@b.com", Name: "A", Phone: "+1", Role: RoleUser}, nil)

		token, u, err := svc.Register(ctx, "a@b.com", "secret1", "A", "+1")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, RoleUser, u.Role)

		// the hash is what goes to the repo, never the plaintext
		stored := repo.Calls[0].Arguments.String(2)
		assert.NotEqual(t, "secret1", stored)
		assert.True(t, CheckPasswordHash("secret1", stored))
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, "a@b.com", mock.Anything, "A", "+1").
			Return(User{}, errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, _, err := svc.Register(ctx, "a@b.com", "secret1", "A", "+1")
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, "a@b.com").
			Return(User{ID: 7, Email: "a@b.com", Password: hash, Role: RoleUser}, nil)

		token, u, err := svc.Login(ctx, "a@b.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, uint(7), u.ID)

		claims, err := ParseJWT(token)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, "ghost@b.com").Return(User{}, ErrNotFound)

		_, _, err := svc.Login(ctx, "ghost@b.com", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, "a@b.com").
			Return(User{ID: 7, Email: "a@b.com", Password: hash}, nil)

		_, _, err := svc.Login(ctx, "a@b.com", "wrong")
		// same error as unknown email, the caller learns nothing extra
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
