package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/internal/repository/mocks"
	"github.com/jwalitptl/patient-portal/internal/service/access"
	"github.com/jwalitptl/patient-portal/pkg/auth"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/security"
	"github.com/jwalitptl/patient-portal/pkg/validator"
)

func newService(t *testing.T) (*Service, *mocks.UserRepository, auth.JWTService, security.PasswordHasher) {
	t.Helper()
	tokens, err := auth.NewJWTService(auth.Config{Secret: "test-secret", DefaultTTL: time.Hour})
	require.NoError(t, err)
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	users := new(mocks.UserRepository)
	return NewService(users, tokens, hasher, validator.New()), users, tokens, hasher
}

func TestRegister(t *testing.T) {
	svc, users, _, hasher := newService(t)

	users.On("GetByEmail", mock.Anything, "max@example.com").Return(nil, repository.ErrNotFound)
	users.On("CreatePatientAccount", mock.Anything,
		mock.MatchedBy(func(u *model.User) bool { return u.Role == model.RolePatient }),
		mock.AnythingOfType("*model.Patient"),
	).Return(nil)

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    " Max@Example.com",
		Password: "secret1",
		Name:     "Max Mustermann",
	})
	require.NoError(t, err)
	assert.Equal(t, "max@example.com", user.Email)
	assert.Equal(t, model.RolePatient, user.Role)
	assert.NoError(t, hasher.Compare(user.PasswordHash, "secret1"))
	users.AssertExpectations(t)
}

func TestRegisterConflict(t *testing.T) {
	t.Run("existing email", func(t *testing.T) {
		svc, users, _, _ := newService(t)
		users.On("GetByEmail", mock.Anything, "max@example.com").Return(&model.User{}, nil)

		_, err := svc.Register(context.Background(), &model.RegisterRequest{Email: "max@example.com", Password: "secret1", Name: "Max"})
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	})

	t.Run("concurrent insert", func(t *testing.T) {
		svc, users, _, _ := newService(t)
		users.On("GetByEmail", mock.Anything, "max@example.com").Return(nil, repository.ErrNotFound)
		users.On("CreatePatientAccount", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.Join(repository.ErrDuplicate, errors.New("users_email_key")))

		_, err := svc.Register(context.Background(), &model.RegisterRequest{Email: "max@example.com", Password: "secret1", Name: "Max"})
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	})
}

func TestRegisterShortPassword(t *testing.T) {
	svc, users, _, _ := newService(t)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{Email: "max@example.com", Password: "12345", Name: "Max"})
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
	users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	svc, users, tokens, hasher := newService(t)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "max@example.com").
		Return(&model.User{Email: "max@example.com", PasswordHash: hash}, nil)
	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Email: "max@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)

	claims, err := tokens.Validate(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "max@example.com", claims.Subject)

	padded, err := svc.Login(context.Background(), &model.LoginRequest{Email: "MAX@example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, padded.AccessToken)

	_, wrongPassword := svc.Login(context.Background(), &model.LoginRequest{Email: "max@example.com", Password: "nope"})
	_, unknownUser := svc.Login(context.Background(), &model.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	for _, err := range []error{wrongPassword, unknownUser} {
		assert.True(t, apperrors.Is(err, apperrors.KindUnauthenticated))
		assert.Equal(t, "incorrect email or password", err.Error())
	}
}

func TestUpdateMe(t *testing.T) {
	svc, users, _, _ := newService(t)

	caller := &access.Caller{User: &model.User{Name: "Max", Email: "max@example.com", Role: model.RolePatient}}
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Name == "Maximilian" && u.Email == "max@example.com" && u.Role == model.RolePatient
	})).Return(nil)

	name := " Maximilian "
	user, err := svc.UpdateMe(context.Background(), caller, &model.UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Maximilian", user.Name)
	assert.Nil(t, user.Phone)
}

func TestUpdateMeRejectsEmptyName(t *testing.T) {
	svc, _, _, _ := newService(t)

	empty := ""
	_, err := svc.UpdateMe(context.Background(), &access.Caller{User: &model.User{}}, &model.UpdateUserRequest{Name: &empty})
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
}

func TestChangePassword(t *testing.T) {
	svc, users, _, hasher := newService(t)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	caller := &access.Caller{User: &model.User{PasswordHash: hash}}

	err = svc.ChangePassword(context.Background(), caller, &model.ChangePasswordRequest{OldPassword: "wrong1", NewPassword: "secret2"})
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidInput))

	users.On("UpdatePassword", mock.Anything, caller.User.ID, mock.MatchedBy(func(h string) bool {
		return hasher.Compare(h, "secret2") == nil
	})).Return(nil)
	require.NoError(t, svc.ChangePassword(context.Background(), caller, &model.ChangePasswordRequest{OldPassword: "secret1", NewPassword: "secret2"}))
	users.AssertExpectations(t)
}

func TestMeRequiresCaller(t *testing.T) {
	svc, _, _, _ := newService(t)

	_, err := svc.Me(context.Background(), nil)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthenticated))
}
