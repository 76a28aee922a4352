// Package account handles patient self-registration, login and the
// caller's own profile.
package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/internal/service/access"
	"github.com/jwalitptl/patient-portal/pkg/auth"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/security"
	"github.com/jwalitptl/patient-portal/pkg/validator"
)

var errBadCredentials = apperrors.Unauthenticated("incorrect email or password")

type Service struct {
	users     repository.UserRepository
	tokens    auth.JWTService
	hasher    security.PasswordHasher
	validator validator.Validator
	now       func() time.Time
}

func NewService(users repository.UserRepository, tokens auth.JWTService, hasher security.PasswordHasher, v validator.Validator) *Service {
	return &Service{
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		validator: v,
		now:       time.Now,
	}
}

// Register creates a PATIENT user together with its patient profile
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	email := req.Email

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.Conflict("email already registered")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := s.now().UTC()
	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Phone:        req.Phone,
		DateOfBirth:  req.DateOfBirth,
		Role:         model.RolePatient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	patient := &model.Patient{ID: uuid.New(), UserID: user.ID}

	err = s.users.CreatePatientAccount(ctx, user, patient)
	if errors.Is(err, repository.ErrDuplicate) {
		// lost a race with a concurrent registration
		return nil, apperrors.Conflict("email already registered")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	log.Info().Str("user_id", user.ID.String()).Msg("patient registered")
	return user, nil
}

// Login returns a bearer token whose subject is the user's email. Unknown
// email and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		log.Debug().Str("user_id", user.ID.String()).Msg("login with wrong password")
		return nil, errBadCredentials
	}

	token, err := s.tokens.Issue(user.Email, 0)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.TokenResponse{AccessToken: token, TokenType: model.TokenTypeBearer}, nil
}

func (s *Service) Me(ctx context.Context, caller *access.Caller) (*model.User, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	return caller.User, nil
}

// UpdateMe applies the non-nil fields of req to the caller's user
func (s *Service) UpdateMe(ctx context.Context, caller *access.Caller, req *model.UpdateUserRequest) (*model.User, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	updated := *caller.User
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		updated.Phone = req.Phone
	}
	if req.DateOfBirth != nil {
		updated.DateOfBirth = req.DateOfBirth
	}
	updated.UpdatedAt = s.now().UTC()

	err := s.users.Update(ctx, &updated)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("User")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &updated, nil
}

func (s *Service) ChangePassword(ctx context.Context, caller *access.Caller, req *model.ChangePasswordRequest) error {
	if err := access.Authenticated(caller); err != nil {
		return err
	}
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	if err := s.hasher.Compare(caller.User.PasswordHash, req.OldPassword); err != nil {
		return apperrors.InvalidInput("old password is incorrect")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return apperrors.Internal(err)
	}
	if err := s.users.UpdatePassword(ctx, caller.User.ID, hash); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
