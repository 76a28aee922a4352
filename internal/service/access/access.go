// Package access resolves bearer tokens into callers and decides what a
// caller may see. Every resource service scopes its queries through Caller.Scope
// and checks single records through Caller.Authorize, so records that exist but
// belong to someone else are reported as not found.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/pkg/auth"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

// Caller is the authenticated actor of a request. At most one of PatientID
// and DoctorID is set, matching the user's role.
type Caller struct {
	User      *model.User
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
}

func (c *Caller) IsPatient() bool {
	return c != nil && c.User != nil && c.User.Role == model.RolePatient && c.PatientID != nil
}

func (c *Caller) IsDoctor() bool {
	return c != nil && c.User != nil && c.User.Role == model.RoleDoctor && c.DoctorID != nil
}

// Scope returns the owner filter for list queries
func (c *Caller) Scope() (repository.OwnerFilter, error) {
	if err := Authenticated(c); err != nil {
		return repository.OwnerFilter{}, err
	}
	switch {
	case c.IsPatient():
		return repository.OwnerFilter{PatientID: c.PatientID}, nil
	case c.IsDoctor():
		return repository.OwnerFilter{DoctorID: c.DoctorID}, nil
	}
	return repository.OwnerFilter{}, apperrors.Forbidden("no patient or doctor profile for this account")
}

// Authorize succeeds when the record with the given owners belongs to the caller.
// Any other outcome is NotFound so that foreign records stay indistinguishable
// from missing ones.
func (c *Caller) Authorize(resource string, patientID uuid.UUID, doctorID *uuid.UUID) error {
	if err := Authenticated(c); err != nil {
		return err
	}
	if c.IsPatient() && *c.PatientID == patientID {
		return nil
	}
	if c.IsDoctor() && doctorID != nil && *c.DoctorID == *doctorID {
		return nil
	}
	return apperrors.NotFound(resource)
}

func Authenticated(c *Caller) error {
	if c == nil || c.User == nil {
		return apperrors.Unauthenticated("")
	}
	return nil
}

// RequirePatient returns the caller's patient profile id
func RequirePatient(c *Caller) (uuid.UUID, error) {
	if err := Authenticated(c); err != nil {
		return uuid.Nil, err
	}
	if !c.IsPatient() {
		return uuid.Nil, apperrors.Forbidden("only patients can perform this action")
	}
	return *c.PatientID, nil
}

// RequireDoctor returns the caller's doctor profile id
func RequireDoctor(c *Caller) (uuid.UUID, error) {
	if err := Authenticated(c); err != nil {
		return uuid.Nil, err
	}
	if !c.IsDoctor() {
		return uuid.Nil, apperrors.Forbidden("only doctors can perform this action")
	}
	return *c.DoctorID, nil
}

type Resolver struct {
	tokens   auth.JWTService
	users    repository.UserRepository
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
}

func NewResolver(tokens auth.JWTService, users repository.UserRepository, patients repository.PatientRepository, doctors repository.DoctorRepository) *Resolver {
	return &Resolver{
		tokens:   tokens,
		users:    users,
		patients: patients,
		doctors:  doctors,
	}
}

// Resolve validates token and loads the user it names together with the
// profile matching the user's role
func (r *Resolver) Resolve(ctx context.Context, token string) (*Caller, error) {
	claims, err := r.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := r.users.GetByEmail(ctx, claims.Subject)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unauthenticated("")
	}
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to resolve caller: %w", err))
	}

	caller := &Caller{User: user}
	switch user.Role {
	case model.RolePatient:
		patient, err := r.patients.GetByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Internal(fmt.Errorf("failed to load patient profile: %w", err))
		}
		if patient != nil {
			caller.PatientID = &patient.ID
		}
	case model.RoleDoctor:
		doctor, err := r.doctors.GetByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Internal(fmt.Errorf("failed to load doctor profile: %w", err))
		}
		if doctor != nil {
			caller.DoctorID = &doctor.ID
		}
	}
	return caller, nil
}

type ctxKey struct{}

func WithCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the caller stored by WithCaller, or nil
func FromContext(ctx context.Context) *Caller {
	c, _ := ctx.Value(ctxKey{}).(*Caller)
	return c
}
