package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
)

const userColumns = `id, email, password_hash, name, phone, date_of_birth, role, created_at, updated_at`

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func (r *userRepository) CreatePatientAccount(ctx context.Context, user *model.User, patient *model.Patient) error {
	now := time.Now().UTC()
	user.ID = uuid.New()
	user.Role = model.RolePatient
	user.CreatedAt = now
	user.UpdatedAt = now
	patient.ID = uuid.New()
	patient.UserID = user.ID

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO users (`+userColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			user.ID, user.Email, user.PasswordHash, user.Name, user.Phone,
			user.DateOfBirth, user.Role, user.CreatedAt, user.UpdatedAt,
		); err != nil {
			return wrapErr("create user", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO patients (id, user_id, medical_notes)
			VALUES ($1, $2, $3)`,
			patient.ID, patient.UserID, patient.MedicalNotes,
		); err != nil {
			return wrapErr("create patient", err)
		}
		return nil
	})
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id); err != nil {
		return nil, wrapErr("get user", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email); err != nil {
		return nil, wrapErr("get user by email", err)
	}
	return &user, nil
}

// Update writes the mutable profile fields. Email and role are never changed.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			name = $1,
			phone = $2,
			date_of_birth = $3,
			updated_at = $4
		WHERE id = $5`,
		user.Name, user.Phone, user.DateOfBirth, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return wrapErr("update user", err)
	}
	return requireRows(result)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now().UTC(), id,
	)
	if err != nil {
		return wrapErr("update password", err)
	}
	return requireRows(result)
}
