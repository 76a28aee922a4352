package postgres

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
)

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(base BaseRepository) repository.DoctorRepository {
	return &doctorRepository{base}
}

func doctorProfiles() *goqu.SelectDataset {
	return dialect.From(goqu.T("doctors").As("d")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("d.user_id")))).
		Select(
			goqu.I("d.id"), goqu.I("d.user_id"), goqu.I("d.specialization"), goqu.I("d.city"),
			goqu.I("d.clinic_address"), goqu.I("d.description"), goqu.I("d.availability_notes"),
			goqu.I("u.name"), goqu.I("u.email"), goqu.I("u.phone"),
		)
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, `
		SELECT id, user_id, specialization, city, clinic_address, description, availability_notes
		FROM doctors WHERE user_id = $1`, userID)
	if err != nil {
		return nil, wrapErr("get doctor by user", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetProfile(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error) {
	var profile model.DoctorProfile
	ds := doctorProfiles().Where(goqu.I("d.id").Eq(id.String()))
	if err := r.selectOne(ctx, &profile, ds); err != nil {
		return nil, wrapErr("get doctor", err)
	}
	return &profile, nil
}

func (r *doctorRepository) Search(ctx context.Context, filter model.DoctorFilter) ([]model.DoctorProfile, error) {
	ds := doctorProfiles()
	if filter.Name != "" {
		ds = ds.Where(goqu.I("u.name").ILike(containsPattern(filter.Name)))
	}
	if filter.Specialization != "" {
		ds = ds.Where(goqu.I("d.specialization").ILike(containsPattern(filter.Specialization)))
	}
	if filter.City != "" {
		ds = ds.Where(goqu.I("d.city").ILike(containsPattern(filter.City)))
	}
	ds = ds.Order(goqu.I("u.name").Asc())

	doctors := []model.DoctorProfile{}
	if err := r.selectAll(ctx, &doctors, ds); err != nil {
		return nil, wrapErr("search doctors", err)
	}
	return doctors, nil
}

func (r *doctorRepository) SearchText(ctx context.Context, q string, limit int) ([]model.DoctorProfile, error) {
	pattern := containsPattern(q)
	ds := doctorProfiles().
		Where(goqu.Or(
			goqu.I("u.name").ILike(pattern),
			goqu.I("d.specialization").ILike(pattern),
		)).
		Order(goqu.I("u.name").Asc()).
		Limit(uint(limit))

	doctors := []model.DoctorProfile{}
	if err := r.selectAll(ctx, &doctors, ds); err != nil {
		return nil, wrapErr("search doctors", err)
	}
	return doctors, nil
}
