package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
)

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

func appointmentDetails() *goqu.SelectDataset {
	return dialect.From(goqu.T("appointments").As("a")).
		Join(goqu.T("patients").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("a.patient_id")))).
		Join(goqu.T("users").As("pu"), goqu.On(goqu.I("pu.id").Eq(goqu.I("p.user_id")))).
		Join(goqu.T("doctors").As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("a.doctor_id")))).
		Join(goqu.T("users").As("du"), goqu.On(goqu.I("du.id").Eq(goqu.I("d.user_id")))).
		Select(
			goqu.I("a.id"), goqu.I("a.patient_id"), goqu.I("a.doctor_id"), goqu.I("a.date"),
			goqu.I("a.time"), goqu.I("a.type"), goqu.I("a.status"), goqu.I("a.notes"),
			goqu.I("a.created_at"),
			goqu.I("pu.name").As("patient_name"),
			goqu.I("pu.id").As("patient_user_id"),
			goqu.I("du.name").As("doctor_name"),
			goqu.I("du.id").As("doctor_user_id"),
			goqu.I("d.specialization").As("doctor_specialization"),
		)
}

// ownerScope adds the owner predicate on table alias t. An empty filter is rejected.
func ownerScope(ds *goqu.SelectDataset, t string, owner repository.OwnerFilter) (*goqu.SelectDataset, error) {
	switch {
	case owner.PatientID != nil:
		return ds.Where(goqu.I(t + ".patient_id").Eq(owner.PatientID.String())), nil
	case owner.DoctorID != nil:
		return ds.Where(goqu.I(t + ".doctor_id").Eq(owner.DoctorID.String())), nil
	}
	return nil, fmt.Errorf("owner filter is required")
}

func (r *appointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, patient_id, doctor_id, date, time, type, status, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.PatientID, a.DoctorID, a.Date, a.Time, a.Type, a.Status, a.Notes, a.CreatedAt,
	)
	return wrapErr("create appointment", err)
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.AppointmentDetails, error) {
	var details model.AppointmentDetails
	ds := appointmentDetails().Where(goqu.I("a.id").Eq(id.String()))
	if err := r.selectOne(ctx, &details, ds); err != nil {
		return nil, wrapErr("get appointment", err)
	}
	return &details, nil
}

func (r *appointmentRepository) List(ctx context.Context, owner repository.OwnerFilter, filter model.AppointmentFilter) ([]model.AppointmentDetails, error) {
	ds, err := ownerScope(appointmentDetails(), "a", owner)
	if err != nil {
		return nil, err
	}

	if filter.Upcoming != nil {
		today := filter.Today.String()
		if *filter.Upcoming {
			ds = ds.Where(goqu.I("a.date").Gte(today))
		} else {
			ds = ds.Where(goqu.I("a.date").Lt(today))
		}
	}
	ds = ds.Order(goqu.I("a.date").Desc(), goqu.I("a.time").Desc())

	appointments := []model.AppointmentDetails{}
	if err := r.selectAll(ctx, &appointments, ds); err != nil {
		return nil, wrapErr("list appointments", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.AppointmentStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE appointments SET status = $1 WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return wrapErr("update appointment status", err)
	}
	err = requireRows(result)
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM appointments WHERE id = $1)`, id); err != nil {
		return wrapErr("check appointment", err)
	}
	if exists {
		return repository.ErrStale
	}
	return repository.ErrNotFound
}
