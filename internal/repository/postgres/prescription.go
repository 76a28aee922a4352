package postgres

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
)

const medicationColumns = `id, prescription_id, position, name, dosage, frequency_description, start_date, end_date, notes`

type prescriptionRepository struct {
	BaseRepository
}

func NewPrescriptionRepository(base BaseRepository) repository.PrescriptionRepository {
	return &prescriptionRepository{base}
}

func prescriptionDetails() *goqu.SelectDataset {
	return dialect.From(goqu.T("prescriptions").As("rx")).
		Join(goqu.T("patients").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("rx.patient_id")))).
		Join(goqu.T("users").As("pu"), goqu.On(goqu.I("pu.id").Eq(goqu.I("p.user_id")))).
		Join(goqu.T("doctors").As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("rx.doctor_id")))).
		Join(goqu.T("users").As("du"), goqu.On(goqu.I("du.id").Eq(goqu.I("d.user_id")))).
		Select(
			goqu.I("rx.id"), goqu.I("rx.patient_id"), goqu.I("rx.doctor_id"),
			goqu.I("rx.description"), goqu.I("rx.created_at"),
			goqu.I("pu.name").As("patient_name"),
			goqu.I("pu.id").As("patient_user_id"),
			goqu.I("du.name").As("doctor_name"),
			goqu.I("du.id").As("doctor_user_id"),
		)
}

func (r *prescriptionRepository) Create(ctx context.Context, p *model.Prescription, medications []model.Medication) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO prescriptions (id, patient_id, doctor_id, description, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			p.ID, p.PatientID, p.DoctorID, p.Description, p.CreatedAt,
		); err != nil {
			return wrapErr("create prescription", err)
		}

		for i := range medications {
			med := &medications[i]
			med.ID = uuid.New()
			med.PrescriptionID = p.ID
			med.Position = i
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO medications (`+medicationColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				med.ID, med.PrescriptionID, med.Position, med.Name, med.Dosage,
				med.FrequencyDescription, med.StartDate, med.EndDate, med.Notes,
			); err != nil {
				return wrapErr("create medication", err)
			}
		}
		return nil
	})
}

func (r *prescriptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.PrescriptionDetails, error) {
	var details model.PrescriptionDetails
	ds := prescriptionDetails().Where(goqu.I("rx.id").Eq(id.String()))
	if err := r.selectOne(ctx, &details, ds); err != nil {
		return nil, wrapErr("get prescription", err)
	}

	meds := []model.Medication{}
	err := r.db.SelectContext(ctx, &meds,
		`SELECT `+medicationColumns+` FROM medications WHERE prescription_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, wrapErr("get medications", err)
	}
	details.Medications = meds
	return &details, nil
}

func (r *prescriptionRepository) List(ctx context.Context, owner repository.OwnerFilter) ([]model.PrescriptionDetails, error) {
	ds, err := ownerScope(prescriptionDetails(), "rx", owner)
	if err != nil {
		return nil, err
	}
	ds = ds.Order(goqu.I("rx.created_at").Desc())

	list := []model.PrescriptionDetails{}
	if err := r.selectAll(ctx, &list, ds); err != nil {
		return nil, wrapErr("list prescriptions", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]uuid.UUID, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	query, args, err := sqlx.In(
		`SELECT `+medicationColumns+` FROM medications WHERE prescription_id IN (?) ORDER BY prescription_id, position`, ids)
	if err != nil {
		return nil, wrapErr("build medications query", err)
	}

	var meds []model.Medication
	if err := r.db.SelectContext(ctx, &meds, r.db.Rebind(query), args...); err != nil {
		return nil, wrapErr("list medications", err)
	}

	byPrescription := make(map[uuid.UUID][]model.Medication, len(list))
	for _, m := range meds {
		byPrescription[m.PrescriptionID] = append(byPrescription[m.PrescriptionID], m)
	}
	for i := range list {
		list[i].Medications = byPrescription[list[i].ID]
	}
	return list, nil
}
