package postgres

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
)

type labResultRepository struct {
	BaseRepository
}

func NewLabResultRepository(base BaseRepository) repository.LabResultRepository {
	return &labResultRepository{base}
}

// doctor columns come from a LEFT JOIN and are NULL for results entered without a doctor
func labResultDetails() *goqu.SelectDataset {
	return dialect.From(goqu.T("lab_results").As("l")).
		Join(goqu.T("patients").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("l.patient_id")))).
		Join(goqu.T("users").As("pu"), goqu.On(goqu.I("pu.id").Eq(goqu.I("p.user_id")))).
		LeftJoin(goqu.T("doctors").As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("l.doctor_id")))).
		LeftJoin(goqu.T("users").As("du"), goqu.On(goqu.I("du.id").Eq(goqu.I("d.user_id")))).
		Select(
			goqu.I("l.id"), goqu.I("l.patient_id"), goqu.I("l.doctor_id"), goqu.I("l.test_name"),
			goqu.I("l.result_value"), goqu.I("l.unit"), goqu.I("l.normal_range"), goqu.I("l.date"),
			goqu.I("l.file_path"), goqu.I("l.created_at"),
			goqu.I("pu.name").As("patient_name"),
			goqu.I("pu.id").As("patient_user_id"),
			goqu.I("du.name").As("doctor_name"),
			goqu.I("du.id").As("doctor_user_id"),
		)
}

func (r *labResultRepository) Create(ctx context.Context, result *model.LabResult) error {
	result.ID = uuid.New()
	result.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lab_results (
			id, patient_id, doctor_id, test_name, result_value, unit,
			normal_range, date, file_path, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		result.ID, result.PatientID, result.DoctorID, result.TestName, result.ResultValue,
		result.Unit, result.NormalRange, result.Date, result.FilePath, result.CreatedAt,
	)
	return wrapErr("create lab result", err)
}

func (r *labResultRepository) Get(ctx context.Context, id uuid.UUID) (*model.LabResultDetails, error) {
	var details model.LabResultDetails
	if err := r.selectOne(ctx, &details, labResultDetails().Where(goqu.I("l.id").Eq(id.String()))); err != nil {
		return nil, wrapErr("get lab result", err)
	}
	return &details, nil
}

func (r *labResultRepository) List(ctx context.Context, owner repository.OwnerFilter) ([]model.LabResultDetails, error) {
	ds, err := ownerScope(labResultDetails(), "l", owner)
	if err != nil {
		return nil, err
	}

	results := []model.LabResultDetails{}
	ds = ds.Order(goqu.I("l.date").Desc(), goqu.I("l.created_at").Desc())
	if err := r.selectAll(ctx, &results, ds); err != nil {
		return nil, wrapErr("list lab results", err)
	}
	return results, nil
}
