package postgres

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
)

type reportRepository struct {
	BaseRepository
}

func NewReportRepository(base BaseRepository) repository.ReportRepository {
	return &reportRepository{base}
}

func reportDetails() *goqu.SelectDataset {
	return dialect.From(goqu.T("reports").As("r")).
		Join(goqu.T("patients").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("r.patient_id")))).
		Join(goqu.T("users").As("pu"), goqu.On(goqu.I("pu.id").Eq(goqu.I("p.user_id")))).
		Join(goqu.T("doctors").As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("r.doctor_id")))).
		Join(goqu.T("users").As("du"), goqu.On(goqu.I("du.id").Eq(goqu.I("d.user_id")))).
		Select(
			goqu.I("r.id"), goqu.I("r.patient_id"), goqu.I("r.doctor_id"), goqu.I("r.title"),
			goqu.I("r.content"), goqu.I("r.file_path"), goqu.I("r.created_at"),
			goqu.I("pu.name").As("patient_name"),
			goqu.I("pu.id").As("patient_user_id"),
			goqu.I("du.name").As("doctor_name"),
			goqu.I("du.id").As("doctor_user_id"),
		)
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	report.ID = uuid.New()
	report.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reports (id, patient_id, doctor_id, title, content, file_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		report.ID, report.PatientID, report.DoctorID, report.Title, report.Content,
		report.FilePath, report.CreatedAt,
	)
	return wrapErr("create report", err)
}

func (r *reportRepository) Get(ctx context.Context, id uuid.UUID) (*model.ReportDetails, error) {
	var details model.ReportDetails
	if err := r.selectOne(ctx, &details, reportDetails().Where(goqu.I("r.id").Eq(id.String()))); err != nil {
		return nil, wrapErr("get report", err)
	}
	return &details, nil
}

func (r *reportRepository) List(ctx context.Context, owner repository.OwnerFilter) ([]model.ReportDetails, error) {
	ds, err := ownerScope(reportDetails(), "r", owner)
	if err != nil {
		return nil, err
	}

	reports := []model.ReportDetails{}
	if err := r.selectAll(ctx, &reports, ds.Order(goqu.I("r.created_at").Desc())); err != nil {
		return nil, wrapErr("list reports", err)
	}
	return reports, nil
}
