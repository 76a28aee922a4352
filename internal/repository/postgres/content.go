package postgres

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
)

type contentRepository struct {
	BaseRepository
}

func NewContentRepository(base BaseRepository) repository.ContentRepository {
	return &contentRepository{base}
}

func healthTips() *goqu.SelectDataset {
	return dialect.From("health_tips").
		Select("id", "title", "content", "category", "created_at").
		Order(goqu.I("created_at").Desc())
}

func faqs() *goqu.SelectDataset {
	return dialect.From("faqs").
		Select("id", "question", "answer", "created_at").
		Order(goqu.I("created_at").Desc())
}

func paginate(ds *goqu.SelectDataset, page model.Page) *goqu.SelectDataset {
	return ds.Offset(uint(page.Skip)).Limit(uint(page.Limit))
}

func (r *contentRepository) ListHealthTips(ctx context.Context, filter model.TipFilter, page model.Page) ([]model.HealthTip, error) {
	ds := healthTips()
	if filter.Category != "" {
		ds = ds.Where(goqu.C("category").Eq(string(filter.Category)))
	}

	tips := []model.HealthTip{}
	if err := r.selectAll(ctx, &tips, paginate(ds, page)); err != nil {
		return nil, wrapErr("list health tips", err)
	}
	return tips, nil
}

func (r *contentRepository) ListFAQs(ctx context.Context, page model.Page) ([]model.FAQ, error) {
	list := []model.FAQ{}
	if err := r.selectAll(ctx, &list, paginate(faqs(), page)); err != nil {
		return nil, wrapErr("list faqs", err)
	}
	return list, nil
}

func (r *contentRepository) SearchHealthTips(ctx context.Context, q string, limit int) ([]model.HealthTip, error) {
	pattern := containsPattern(q)
	ds := healthTips().
		Where(goqu.Or(goqu.C("title").ILike(pattern), goqu.C("content").ILike(pattern))).
		Limit(uint(limit))

	tips := []model.HealthTip{}
	if err := r.selectAll(ctx, &tips, ds); err != nil {
		return nil, wrapErr("search health tips", err)
	}
	return tips, nil
}

func (r *contentRepository) SearchFAQs(ctx context.Context, q string, limit int) ([]model.FAQ, error) {
	pattern := containsPattern(q)
	ds := faqs().
		Where(goqu.Or(goqu.C("question").ILike(pattern), goqu.C("answer").ILike(pattern))).
		Limit(uint(limit))

	list := []model.FAQ{}
	if err := r.selectAll(ctx, &list, ds); err != nil {
		return nil, wrapErr("search faqs", err)
	}
	return list, nil
}
