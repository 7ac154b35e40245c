package repository

import (
	"context"
	"time"

	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	domainRepo "github.com/praxishq/praxis-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountClients(ctx context.Context) (int64, int64, error) {
	var total, leads int64

	if err := r.db.WithContext(ctx).Model(&entity.Client{}).Count(&total).Error; err != nil {
		return 0, 0, classify(err)
	}

	err := r.db.WithContext(ctx).Model(&entity.Client{}).
		Where("status = ?", enum.ClientStatusLead).
		Count(&leads).Error
	return total, leads, classify(err)
}

func (r *analyticsRepository) CountActiveProjects(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Project{}).
		Where("archived = ?", false).
		Count(&count).Error
	return count, classify(err)
}

func (r *analyticsRepository) OutstandingInvoiceTotal(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM invoices
		WHERE status = ? AND deleted_at IS NULL
	`, enum.InvoiceStatusSent).Scan(&total).Error
	return total, classify(err)
}

func (r *analyticsRepository) OverdueInvoiceTotal(ctx context.Context, asOf time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM invoices
		WHERE status = ? AND due_date IS NOT NULL AND due_date < ? AND deleted_at IS NULL
	`, enum.InvoiceStatusSent, asOf).Scan(&total).Error
	return total, classify(err)
}

func (r *analyticsRepository) RevenueByMonth(ctx context.Context, months int) ([]domainRepo.MonthlyRevenueResult, error) {
	var results []domainRepo.MonthlyRevenueResult

	since := time.Now().AddDate(0, -months, 0)
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			EXTRACT(YEAR FROM paid_at)::int as year,
			EXTRACT(MONTH FROM paid_at)::int as month,
			COALESCE(SUM(total_amount), 0) as revenue
		FROM invoices
		WHERE status = ? AND paid_at >= ? AND deleted_at IS NULL
		GROUP BY 1, 2
		ORDER BY 1, 2
	`, enum.InvoiceStatusPaid, since).Scan(&results).Error

	return results, classify(err)
}

func (r *analyticsRepository) UnbilledHoursTotal(ctx context.Context) (float64, error) {
	// Hours logged after the project's most recent invoice (or on projects
	// never invoiced) have not been billed yet.
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(t.hours), 0)
		FROM timesheets t
		WHERE t.deleted_at IS NULL
		  AND t.date > COALESCE((
			SELECT MAX(i.issue_date)
			FROM invoices i
			WHERE i.project_id = t.project_id AND i.deleted_at IS NULL
		  ), '1970-01-01')
	`).Scan(&total).Error
	return total, classify(err)
}
