package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	domainRepo "github.com/praxishq/praxis-api/internal/domain/repository"
	"gorm.io/gorm"
)

type compensationRepository struct {
	db *gorm.DB
}

// NewCompensationRepository creates a new compensation repository
func NewCompensationRepository(db *gorm.DB) domainRepo.CompensationRepository {
	return &compensationRepository{db: db}
}

func (r *compensationRepository) CreateScheme(ctx context.Context, scheme *entity.CompensationScheme) error {
	return classify(r.db.WithContext(ctx).Create(scheme).Error)
}

func (r *compensationRepository) GetSchemeByID(ctx context.Context, id uuid.UUID) (*entity.CompensationScheme, error) {
	var scheme entity.CompensationScheme
	err := r.db.WithContext(ctx).
		Preload("Overrides").
		First(&scheme, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &scheme, classify(err)
}

func (r *compensationRepository) ListSchemesForUser(ctx context.Context, userID uuid.UUID) ([]entity.CompensationScheme, error) {
	var schemes []entity.CompensationScheme
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("effective_from DESC").
		Find(&schemes).Error
	return schemes, classify(err)
}

func (r *compensationRepository) GetSchemeCovering(ctx context.Context, userID uuid.UUID, year, month int) (*entity.CompensationScheme, error) {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)

	var scheme entity.CompensationScheme
	err := r.db.WithContext(ctx).
		Preload("Overrides").
		Where("user_id = ? AND effective_from < ? AND (effective_to IS NULL OR effective_to >= ?)",
			userID, periodEnd, periodStart).
		Order("effective_from DESC").
		First(&scheme).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &scheme, classify(err)
}

func (r *compensationRepository) ListSchemesOverlapping(ctx context.Context, userID uuid.UUID, from time.Time, to *time.Time) ([]entity.CompensationScheme, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID)

	if to != nil {
		query = query.Where("effective_from <= ?", *to)
	}
	query = query.Where("effective_to IS NULL OR effective_to >= ?", from)

	var schemes []entity.CompensationScheme
	err := query.Find(&schemes).Error
	return schemes, classify(err)
}

func (r *compensationRepository) UpdateScheme(ctx context.Context, scheme *entity.CompensationScheme) error {
	return classify(r.db.WithContext(ctx).Save(scheme).Error)
}

func (r *compensationRepository) DeleteScheme(ctx context.Context, id uuid.UUID) error {
	return classify(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.EligibilityOverride{}, "scheme_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.CompensationScheme{}, "id = ?", id).Error
	}))
}

func (r *compensationRepository) UpsertOverride(ctx context.Context, override *entity.EligibilityOverride) error {
	return classify(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing := tx.Model(&entity.EligibilityOverride{}).
			Where("scheme_id = ?", override.SchemeID)
		switch {
		case override.InvoiceID != nil:
			existing = existing.Where("invoice_id = ?", *override.InvoiceID)
		case override.ProjectID != nil:
			existing = existing.Where("project_id = ?", *override.ProjectID)
		case override.ClientID != nil:
			existing = existing.Where("client_id = ?", *override.ClientID)
		}

		var found entity.EligibilityOverride
		err := existing.First(&found).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(override).Error
		}
		if err != nil {
			return err
		}

		override.ID = found.ID
		override.CreatedAt = found.CreatedAt
		return tx.Save(override).Error
	}))
}

func (r *compensationRepository) ListOverrides(ctx context.Context, schemeID uuid.UUID) ([]entity.EligibilityOverride, error) {
	var overrides []entity.EligibilityOverride
	err := r.db.WithContext(ctx).
		Where("scheme_id = ?", schemeID).
		Find(&overrides).Error
	return overrides, classify(err)
}

func (r *compensationRepository) DeleteOverride(ctx context.Context, id uuid.UUID) error {
	return classify(r.db.WithContext(ctx).Delete(&entity.EligibilityOverride{}, "id = ?", id).Error)
}

func (r *compensationRepository) CreateEntry(ctx context.Context, entry *entity.CompensationEntry) error {
	return classify(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *compensationRepository) GetEntryByID(ctx context.Context, id uuid.UUID) (*entity.CompensationEntry, error) {
	var entry entity.CompensationEntry
	err := r.db.WithContext(ctx).
		Preload("Payments").
		First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, classify(err)
}

func (r *compensationRepository) GetEntryForPeriod(ctx context.Context, userID uuid.UUID, year, month int) (*entity.CompensationEntry, error) {
	var entry entity.CompensationEntry
	err := r.db.WithContext(ctx).
		First(&entry, "user_id = ? AND year = ? AND month = ?", userID, year, month).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, classify(err)
}

func (r *compensationRepository) ListEntries(ctx context.Context, params *domainRepo.CompensationEntryFilterParams) ([]entity.CompensationEntry, int64, error) {
	var entries []entity.CompensationEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CompensationEntry{})

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.Year != nil {
		query = query.Where("year = ?", *params.Year)
	}

	if params.Month != nil {
		query = query.Where("month = ?", *params.Month)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("year DESC, month DESC").
		Find(&entries).Error

	return entries, total, classify(err)
}

func (r *compensationRepository) RecordPayment(ctx context.Context, payment *entity.CompensationPayment) error {
	return classify(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Model(&entity.CompensationEntry{}).
			Where("id = ?", payment.EntryID).
			Updates(map[string]interface{}{
				"total_paid": gorm.Expr("total_paid + ?", payment.Amount),
				"balance":    gorm.Expr("balance - ?", payment.Amount),
			}).Error
	}))
}

func (r *compensationRepository) CandidateProjects(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", userID).
		Or("id IN (?)", r.db.Model(&entity.Timesheet{}).
			Select("project_id").
			Where("user_id = ? AND date >= ? AND date < ?", userID, from, to)).
		Or("id IN (?)", r.db.Model(&entity.Invoice{}).
			Select("invoices.project_id").
			Joins("JOIN invoice_items ON invoice_items.invoice_id = invoices.id").
			Where("invoice_items.person_id = ? AND invoices.status = ? AND invoices.paid_at >= ? AND invoices.paid_at < ?",
				userID, enum.InvoiceStatusPaid, from, to)).
		Find(&projects).Error
	return projects, classify(err)
}
