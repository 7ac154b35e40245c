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

type recurringRepository struct {
	db *gorm.DB
}

// NewRecurringRepository creates a new recurring schedule repository
func NewRecurringRepository(db *gorm.DB) domainRepo.RecurringRepository {
	return &recurringRepository{db: db}
}

func (r *recurringRepository) Create(ctx context.Context, schedule *entity.RecurringSchedule) error {
	return classify(r.db.WithContext(ctx).Create(schedule).Error)
}

func (r *recurringRepository) CreateBatch(ctx context.Context, schedules []entity.RecurringSchedule) error {
	if len(schedules) == 0 {
		return nil
	}
	return classify(r.db.WithContext(ctx).Create(&schedules).Error)
}

func (r *recurringRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RecurringSchedule, error) {
	var schedule entity.RecurringSchedule
	err := r.db.WithContext(ctx).First(&schedule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &schedule, classify(err)
}

func (r *recurringRepository) GetBySourceID(ctx context.Context, sourceID uuid.UUID) (*entity.RecurringSchedule, error) {
	var schedule entity.RecurringSchedule
	err := r.db.WithContext(ctx).First(&schedule, "source_id = ?", sourceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &schedule, classify(err)
}

func (r *recurringRepository) ListForApprovedProposals(ctx context.Context) ([]entity.RecurringSchedule, error) {
	var schedules []entity.RecurringSchedule
	err := r.db.WithContext(ctx).
		Preload("Proposal").
		Preload("Proposal.Items").
		Joins("JOIN proposals ON proposals.id = recurring_schedules.proposal_id").
		Where("proposals.status = ? AND proposals.deleted_at IS NULL", enum.ProposalStatusApproved).
		Find(&schedules).Error
	return schedules, classify(err)
}

func (r *recurringRepository) GenerateInvoice(ctx context.Context, invoice *entity.Invoice, scheduleID uuid.UUID, generatedAt time.Time) error {
	return classify(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}
		return tx.Model(&entity.RecurringSchedule{}).
			Where("id = ?", scheduleID).
			Update("last_invoice_date", generatedAt).Error
	}))
}

func (r *recurringRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return classify(r.db.WithContext(ctx).Delete(&entity.RecurringSchedule{}, "id = ?", id).Error)
}
