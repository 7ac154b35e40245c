package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/billing"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"gorm.io/gorm"
)

// RecurringSchedule tracks invoice generation for a recurring source (an
// approved proposal or one of its items). LastInvoiceDate is nil until the
// first invoice is generated by a human; only actual generation advances it.
type RecurringSchedule struct {
	ID              uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	SourceType      enum.RecurringSourceType `gorm:"not null" json:"source_type"`
	SourceID        uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex" json:"source_id"`
	ProposalID      uuid.UUID                `gorm:"type:uuid;not null;index" json:"proposal_id"`
	StartDate       time.Time                `gorm:"type:date;not null" json:"start_date"`
	LastInvoiceDate *time.Time               `gorm:"type:date" json:"last_invoice_date,omitempty"`
	Frequency       enum.Frequency           `gorm:"default:1" json:"frequency"`
	CustomMonths    *int                     `json:"custom_months,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
	DeletedAt       gorm.DeletedAt           `gorm:"index" json:"-"`

	// Relationships
	Proposal Proposal `gorm:"foreignKey:ProposalID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new schedule
func (s *RecurringSchedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RecurringSchedule model
func (RecurringSchedule) TableName() string {
	return "recurring_schedules"
}

// AsSchedule converts the row into the calculation core's plain view
func (s *RecurringSchedule) AsSchedule() billing.Schedule {
	return billing.Schedule{
		StartDate:       s.StartDate,
		LastInvoiceDate: s.LastInvoiceDate,
		Frequency:       s.Frequency,
		CustomMonths:    s.CustomMonths,
	}
}
