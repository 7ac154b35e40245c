package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"gorm.io/gorm"
)

// CompensationScheme is a user's compensation configuration for a date
// range. At most one scheme is active for a user at any instant; the service
// layer enforces non-overlap on create.
type CompensationScheme struct {
	ID                uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID             `gorm:"type:uuid;not null;index" json:"user_id"`
	Type              enum.CompensationType `gorm:"default:0" json:"type"`
	BaseSalary        float64               `gorm:"type:decimal(15,2);default:0" json:"base_salary"`
	PercentageType    enum.PercentageType   `gorm:"default:0" json:"percentage_type"`
	ProjectPercent    float64               `gorm:"type:decimal(5,2);default:0" json:"project_percent"`
	DirectWorkPercent float64               `gorm:"type:decimal(5,2);default:0" json:"direct_work_percent"`
	EffectiveFrom     time.Time             `gorm:"type:date;not null" json:"effective_from"`
	EffectiveTo       *time.Time            `gorm:"type:date" json:"effective_to,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	DeletedAt         gorm.DeletedAt        `gorm:"index" json:"-"`

	// Relationships
	User      User                  `gorm:"foreignKey:UserID" json:"-"`
	Overrides []EligibilityOverride `gorm:"foreignKey:SchemeID" json:"overrides,omitempty"`
}

// BeforeCreate generates a UUID before creating a new scheme
func (s *CompensationScheme) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CompensationScheme model
func (CompensationScheme) TableName() string {
	return "compensation_schemes"
}

// CoversPeriod reports whether the scheme is effective for any part of the
// given calendar month.
func (s *CompensationScheme) CoversPeriod(year, month int) bool {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if s.EffectiveFrom.After(periodEnd) {
		return false
	}
	if s.EffectiveTo != nil && s.EffectiveTo.Before(periodStart) {
		return false
	}
	return true
}

// EligibilityOverride includes or excludes exactly one scope (project,
// client or invoice) from a scheme's percentage compensation, optionally
// substituting custom percentages or a fixed amount.
type EligibilityOverride struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SchemeID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"scheme_id"`
	ProjectID  *uuid.UUID `gorm:"type:uuid;index" json:"project_id,omitempty"`
	ClientID   *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`
	InvoiceID  *uuid.UUID `gorm:"type:uuid;index" json:"invoice_id,omitempty"`
	IsEligible bool       `gorm:"default:true" json:"is_eligible"`

	ProjectPercent    *float64 `gorm:"type:decimal(5,2)" json:"project_percent,omitempty"`
	DirectWorkPercent *float64 `gorm:"type:decimal(5,2)" json:"direct_work_percent,omitempty"`
	FixedAmount       *float64 `gorm:"type:decimal(15,2)" json:"fixed_amount,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Scheme CompensationScheme `gorm:"foreignKey:SchemeID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new override
func (o *EligibilityOverride) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the EligibilityOverride model
func (EligibilityOverride) TableName() string {
	return "eligibility_overrides"
}

// CompensationEntry stores one computed period for a user. The
// (user, year, month) combination is unique; recomputation requires deleting
// the existing entry first.
type CompensationEntry struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID               uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_comp_entry_period" json:"user_id"`
	SchemeID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"scheme_id"`
	Year                 int            `gorm:"not null;uniqueIndex:idx_comp_entry_period" json:"year"`
	Month                int            `gorm:"not null;uniqueIndex:idx_comp_entry_period" json:"month"`
	BaseSalary           float64        `gorm:"type:decimal(15,2);default:0" json:"base_salary"`
	BonusAmount          float64        `gorm:"type:decimal(15,2);default:0" json:"bonus_amount"`
	ProjectTotalEarnings float64        `gorm:"type:decimal(15,2);default:0" json:"project_total_earnings"`
	DirectWorkEarnings   float64        `gorm:"type:decimal(15,2);default:0" json:"direct_work_earnings"`
	PercentageEarnings   float64        `gorm:"type:decimal(15,2);default:0" json:"percentage_earnings"`
	TotalEarned          float64        `gorm:"type:decimal(15,2);default:0" json:"total_earned"`
	TotalPaid            float64        `gorm:"type:decimal(15,2);default:0" json:"total_paid"`
	Balance              float64        `gorm:"type:decimal(15,2);default:0" json:"balance"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User                  `gorm:"foreignKey:UserID" json:"-"`
	Scheme   CompensationScheme    `gorm:"foreignKey:SchemeID" json:"-"`
	Payments []CompensationPayment `gorm:"foreignKey:EntryID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new entry
func (e *CompensationEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CompensationEntry model
func (CompensationEntry) TableName() string {
	return "compensation_entries"
}

// CompensationPayment records money paid out against an entry
type CompensationPayment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	EntryID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"entry_id"`
	Amount    float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaidAt    time.Time      `gorm:"not null" json:"paid_at"`
	Note      *string        `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Entry CompensationEntry `gorm:"foreignKey:EntryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *CompensationPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CompensationPayment model
func (CompensationPayment) TableName() string {
	return "compensation_payments"
}
