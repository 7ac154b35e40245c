package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Proposal represents a priced offer to a client. The derived monetary
// fields (DiscountValue, TaxValue, TotalAmount) are always written by the
// totals pipeline, never by hand.
type Proposal struct {
	ID              uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID        uuid.UUID           `gorm:"type:uuid;not null;index" json:"client_id"`
	Number          string              `gorm:"size:100;unique;not null" json:"number"`
	Date            time.Time           `gorm:"type:date;not null" json:"date"`
	Status          enum.ProposalStatus `gorm:"default:0" json:"status"`
	Subtotal        float64             `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	DiscountPercent float64             `gorm:"type:decimal(5,2);default:0" json:"discount_percent"`
	DiscountAmount  float64             `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	DiscountValue   float64             `gorm:"type:decimal(15,2);default:0" json:"discount_value"`
	TaxRate         float64             `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`
	TaxType         enum.TaxType        `gorm:"default:0" json:"tax_type"`
	TaxValue        float64             `gorm:"type:decimal(15,2);default:0" json:"tax_value"`
	TotalAmount     float64             `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	Note            *string             `gorm:"type:text" json:"note,omitempty"`
	ApprovedAt      *time.Time          `json:"approved_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	DeletedAt       gorm.DeletedAt      `gorm:"index" json:"-"`

	// Recurring settings at the proposal level. Items may carry their own.
	Recurring    bool           `gorm:"default:false" json:"recurring"`
	Frequency    enum.Frequency `gorm:"default:1" json:"frequency"`
	CustomMonths *int           `json:"custom_months,omitempty"`

	// Relationships
	User   User           `gorm:"foreignKey:UserID" json:"-"`
	Client Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Items  []ProposalItem `gorm:"foreignKey:ProposalID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new proposal
func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Proposal model
func (Proposal) TableName() string {
	return "proposals"
}

// ProposalItem represents a line in a proposal
type ProposalItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ProposalID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"proposal_id"`
	ProjectID   *uuid.UUID     `gorm:"type:uuid;index" json:"project_id,omitempty"`
	Description string         `gorm:"size:500;not null" json:"description"`
	Quantity    float64        `gorm:"type:decimal(10,2);not null;default:1" json:"quantity"`
	UnitPrice   float64        `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Amount      float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Recurring settings at the item level
	Recurring    bool           `gorm:"default:false" json:"recurring"`
	Frequency    enum.Frequency `gorm:"default:1" json:"frequency"`
	CustomMonths *int           `json:"custom_months,omitempty"`

	// Relationships
	Proposal Proposal `gorm:"foreignKey:ProposalID" json:"-"`
	Project  *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// BeforeCreate generates a UUID before creating a new proposal item
func (pi *ProposalItem) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProposalItem model
func (ProposalItem) TableName() string {
	return "proposal_items"
}
