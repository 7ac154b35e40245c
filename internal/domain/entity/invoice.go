package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice represents a bill sent to a client. Derived monetary fields come
// from the totals pipeline, like proposals.
type Invoice struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"client_id"`
	ProjectID       *uuid.UUID         `gorm:"type:uuid;index" json:"project_id,omitempty"`
	ProposalID      *uuid.UUID         `gorm:"type:uuid;index" json:"proposal_id,omitempty"`
	Number          string             `gorm:"size:100;unique;not null" json:"number"`
	Status          enum.InvoiceStatus `gorm:"default:0" json:"status"`
	IssueDate       time.Time          `gorm:"type:date;not null" json:"issue_date"`
	DueDate         *time.Time         `gorm:"type:date" json:"due_date,omitempty"`
	Subtotal        float64            `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	DiscountPercent float64            `gorm:"type:decimal(5,2);default:0" json:"discount_percent"`
	DiscountAmount  float64            `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	DiscountValue   float64            `gorm:"type:decimal(15,2);default:0" json:"discount_value"`
	TaxRate         float64            `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`
	TaxType         enum.TaxType       `gorm:"default:0" json:"tax_type"`
	TaxValue        float64            `gorm:"type:decimal(15,2);default:0" json:"tax_value"`
	TotalAmount     float64            `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	Note            *string            `gorm:"type:text" json:"note,omitempty"`
	// Generated marks invoices spawned by a recurring schedule.
	Generated bool           `gorm:"default:false" json:"generated"`
	PaidAt    *time.Time     `json:"paid_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User          `gorm:"foreignKey:UserID" json:"-"`
	Client   Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Project  *Project      `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Proposal *Proposal     `gorm:"foreignKey:ProposalID" json:"-"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// IsPaid reports whether the invoice has been settled
func (i *Invoice) IsPaid() bool {
	return i.Status == enum.InvoiceStatusPaid
}

// InvoiceItem represents a line on an invoice. PersonID attributes service
// lines to the staff member whose work they bill.
type InvoiceItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Type        enum.ItemType  `gorm:"default:0" json:"type"`
	PersonID    *uuid.UUID     `gorm:"type:uuid;index" json:"person_id,omitempty"`
	Description string         `gorm:"size:500;not null" json:"description"`
	Quantity    float64        `gorm:"type:decimal(10,2);not null;default:1" json:"quantity"`
	UnitPrice   float64        `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Amount      float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	Person  *User   `gorm:"foreignKey:PersonID" json:"person,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
