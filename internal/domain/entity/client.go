package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Client represents a company the practice works for. A client starts life
// as a lead and is converted when the first proposal is approved.
type Client struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Email     *string           `gorm:"size:255" json:"email,omitempty"`
	Phone     *string           `gorm:"size:50" json:"phone,omitempty"`
	Address   *string           `gorm:"type:text" json:"address,omitempty"`
	TaxNumber *string           `gorm:"size:100" json:"tax_number,omitempty"`
	Status    enum.ClientStatus `gorm:"default:0" json:"status"`
	ManagerID *uuid.UUID        `gorm:"type:uuid;index" json:"manager_id,omitempty"`
	Note      *string           `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Manager  *User     `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Projects []Project `gorm:"foreignKey:ClientID" json:"projects,omitempty"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
