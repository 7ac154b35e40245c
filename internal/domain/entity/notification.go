package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Notification is an in-app message to a user. The recurring run records
// manual-action requests and generation failures here so a human sees them.
type Notification struct {
	ID      uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	UserID  uuid.UUID             `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    enum.NotificationType `gorm:"default:0" json:"type"`
	Title   string                `gorm:"size:255;not null" json:"title"`
	Message string                `gorm:"type:text;not null" json:"message"`
	// Optional reference to the record that triggered the notification.
	RefID     *uuid.UUID     `gorm:"type:uuid;index" json:"ref_id,omitempty"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new notification
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
