package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Timesheet represents one day's logged hours by a user on a project.
// HourlyRate is captured at logging time so later rate changes do not
// rewrite history.
type Timesheet struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ProjectID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"project_id"`
	Date        time.Time      `gorm:"type:date;not null;index" json:"date"`
	Hours       float64        `gorm:"type:decimal(6,2);not null" json:"hours"`
	HourlyRate  float64        `gorm:"type:decimal(15,2);not null" json:"hourly_rate"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// BeforeCreate generates a UUID before creating a new timesheet
func (t *Timesheet) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Timesheet model
func (Timesheet) TableName() string {
	return "timesheets"
}

// Amount is the monetary value of the logged hours
func (t *Timesheet) Amount() float64 {
	return t.Hours * t.HourlyRate
}
