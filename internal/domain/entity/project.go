package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents an engagement for a client
type Project struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClientID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Code      string         `gorm:"size:100;unique" json:"code"`
	ManagerID *uuid.UUID     `gorm:"type:uuid;index" json:"manager_id,omitempty"`
	StartDate *time.Time     `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time     `gorm:"type:date" json:"end_date,omitempty"`
	Note      *string        `gorm:"type:text" json:"note,omitempty"`
	Archived  bool           `gorm:"default:false" json:"archived"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Client     Client      `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Manager    *User       `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Timesheets []Timesheet `gorm:"foreignKey:ProjectID" json:"-"`
	Invoices   []Invoice   `gorm:"foreignKey:ProjectID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new project
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Project model
func (Project) TableName() string {
	return "projects"
}
