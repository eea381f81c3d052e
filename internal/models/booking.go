package models

import "time"

type Booking struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Title       string `gorm:"size:100;not null" json:"title"`
	DurationMin int    `gorm:"not null" json:"duration"`
	Type        string `gorm:"size:20;not null" json:"type"`

	Location     string `gorm:"size:255" json:"location"`
	Availability string `gorm:"size:100" json:"availability"`

	HostID string `gorm:"type:uuid;index;not null" json:"host_id"`
	Host   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"host"`

	Start time.Time `gorm:"not null" json:"start"`
	End   time.Time `gorm:"not null" json:"end"`

	AttendeeName  string `gorm:"size:100" json:"attendee_name"`
	AttendeeEmail string `gorm:"size:100" json:"attendee_email"`
	Notes         string `gorm:"size:255" json:"notes"`

	MaxParticipants int `gorm:"default:1" json:"max_participants"`

	Status string `gorm:"size:20;default:'available'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
