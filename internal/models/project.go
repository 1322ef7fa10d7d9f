package models

import "time"

// Project owns a set of tasks. Exactly one project is active in the UI at a
// time; the server does not enforce that, it only stores lifecycle status.
type Project struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"size:16;default:active;index"`
	TechStack   string `gorm:"type:json"`
	ProjectPath string `gorm:"size:512"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ArchivedAt  *time.Time

	Tasks []Task `gorm:"foreignKey:ProjectID"`
}
