package models

import "time"

// Task is the unit of work inside a project. Status holds only the
// authoritative value (ready, in_progress, completed); blocked is derived
// from dependency satisfaction at read time and never written back.
type Task struct {
	ID            string `gorm:"primaryKey;size:36"`
	ProjectID     string `gorm:"size:36;not null;index"`
	Title         string `gorm:"not null"`
	Description   string `gorm:"type:text"`
	Status        string `gorm:"size:16;default:ready;index"`
	Priority      string `gorm:"size:8;default:medium"`
	EstimatedTime string `gorm:"size:64"`
	Progress      *int
	AIPrompt      string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   *time.Time

	Project Project   `gorm:"foreignKey:ProjectID"`
	Deps    []TaskDep `gorm:"foreignKey:TaskID"`
}

// TaskDep represents a blocking dependency: TaskID cannot start until
// DependsOn is completed.
type TaskDep struct {
	TaskID    string `gorm:"primaryKey;size:36"`
	DependsOn string `gorm:"primaryKey;size:36"`

	Task    Task `gorm:"foreignKey:TaskID"`
	Blocker Task `gorm:"foreignKey:DependsOn"`
}
