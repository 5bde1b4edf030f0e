package model

import "time"

type Todo struct {
	ID          int64      `gorm:"primaryKey"`
	Title       string     `gorm:"not null"`
	Description *string    `gorm:"type:text"`
	Completed   bool       `gorm:"not null;default:false"`
	UserID      int64      `gorm:"not null;index"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
}

// TodoPatch carries only the fields present in an update request; nil means keep.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

func (p TodoPatch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
