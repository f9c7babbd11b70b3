package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Priority of a task. Stored as text in the tasks table.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// UnmarshalJSON rejects values outside the enum so bad payloads fail at
// decode time.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := Priority(s)
	if !v.Valid() {
		return fmt.Errorf("invalid priority %q (want LOW, MEDIUM or HIGH)", s)
	}
	*p = v
	return nil
}

// Task is the persisted record.
//
// Table schema constraints (see migrations/0001_create_tasks.sql):
// - id: BIGSERIAL primary key
// - title: non-empty text
// - priority: text constrained to LOW/MEDIUM/HIGH, default MEDIUM
// - no soft delete
type Task struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	DueDate     *Date     `gorm:"column:due_date;type:date" json:"due_date"`
	Priority    Priority  `gorm:"type:varchar(10);not null;default:MEDIUM" json:"priority"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

// Clone returns a deep copy so a stored snapshot cannot alias the live
// record.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	if t.Description != nil {
		desc := *t.Description
		cp.Description = &desc
	}
	if t.DueDate != nil {
		dd := *t.DueDate
		cp.DueDate = &dd
	}
	return &cp
}
