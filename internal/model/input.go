package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// CreateTaskInput is the create payload. Absent optional fields take the
// documented defaults: description null, priority MEDIUM, completed false.
type CreateTaskInput struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     string    `json:"due_date"`
	Priority    *Priority `json:"priority"`
	Completed   *bool     `json:"completed"`
}

// ToTask materializes a Task with defaults applied. The input must have
// passed validation; the due date is parsed here. An absent due date stays
// null so provisional client records can be built with the same rules.
func (in *CreateTaskInput) ToTask() (*Task, error) {
	var due *Date
	if in.DueDate != "" {
		d, err := ParseDate(in.DueDate)
		if err != nil {
			return nil, err
		}
		due = &d
	}
	t := &Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     due,
		Priority:    PriorityMedium,
		Completed:   false,
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	return t, nil
}

// UpdateTaskInput is a partial update payload. It distinguishes absent
// fields from present-but-null ones, since only supplied fields may touch
// their columns.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *Priority
	Completed   *bool

	present map[string]bool
}

var updatableFields = []string{"title", "description", "due_date", "priority", "completed"}

func (in *UpdateTaskInput) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	in.present = make(map[string]bool, len(raw))
	for _, field := range updatableFields {
		val, ok := raw[field]
		if !ok {
			continue
		}
		in.present[field] = true
		if string(val) == "null" {
			continue
		}
		var err error
		switch field {
		case "title":
			err = json.Unmarshal(val, &in.Title)
		case "description":
			err = json.Unmarshal(val, &in.Description)
		case "due_date":
			err = json.Unmarshal(val, &in.DueDate)
		case "priority":
			err = json.Unmarshal(val, &in.Priority)
		case "completed":
			err = json.Unmarshal(val, &in.Completed)
		}
		if err != nil {
			return fmt.Errorf("field %s: %w", field, err)
		}
	}
	return nil
}

// MarshalJSON emits only the fields that were supplied, so a round-tripped
// payload keeps its partial shape.
func (in UpdateTaskInput) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(in.present))
	if in.present["title"] {
		out["title"] = in.Title
	}
	if in.present["description"] {
		out["description"] = in.Description
	}
	if in.present["due_date"] {
		out["due_date"] = in.DueDate
	}
	if in.present["priority"] {
		out["priority"] = in.Priority
	}
	if in.present["completed"] {
		out["completed"] = in.Completed
	}
	return json.Marshal(out)
}

func (in *UpdateTaskInput) mark(field string) {
	if in.present == nil {
		in.present = make(map[string]bool, len(updatableFields))
	}
	in.present[field] = true
}

// Setters used when building a patch programmatically.
func (in *UpdateTaskInput) SetTitle(s string) { in.Title = &s; in.mark("title") }

func (in *UpdateTaskInput) SetDescription(s *string) { in.Description = s; in.mark("description") }

func (in *UpdateTaskInput) SetDueDate(s string) { in.DueDate = &s; in.mark("due_date") }

func (in *UpdateTaskInput) SetPriority(p Priority) { in.Priority = &p; in.mark("priority") }

func (in *UpdateTaskInput) SetCompleted(b bool) { in.Completed = &b; in.mark("completed") }

// Has reports whether the field appeared in the payload, including as an
// explicit null.
func (in *UpdateTaskInput) Has(field string) bool { return in.present[field] }

// Empty reports whether no updatable field was supplied.
func (in *UpdateTaskInput) Empty() bool { return len(in.present) == 0 }

// Columns builds the column assignment map for the present fields. The
// input must have passed validation. updated_at is always included.
func (in *UpdateTaskInput) Columns(now time.Time) (map[string]any, error) {
	cols := make(map[string]any, len(in.present)+1)
	if in.Has("title") {
		var title string
		if in.Title != nil {
			title = *in.Title
		}
		cols["title"] = title
	}
	if in.Has("description") {
		cols["description"] = in.Description
	}
	if in.Has("due_date") {
		if in.DueDate == nil {
			return nil, fmt.Errorf("due_date cannot be null")
		}
		due, err := ParseDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		cols["due_date"] = due
	}
	if in.Has("priority") {
		if in.Priority == nil {
			return nil, fmt.Errorf("priority cannot be null")
		}
		cols["priority"] = *in.Priority
	}
	if in.Has("completed") {
		var completed bool
		if in.Completed != nil {
			completed = *in.Completed
		}
		cols["completed"] = completed
	}
	cols["updated_at"] = now
	return cols, nil
}
