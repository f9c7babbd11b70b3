package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCreateTaskInputToTaskDefaults(t *testing.T) {
	var in CreateTaskInput
	payload := `{"title":"Buy milk","due_date":"2026-09-01"}`
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	task, err := in.ToTask()
	if err != nil {
		t.Fatalf("ToTask: %v", err)
	}
	if task.Title != "Buy milk" {
		t.Fatalf("title = %q", task.Title)
	}
	if task.Description != nil {
		t.Fatalf("expected nil description, got %v", *task.Description)
	}
	if task.Priority != PriorityMedium {
		t.Fatalf("priority = %q, want MEDIUM", task.Priority)
	}
	if task.Completed {
		t.Fatalf("expected completed false")
	}
	if task.DueDate == nil || task.DueDate.String() != "2026-09-01" {
		t.Fatalf("due date = %v", task.DueDate)
	}
}

func TestCreateTaskInputToTaskExplicit(t *testing.T) {
	var in CreateTaskInput
	payload := `{"title":"Ship release","description":"v2.1","due_date":"2026-09-01","priority":"HIGH","completed":true}`
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	task, err := in.ToTask()
	if err != nil {
		t.Fatalf("ToTask: %v", err)
	}
	if task.Description == nil || *task.Description != "v2.1" {
		t.Fatalf("description = %v", task.Description)
	}
	if task.Priority != PriorityHigh {
		t.Fatalf("priority = %q", task.Priority)
	}
	if !task.Completed {
		t.Fatalf("expected completed true")
	}
}

func TestCreateTaskInputToTaskAbsentDueDate(t *testing.T) {
	in := CreateTaskInput{Title: "provisional"}
	task, err := in.ToTask()
	if err != nil {
		t.Fatalf("ToTask: %v", err)
	}
	if task.DueDate != nil {
		t.Fatalf("absent due date must stay null, got %v", task.DueDate)
	}
}

func TestPriorityUnmarshalRejectsUnknown(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{`"LOW"`, true},
		{`"MEDIUM"`, true},
		{`"HIGH"`, true},
		{`"high"`, false},
		{`"URGENT"`, false},
		{`3`, false},
	}
	for _, c := range cases {
		var p Priority
		err := json.Unmarshal([]byte(c.in), &p)
		if c.ok && err != nil {
			t.Fatalf("unmarshal %s: %v", c.in, err)
		}
		if !c.ok && err == nil {
			t.Fatalf("unmarshal %s: expected error, got %q", c.in, p)
		}
	}
}

func TestUpdateTaskInputPresence(t *testing.T) {
	var in UpdateTaskInput
	payload := `{"title":"New title","description":null,"completed":true}`
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"title", "description", "completed"} {
		if !in.Has(field) {
			t.Fatalf("expected %s present", field)
		}
	}
	for _, field := range []string{"due_date", "priority"} {
		if in.Has(field) {
			t.Fatalf("did not expect %s present", field)
		}
	}
	if in.Title == nil || *in.Title != "New title" {
		t.Fatalf("title = %v", in.Title)
	}
	if in.Description != nil {
		t.Fatalf("null description should leave pointer nil, got %v", *in.Description)
	}
	if in.Completed == nil || !*in.Completed {
		t.Fatalf("completed = %v", in.Completed)
	}
}

func TestUpdateTaskInputEmpty(t *testing.T) {
	var in UpdateTaskInput
	if err := json.Unmarshal([]byte(`{}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !in.Empty() {
		t.Fatalf("expected empty input")
	}
	if err := json.Unmarshal([]byte(`{"unknown":"field"}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !in.Empty() {
		t.Fatalf("unknown fields should not count as present")
	}
}

func TestUpdateTaskInputColumns(t *testing.T) {
	now := time.Now()

	var in UpdateTaskInput
	payload := `{"title":"New","description":null,"due_date":"2026-09-01","completed":false}`
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	cols, err := in.Columns(now)
	if err != nil {
		t.Fatalf("columns: %v", err)
	}
	if cols["title"] != "New" {
		t.Fatalf("title column = %v", cols["title"])
	}
	if desc, ok := cols["description"].(*string); !ok || desc != nil {
		t.Fatalf("description column = %v", cols["description"])
	}
	if due, ok := cols["due_date"].(Date); !ok || due.String() != "2026-09-01" {
		t.Fatalf("due_date column = %v", cols["due_date"])
	}
	if cols["completed"] != false {
		t.Fatalf("completed column = %v", cols["completed"])
	}
	if cols["updated_at"] != now {
		t.Fatalf("updated_at column = %v", cols["updated_at"])
	}
	if _, ok := cols["priority"]; ok {
		t.Fatalf("absent priority must not produce a column")
	}

	var nullDue UpdateTaskInput
	if err := json.Unmarshal([]byte(`{"due_date":null}`), &nullDue); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := nullDue.Columns(now); err == nil {
		t.Fatalf("expected error for null due_date")
	}
}

func TestUpdateTaskInputMarshalPartial(t *testing.T) {
	var in UpdateTaskInput
	in.SetTitle("Renamed")
	in.SetCompleted(true)
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 fields, got %v", out)
	}
	if out["title"] != "Renamed" || out["completed"] != true {
		t.Fatalf("payload = %v", out)
	}
}

func TestTaskClone(t *testing.T) {
	desc := "details"
	due, _ := ParseDate("2026-09-01")
	orig := &Task{ID: 7, Title: "A", Description: &desc, DueDate: &due}
	cp := orig.Clone()
	*cp.Description = "changed"
	cp.Title = "B"
	if *orig.Description != "details" {
		t.Fatalf("clone aliases description: %q", *orig.Description)
	}
	if orig.Title != "A" {
		t.Fatalf("clone aliases struct")
	}
	var nilTask *Task
	if nilTask.Clone() != nil {
		t.Fatalf("nil clone should be nil")
	}
}
