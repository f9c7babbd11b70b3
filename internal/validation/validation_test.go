package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/VanGog06-SoftUni/ToDAI/internal/model"
)

func today() string { return time.Now().Format("2006-01-02") }

func tomorrow() string { return time.Now().AddDate(0, 0, 1).Format("2006-01-02") }

func yesterday() string { return time.Now().AddDate(0, 0, -1).Format("2006-01-02") }

func TestValidateCreate(t *testing.T) {
	cases := []struct {
		name    string
		title   string
		dueDate string
		want    map[string]bool // field -> expect error
	}{
		{"valid", "Buy milk", tomorrow(), map[string]bool{}},
		{"valid today", "Buy milk", today(), map[string]bool{}},
		{"empty title", "", tomorrow(), map[string]bool{"title": true}},
		{"whitespace title", "   ", tomorrow(), map[string]bool{"title": true}},
		{"missing due date", "Buy milk", "", map[string]bool{"due_date": true}},
		{"malformed due date", "Buy milk", "2024/01/01", map[string]bool{"due_date": true}},
		{"impossible due date", "Buy milk", "2024-02-30", map[string]bool{"due_date": true}},
		{"past due date", "Buy milk", yesterday(), map[string]bool{"due_date": true}},
		{"both invalid", " ", "", map[string]bool{"title": true, "due_date": true}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := &model.CreateTaskInput{Title: c.title, DueDate: c.dueDate}
			errs := ValidateCreate(in)
			if len(errs) != len(c.want) {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(c.want))
			}
			for field := range c.want {
				if errs[field] == "" {
					t.Fatalf("expected error for field %s, got %v", field, errs)
				}
			}
		})
	}
}

func TestValidateCreateMessages(t *testing.T) {
	errs := ValidateCreate(&model.CreateTaskInput{Title: "", DueDate: ""})
	if errs["title"] != "Title is required" {
		t.Fatalf("title message = %q", errs["title"])
	}
	if errs["due_date"] != "Due date is required" {
		t.Fatalf("due_date message = %q", errs["due_date"])
	}
	errs = ValidateCreate(&model.CreateTaskInput{Title: "x", DueDate: yesterday()})
	if errs["due_date"] != "Due date cannot be in the past" {
		t.Fatalf("past due_date message = %q", errs["due_date"])
	}
}

func TestValidateUpdateSkipsAbsentFields(t *testing.T) {
	var in model.UpdateTaskInput
	if err := json.Unmarshal([]byte(`{"completed":true}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if errs := ValidateUpdate(&in); len(errs) != 0 {
		t.Fatalf("expected no errors for completed-only update, got %v", errs)
	}
}

func TestValidateUpdatePresentFields(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		field   string
	}{
		{"blank title", `{"title":"  "}`, "title"},
		{"null title", `{"title":null}`, "title"},
		{"null due date", `{"due_date":null}`, "due_date"},
		{"empty due date", `{"due_date":""}`, "due_date"},
		{"malformed due date", `{"due_date":"not-a-date"}`, "due_date"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var in model.UpdateTaskInput
			if err := json.Unmarshal([]byte(c.payload), &in); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			errs := ValidateUpdate(&in)
			if errs[c.field] == "" {
				t.Fatalf("expected error for %s, got %v", c.field, errs)
			}
		})
	}

	var in model.UpdateTaskInput
	payload := `{"title":"ok","due_date":"` + tomorrow() + `"}`
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if errs := ValidateUpdate(&in); len(errs) != 0 {
		t.Fatalf("expected valid update, got %v", errs)
	}
}
