package validation

import (
	"strings"

	"github.com/VanGog06-SoftUni/ToDAI/internal/model"
)

// FieldErrors maps field name to a human-readable message. Empty means
// valid.
type FieldErrors map[string]string

// Candidate carries the fields under validation. A nil pointer means the
// field was absent from the payload; update validation skips absent fields
// while create validation treats them as missing.
type Candidate struct {
	Title   *string
	DueDate *string
}

// rule is one entry of the shared rule table. Rules for the same field are
// evaluated in order and the first failure wins.
type rule struct {
	field   string
	check   func(c Candidate) bool // true = passes
	message string
}

var rules = []rule{
	{
		field: "title",
		check: func(c Candidate) bool {
			return c.Title != nil && strings.TrimSpace(*c.Title) != ""
		},
		message: "Title is required",
	},
	{
		field: "due_date",
		check: func(c Candidate) bool {
			return c.DueDate != nil && *c.DueDate != ""
		},
		message: "Due date is required",
	},
	{
		field: "due_date",
		check: func(c Candidate) bool {
			_, err := model.ParseDate(*c.DueDate)
			return err == nil
		},
		message: "Due date must be a valid date in YYYY-MM-DD format",
	},
	{
		field: "due_date",
		check: func(c Candidate) bool {
			d, _ := model.ParseDate(*c.DueDate)
			return !d.Before(model.Today())
		},
		message: "Due date cannot be in the past",
	},
}

// run evaluates the rule table over the candidate. Fields not in the
// `fields` set are skipped entirely.
func run(c Candidate, fields map[string]bool) FieldErrors {
	errs := FieldErrors{}
	for _, r := range rules {
		if !fields[r.field] {
			continue
		}
		if _, failed := errs[r.field]; failed {
			continue
		}
		if !r.check(c) {
			errs[r.field] = r.message
		}
	}
	return errs
}

// ValidateCreate checks a full create candidate; both fields are required.
func ValidateCreate(in *model.CreateTaskInput) FieldErrors {
	c := Candidate{Title: &in.Title}
	if in.DueDate != "" {
		due := in.DueDate
		c.DueDate = &due
	}
	return run(c, map[string]bool{"title": true, "due_date": true})
}

// ValidateUpdate checks only the fields present in the partial payload.
// A present-but-null due date is invalid since clearing it is not
// supported.
func ValidateUpdate(in *model.UpdateTaskInput) FieldErrors {
	fields := map[string]bool{}
	c := Candidate{}
	if in.Has("title") {
		fields["title"] = true
		c.Title = in.Title
	}
	if in.Has("due_date") {
		fields["due_date"] = true
		c.DueDate = in.DueDate
	}
	return run(c, fields)
}
