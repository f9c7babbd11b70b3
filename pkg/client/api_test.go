package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/VanGog06-SoftUni/ToDAI/internal/model"
)

func TestClientListTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/tasks" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"one","priority":"HIGH","completed":false}]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	list, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Title != "one" || list[0].Priority != model.PriorityHigh {
		t.Fatalf("list = %+v", list)
	}
}

func TestClientCreateSendsDefaultsAwarePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("content type = %q", ct)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload["title"] != "Buy milk" || payload["due_date"] != "2099-01-01" {
			t.Fatalf("payload = %v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"title":"Buy milk","priority":"MEDIUM"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	created, err := c.CreateTask(context.Background(), &model.CreateTaskInput{Title: "Buy milk", DueDate: "2099-01-01"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 7 {
		t.Fatalf("created = %+v", created)
	}
}

func TestClientUpdateSendsOnlyPresentFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks/3" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(payload) != 1 || payload["completed"] != true {
			t.Fatalf("partial payload must carry only supplied fields, got %v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":3,"completed":true,"priority":"MEDIUM"}`))
	}))
	defer srv.Close()

	var in model.UpdateTaskInput
	in.SetCompleted(true)
	c := New(srv.URL)
	updated, err := c.UpdateTask(context.Background(), 3, &in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestClientDeleteNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/tasks/9" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := New(srv.URL).DeleteTask(context.Background(), 9); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestListRetriesOn5xx(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	list, err := New(srv.URL).ListTasks(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list != nil && len(list) != 0 {
		t.Fatalf("list = %+v", list)
	}
	if hits != 3 {
		t.Fatalf("expected 3 attempts, got %d", hits)
	}
}

func TestCreateIsNeverRetried(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateTask(context.Background(), &model.CreateTaskInput{Title: "x", DueDate: "2099-01-01"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if hits != 1 {
		t.Fatalf("mutations must not be retried, got %d attempts", hits)
	}
}

func TestNormalizeErrorShapes(t *testing.T) {
	cases := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantField   string
	}{
		{"documented error", http.StatusNotFound, `{"error":"Task not found"}`, "Task not found", ""},
		{"field errors", http.StatusBadRequest,
			`{"error":"Validation failed","fieldErrors":{"title":"Title is required"}}`,
			"Validation failed", "Title is required"},
		{"empty error field", http.StatusBadRequest, `{}`, "Request failed", ""},
		{"non-json body", http.StatusBadGateway, `<html>bad gateway</html>`, "Unknown error", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				_, _ = w.Write([]byte(c.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).ListTasks(context.Background())
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Status != c.status {
				t.Fatalf("status = %d, want %d", apiErr.Status, c.status)
			}
			if apiErr.Message != c.wantMessage {
				t.Fatalf("message = %q, want %q", apiErr.Message, c.wantMessage)
			}
			if c.wantField != "" && apiErr.FieldErrors["title"] != c.wantField {
				t.Fatalf("field errors = %v", apiErr.FieldErrors)
			}
		})
	}
}
