package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/VanGog06-SoftUni/ToDAI/internal/model"
)

// Gateway is the network surface the store reconciles against. *Client
// satisfies it.
type Gateway interface {
	ListTasks(ctx context.Context) ([]*model.Task, error)
	CreateTask(ctx context.Context, in *model.CreateTaskInput) (*model.Task, error)
	UpdateTask(ctx context.Context, id int64, in *model.UpdateTaskInput) (*model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// TaskStore keeps a local mirror of server state and applies mutations
// optimistically: the local change lands before the server confirms, and a
// failed request restores the exact pre-mutation snapshot.
//
// Each operation's apply phase runs to completion under the lock before the
// network call, so apply phases never interleave. Confirmation phases of
// concurrent operations on the same id can land in any order; the last
// response wins. Requests are not serialized per id.
type TaskStore struct {
	mu       sync.Mutex
	gw       Gateway
	notifier Notifier
	tasks    []*model.Task
	busy     bool
}

func NewTaskStore(gw Gateway, opts ...StoreOption) *TaskStore {
	s := &TaskStore{gw: gw, notifier: NopNotifier{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type StoreOption func(*TaskStore)

// WithNotifier routes success/failure toasts to the given notifier.
func WithNotifier(n Notifier) StoreOption {
	return func(s *TaskStore) {
		if n != nil {
			s.notifier = n
		}
	}
}

// Tasks returns a snapshot copy of the local mirror.
func (s *TaskStore) Tasks() []*model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Busy reports whether the initial full fetch is in flight.
func (s *TaskStore) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Fetch rebuilds the mirror from a full list. The busy flag is set for the
// duration; local state is untouched on failure.
func (s *TaskStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.busy = true
	s.mu.Unlock()
	// Deferred so the flag clears even when the gateway panics.
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	list, err := s.gw.ListTasks(ctx)

	if err == nil {
		s.mu.Lock()
		s.tasks = list
		s.mu.Unlock()
	}

	if err != nil {
		s.notifier.Failure(failureMessage(err, "Failed to fetch tasks"))
		return err
	}
	return nil
}

// Create inserts a provisional record at the front immediately, then issues
// the request. On success the provisional record is replaced in place by
// the server record; on failure it is removed entirely. The returned error
// is the gateway error, so callers can thread APIError.FieldErrors back to
// a form.
func (s *TaskStore) Create(ctx context.Context, in *model.CreateTaskInput) error {
	provisional, err := s.provisionalTask(in)
	if err != nil {
		return err
	}
	tempID := provisional.ID

	s.mu.Lock()
	s.tasks = append([]*model.Task{provisional}, s.tasks...)
	s.mu.Unlock()

	created, err := s.gw.CreateTask(ctx, in)

	s.mu.Lock()
	if err == nil {
		for i, t := range s.tasks {
			if t.ID == tempID {
				s.tasks[i] = created
				break
			}
		}
	} else {
		kept := s.tasks[:0]
		for _, t := range s.tasks {
			if t.ID != tempID {
				kept = append(kept, t)
			}
		}
		s.tasks = kept
	}
	s.mu.Unlock()

	if err != nil {
		s.notifier.Failure(failureMessage(err, "Failed to create task"))
		return err
	}
	s.notifier.Success("Task created successfully")
	return nil
}

// Update captures the current snapshot of the record, merges the supplied
// fields locally with a refreshed timestamp, then issues the request. On
// success the server record replaces the local one; on failure the exact
// snapshot is restored. Unknown ids are a no-op.
func (s *TaskStore) Update(ctx context.Context, id int64, in *model.UpdateTaskInput) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.tasks[idx].Clone()
	merged := snapshot.Clone()
	applyPatch(merged, in)
	merged.UpdatedAt = time.Now()
	s.tasks[idx] = merged
	s.mu.Unlock()

	updated, err := s.gw.UpdateTask(ctx, id, in)

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		if err == nil {
			s.tasks[i] = updated
		} else {
			s.tasks[i] = snapshot
		}
	}
	s.mu.Unlock()

	if err != nil {
		s.notifier.Failure(failureMessage(err, "Failed to update task"))
		return err
	}
	return nil
}

// Delete removes the record immediately, remembering its snapshot and
// position. On failure the snapshot is reinserted at its original index.
// Unknown ids are a no-op.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.tasks[idx]
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.mu.Unlock()

	err := s.gw.DeleteTask(ctx, id)

	if err != nil {
		s.mu.Lock()
		pos := idx
		if pos > len(s.tasks) {
			pos = len(s.tasks)
		}
		s.tasks = append(s.tasks[:pos], append([]*model.Task{snapshot}, s.tasks[pos:]...)...)
		s.mu.Unlock()
		s.notifier.Failure(failureMessage(err, "Failed to delete task"))
		return err
	}
	s.notifier.Success("Task deleted successfully")
	return nil
}

// indexOf must be called with the lock held.
func (s *TaskStore) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// provisionalTask builds the optimistic record with the same defaulting
// rules the server applies. The temporary id is a negative monotonic clock
// reading, so it can never collide with a positive server id.
func (s *TaskStore) provisionalTask(in *model.CreateTaskInput) (*model.Task, error) {
	t, err := in.ToTask()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	t.ID = -now.UnixNano()
	t.CreatedAt = now
	t.UpdatedAt = now
	return t, nil
}

// applyPatch merges only the supplied fields onto the task.
func applyPatch(t *model.Task, in *model.UpdateTaskInput) {
	if in == nil {
		return
	}
	if in.Has("title") && in.Title != nil {
		t.Title = *in.Title
	}
	if in.Has("description") {
		t.Description = in.Description
	}
	if in.Has("due_date") && in.DueDate != nil {
		if d, err := model.ParseDate(*in.DueDate); err == nil {
			t.DueDate = &d
		}
	}
	if in.Has("priority") && in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.Has("completed") && in.Completed != nil {
		t.Completed = *in.Completed
	}
}

// failureMessage prefers the server's message when the error is a
// normalized APIError.
func failureMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return fallback
}

// Partition splits the current mirror into incomplete and completed tasks,
// preserving order. It never mutates the underlying collection.
func (s *TaskStore) Partition() (incomplete, completed []*model.Task) {
	for _, t := range s.Tasks() {
		if t.Completed {
			completed = append(completed, t)
		} else {
			incomplete = append(incomplete, t)
		}
	}
	return incomplete, completed
}

// Filter returns the tasks whose title or description contains the term,
// case-insensitively. An empty term returns everything.
func (s *TaskStore) Filter(term string) []*model.Task {
	tasks := s.Tasks()
	if strings.TrimSpace(term) == "" {
		return tasks
	}
	needle := strings.ToLower(term)
	var out []*model.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			out = append(out, t)
			continue
		}
		if t.Description != nil && strings.Contains(strings.ToLower(*t.Description), needle) {
			out = append(out, t)
		}
	}
	return out
}
