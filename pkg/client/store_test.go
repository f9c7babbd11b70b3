package client

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/VanGog06-SoftUni/ToDAI/internal/model"
)

// stubGateway implements Gateway with canned responses.
type stubGateway struct {
	list      []*model.Task
	listErr   error
	created   *model.Task
	createErr error
	updated   *model.Task
	updateErr error
	deleteErr error

	updateCalls int
	deleteCalls int
}

func (g *stubGateway) ListTasks(ctx context.Context) ([]*model.Task, error) {
	return g.list, g.listErr
}

func (g *stubGateway) CreateTask(ctx context.Context, in *model.CreateTaskInput) (*model.Task, error) {
	return g.created, g.createErr
}

func (g *stubGateway) UpdateTask(ctx context.Context, id int64, in *model.UpdateTaskInput) (*model.Task, error) {
	g.updateCalls++
	return g.updated, g.updateErr
}

func (g *stubGateway) DeleteTask(ctx context.Context, id int64) error {
	g.deleteCalls++
	return g.deleteErr
}

// recordingNotifier captures toast messages.
type recordingNotifier struct {
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Failure(msg string) { n.failures = append(n.failures, msg) }

func seedStore(gw Gateway, tasks ...*model.Task) *TaskStore {
	s := NewTaskStore(gw)
	s.tasks = tasks
	return s
}

func TestFetchReplacesMirror(t *testing.T) {
	gw := &stubGateway{list: []*model.Task{{ID: 1, Title: "remote"}}}
	s := seedStore(gw, &model.Task{ID: 99, Title: "stale"})

	if err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].ID != 1 {
		t.Fatalf("tasks = %+v", tasks)
	}
	if s.Busy() {
		t.Fatalf("busy flag must clear after fetch")
	}
}

func TestFetchFailureKeepsLocalState(t *testing.T) {
	gw := &stubGateway{listErr: errors.New("boom")}
	n := &recordingNotifier{}
	s := NewTaskStore(gw, WithNotifier(n))
	s.tasks = []*model.Task{{ID: 1, Title: "kept"}}

	if err := s.Fetch(context.Background()); err == nil {
		t.Fatalf("expected fetch error")
	}
	if len(s.Tasks()) != 1 {
		t.Fatalf("local state must survive a failed fetch")
	}
	if s.Busy() {
		t.Fatalf("busy flag must clear on failure too")
	}
	if len(n.failures) != 1 || n.failures[0] != "Failed to fetch tasks" {
		t.Fatalf("failures = %v", n.failures)
	}
}

type panickingGateway struct {
	stubGateway
}

func (g *panickingGateway) ListTasks(ctx context.Context) ([]*model.Task, error) {
	panic("gateway blew up")
}

func TestFetchClearsBusyAfterGatewayPanic(t *testing.T) {
	s := NewTaskStore(&panickingGateway{})

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected the gateway panic to propagate")
			}
		}()
		_ = s.Fetch(context.Background())
	}()

	if s.Busy() {
		t.Fatalf("busy flag must clear even when the gateway panics")
	}
}

func TestCreateOptimisticReplaceInPlace(t *testing.T) {
	server := &model.Task{ID: 42, Title: "Buy milk", Priority: model.PriorityMedium}
	gw := &stubGateway{created: server}
	n := &recordingNotifier{}
	s := NewTaskStore(gw, WithNotifier(n))
	s.tasks = []*model.Task{{ID: 1, Title: "existing"}}

	in := &model.CreateTaskInput{Title: "Buy milk", DueDate: "2099-01-01"}
	if err := s.Create(context.Background(), in); err != nil {
		t.Fatalf("create: %v", err)
	}
	tasks := s.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != 42 {
		t.Fatalf("server record must replace the provisional one at the front, got id %d", tasks[0].ID)
	}
	if tasks[1].ID != 1 {
		t.Fatalf("existing task displaced: %+v", tasks[1])
	}
	if len(n.successes) != 1 || n.successes[0] != "Task created successfully" {
		t.Fatalf("successes = %v", n.successes)
	}
}

func TestCreateRollbackRestoresExactState(t *testing.T) {
	gw := &stubGateway{createErr: &APIError{Status: 400, Message: "Validation failed",
		FieldErrors: map[string]string{"title": "Title is required"}}}
	n := &recordingNotifier{}
	s := NewTaskStore(gw, WithNotifier(n))
	before := []*model.Task{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}
	s.tasks = append([]*model.Task{}, before...)

	in := &model.CreateTaskInput{Title: "x", DueDate: "2099-01-01"}
	err := s.Create(context.Background(), in)
	if err == nil {
		t.Fatalf("expected create error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.FieldErrors["title"] == "" {
		t.Fatalf("gateway error must surface field errors, got %v", err)
	}
	if !reflect.DeepEqual(s.Tasks(), before) {
		t.Fatalf("rollback state = %+v, want %+v", s.Tasks(), before)
	}
	if len(n.failures) != 1 || n.failures[0] != "Validation failed" {
		t.Fatalf("failure toast must carry the server message, got %v", n.failures)
	}
}

func TestCreateProvisionalIDIsNegative(t *testing.T) {
	s := NewTaskStore(&stubGateway{})
	in := &model.CreateTaskInput{Title: "x", DueDate: "2099-01-01"}
	p, err := s.provisionalTask(in)
	if err != nil {
		t.Fatalf("provisional: %v", err)
	}
	if p.ID >= 0 {
		t.Fatalf("provisional id must be negative, got %d", p.ID)
	}
	if p.Priority != model.PriorityMedium {
		t.Fatalf("provisional priority = %q, want MEDIUM", p.Priority)
	}
}

func TestUpdateMergesThenConfirms(t *testing.T) {
	desc := "details"
	server := &model.Task{ID: 1, Title: "server title", Completed: true}
	gw := &stubGateway{updated: server}
	s := seedStore(gw, &model.Task{ID: 1, Title: "old", Description: &desc})

	var in model.UpdateTaskInput
	in.SetCompleted(true)
	if err := s.Update(context.Background(), 1, &in); err != nil {
		t.Fatalf("update: %v", err)
	}
	tasks := s.Tasks()
	if tasks[0] != server {
		t.Fatalf("server record must replace local, got %+v", tasks[0])
	}
}

func TestUpdateRollbackRestoresSnapshot(t *testing.T) {
	desc := "keep me"
	gw := &stubGateway{updateErr: errors.New("boom")}
	s := seedStore(gw,
		&model.Task{ID: 1, Title: "first"},
		&model.Task{ID: 2, Title: "original", Description: &desc, Priority: model.PriorityHigh},
	)

	var in model.UpdateTaskInput
	in.SetTitle("renamed")
	in.SetPriority(model.PriorityLow)
	if err := s.Update(context.Background(), 2, &in); err == nil {
		t.Fatalf("expected update error")
	}
	tasks := s.Tasks()
	if tasks[1].Title != "original" || tasks[1].Priority != model.PriorityHigh {
		t.Fatalf("snapshot not restored: %+v", tasks[1])
	}
	if tasks[1].Description == nil || *tasks[1].Description != "keep me" {
		t.Fatalf("unrelated fields must survive rollback: %+v", tasks[1])
	}
	if tasks[0].Title != "first" {
		t.Fatalf("other records must be untouched: %+v", tasks[0])
	}
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	gw := &stubGateway{}
	s := seedStore(gw, &model.Task{ID: 1, Title: "only"})

	var in model.UpdateTaskInput
	in.SetCompleted(true)
	if err := s.Update(context.Background(), 99, &in); err != nil {
		t.Fatalf("unknown id must be a no-op, got %v", err)
	}
	if gw.updateCalls != 0 {
		t.Fatalf("no request must be issued for unknown ids")
	}
}

func TestDeleteOptimistic(t *testing.T) {
	gw := &stubGateway{}
	n := &recordingNotifier{}
	s := NewTaskStore(gw, WithNotifier(n))
	s.tasks = []*model.Task{{ID: 1}, {ID: 2}, {ID: 3}}

	if err := s.Delete(context.Background(), 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	tasks := s.Tasks()
	if len(tasks) != 2 || tasks[0].ID != 1 || tasks[1].ID != 3 {
		t.Fatalf("tasks = %+v", tasks)
	}
	if len(n.successes) != 1 || n.successes[0] != "Task deleted successfully" {
		t.Fatalf("successes = %v", n.successes)
	}
}

func TestDeleteRollbackReinsertsAtOriginalIndex(t *testing.T) {
	gw := &stubGateway{deleteErr: errors.New("boom")}
	s := seedStore(gw, &model.Task{ID: 1}, &model.Task{ID: 2}, &model.Task{ID: 3})

	if err := s.Delete(context.Background(), 2); err == nil {
		t.Fatalf("expected delete error")
	}
	tasks := s.Tasks()
	if len(tasks) != 3 {
		t.Fatalf("expected reinsert, got %d tasks", len(tasks))
	}
	for i, want := range []int64{1, 2, 3} {
		if tasks[i].ID != want {
			t.Fatalf("position %d = id %d, want %d", i, tasks[i].ID, want)
		}
	}
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	gw := &stubGateway{}
	s := seedStore(gw, &model.Task{ID: 1})
	if err := s.Delete(context.Background(), 99); err != nil {
		t.Fatalf("unknown id must be a no-op, got %v", err)
	}
	if gw.deleteCalls != 0 {
		t.Fatalf("no request must be issued for unknown ids")
	}
}

func TestPartitionAndFilter(t *testing.T) {
	desc := "write the Quarterly report"
	gw := &stubGateway{}
	s := seedStore(gw,
		&model.Task{ID: 1, Title: "Groceries", Completed: false},
		&model.Task{ID: 2, Title: "Report", Description: &desc, Completed: true},
		&model.Task{ID: 3, Title: "Laundry", Completed: false},
	)

	incomplete, completed := s.Partition()
	if len(incomplete) != 2 || len(completed) != 1 {
		t.Fatalf("partition = %d/%d", len(incomplete), len(completed))
	}
	if completed[0].ID != 2 {
		t.Fatalf("completed = %+v", completed)
	}

	if got := s.Filter("quarterly"); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("description match = %+v", got)
	}
	if got := s.Filter("LAUN"); len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("title match = %+v", got)
	}
	if got := s.Filter("  "); len(got) != 3 {
		t.Fatalf("blank term must return everything, got %d", len(got))
	}
	if got := s.Filter("nothing"); len(got) != 0 {
		t.Fatalf("no match = %+v", got)
	}
}

func TestUpdateAppliesPatchLocallyBeforeConfirm(t *testing.T) {
	blocked := make(chan struct{})
	release := make(chan struct{})
	gw := &blockingGateway{blocked: blocked, release: release}
	s := seedStore(gw, &model.Task{ID: 1, Title: "old", UpdatedAt: time.Unix(0, 0)})

	var in model.UpdateTaskInput
	in.SetTitle("new")
	done := make(chan error, 1)
	go func() { done <- s.Update(context.Background(), 1, &in) }()

	<-blocked
	tasks := s.Tasks()
	if tasks[0].Title != "new" {
		t.Fatalf("optimistic merge must land before the request returns, got %q", tasks[0].Title)
	}
	if !tasks[0].UpdatedAt.After(time.Unix(0, 0)) {
		t.Fatalf("merge must refresh the timestamp")
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("update: %v", err)
	}
}

// blockingGateway parks UpdateTask until released, so a test can observe the
// mirror mid-flight.
type blockingGateway struct {
	blocked chan struct{}
	release chan struct{}
}

func (g *blockingGateway) ListTasks(ctx context.Context) ([]*model.Task, error) { return nil, nil }

func (g *blockingGateway) CreateTask(ctx context.Context, in *model.CreateTaskInput) (*model.Task, error) {
	return nil, nil
}

func (g *blockingGateway) UpdateTask(ctx context.Context, id int64, in *model.UpdateTaskInput) (*model.Task, error) {
	close(g.blocked)
	<-g.release
	return &model.Task{ID: id, Title: "new"}, nil
}

func (g *blockingGateway) DeleteTask(ctx context.Context, id int64) error { return nil }
