package core

import (
	"context"
	"errors"
	"testing"
)

type orderedComp struct {
	*BaseComponent
	log      *[]string
	startErr error
}

func (c *orderedComp) Start(ctx context.Context) error {
	if c.startErr != nil {
		return c.startErr
	}
	*c.log = append(*c.log, "start:"+c.Name())
	c.SetActive(true)
	return nil
}

func (c *orderedComp) Stop(ctx context.Context) error {
	*c.log = append(*c.log, "stop:"+c.Name())
	c.SetActive(false)
	return nil
}

func newOrdered(log *[]string, name string, deps ...string) *orderedComp {
	return &orderedComp{BaseComponent: NewBaseComponent(name, deps...), log: log}
}

func TestSortComponentsByDependencies(t *testing.T) {
	var log []string
	c := NewContainer()
	comps := []*orderedComp{
		newOrdered(&log, "ctrl", "svc"),
		newOrdered(&log, "svc", "dao"),
		newOrdered(&log, "dao", "db"),
		newOrdered(&log, "db"),
	}
	for _, comp := range comps {
		if err := c.Register(comp.Name(), comp); err != nil {
			t.Fatalf("register %s: %v", comp.Name(), err)
		}
	}

	ordered, err := c.SortComponentsByDependencies()
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	idx := map[string]int{}
	for i, comp := range ordered {
		idx[comp.Name()] = i
	}
	pairs := [][2]string{{"db", "dao"}, {"dao", "svc"}, {"svc", "ctrl"}}
	for _, p := range pairs {
		if idx[p[0]] > idx[p[1]] {
			t.Fatalf("expected %s before %s, got %d > %d", p[0], p[1], idx[p[0]], idx[p[1]])
		}
	}
}

func TestSortDetectsCycle(t *testing.T) {
	var log []string
	c := NewContainer()
	a := newOrdered(&log, "a", "b")
	b := newOrdered(&log, "b", "a")
	_ = c.Register("a", a)
	_ = c.Register("b", b)

	if _, err := c.SortComponentsByDependencies(); err == nil {
		t.Fatalf("expected cycle error")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	var log []string
	c := NewContainer()
	if err := c.Register("x", newOrdered(&log, "x")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := c.Register("x", newOrdered(&log, "x")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestValidateDependenciesMissing(t *testing.T) {
	var log []string
	c := NewContainer()
	_ = c.Register("svc", newOrdered(&log, "svc", "ghost"))
	if _, err := c.ValidateDependencies(); err == nil {
		t.Fatalf("expected missing dependency error")
	}
}

func TestReplaceRefusesActiveComponent(t *testing.T) {
	var log []string
	c := NewContainer()
	comp := newOrdered(&log, "x")
	_ = c.Register("x", comp)
	comp.SetActive(true)
	if err := c.Replace("x", newOrdered(&log, "x")); err == nil {
		t.Fatalf("expected refusal to replace active component")
	}
	comp.SetActive(false)
	if err := c.Replace("x", newOrdered(&log, "x")); err != nil {
		t.Fatalf("replace inactive: %v", err)
	}
}

func TestLifecycleStartStopOrder(t *testing.T) {
	var log []string
	c := NewContainer()
	for _, comp := range []*orderedComp{
		newOrdered(&log, "db"),
		newOrdered(&log, "dao", "db"),
		newOrdered(&log, "svc", "dao"),
	} {
		if err := c.Register(comp.Name(), comp); err != nil {
			t.Fatalf("register %s: %v", comp.Name(), err)
		}
	}
	lm := NewLifecycleManager(c)
	if err := lm.StartAll(context.Background()); err != nil {
		t.Fatalf("start all: %v", err)
	}
	lm.StopAll(context.Background())

	want := []string{"start:db", "start:dao", "start:svc", "stop:svc", "stop:dao", "stop:db"}
	if len(log) != len(want) {
		t.Fatalf("log = %v", log)
	}
	for i, w := range want {
		if log[i] != w {
			t.Fatalf("event %d = %s, want %s (full: %v)", i, log[i], w, log)
		}
	}
}

func TestLifecycleStartFailureRollsBack(t *testing.T) {
	var log []string
	c := NewContainer()
	db := newOrdered(&log, "db")
	dao := newOrdered(&log, "dao", "db")
	dao.startErr = errors.New("connect failed")
	_ = c.Register("db", db)
	_ = c.Register("dao", dao)

	lm := NewLifecycleManager(c)
	if err := lm.StartAll(context.Background()); err == nil {
		t.Fatalf("expected start failure")
	}
	if db.IsActive() {
		t.Fatalf("already-started components must be stopped after a failed start")
	}
}

func TestStopAllIsIdempotent(t *testing.T) {
	var log []string
	c := NewContainer()
	comp := newOrdered(&log, "only")
	_ = c.Register("only", comp)

	lm := NewLifecycleManager(c)
	if err := lm.StartAll(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	lm.StopAll(context.Background())
	lm.StopAll(context.Background())

	stops := 0
	for _, e := range log {
		if e == "stop:only" {
			stops++
		}
	}
	if stops != 1 {
		t.Fatalf("expected a single stop, got %d (log: %v)", stops, log)
	}
}
