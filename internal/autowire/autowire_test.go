package autowire_test

import (
	"testing"

	"github.com/VanGog06-SoftUni/ToDAI/internal/autowire"
	"github.com/VanGog06-SoftUni/ToDAI/internal/core"
)

type storeComp struct {
	*core.BaseComponent
}

type svcComp struct {
	*core.BaseComponent
	Store    *storeComp `infra:"dep:store"`
	Optional *storeComp `infra:"dep:missing_cache?"`
}

type ifaceTarget interface {
	core.Component
}

type ctrlComp struct {
	*core.BaseComponent
	Svc ifaceTarget `infra:"dep:svc"`
}

func TestInjectAllWiresTaggedFields(t *testing.T) {
	c := core.NewContainer()
	store := &storeComp{BaseComponent: core.NewBaseComponent("store")}
	svc := &svcComp{BaseComponent: core.NewBaseComponent("svc")}
	ctrl := &ctrlComp{BaseComponent: core.NewBaseComponent("ctrl")}

	for name, comp := range map[string]core.Component{"store": store, "svc": svc, "ctrl": ctrl} {
		if err := c.Register(name, comp); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	if err := autowire.InjectAll(c); err != nil {
		t.Fatalf("autowire failed: %v", err)
	}
	if svc.Store != store {
		t.Fatalf("store not injected into svc")
	}
	if svc.Optional != nil {
		t.Fatalf("optional missing dep must stay nil")
	}
	if ctrl.Svc == nil {
		t.Fatalf("interface field not injected")
	}

	// Injection must append runtime deps so start ordering follows the wiring.
	found := false
	for _, dep := range svc.Dependencies() {
		if dep == "store" {
			found = true
		}
	}
	if !found {
		t.Fatalf("injected dep not added to runtime dependencies: %v", svc.Dependencies())
	}
}

func TestInjectMissingRequiredDepFails(t *testing.T) {
	c := core.NewContainer()
	svc := &svcComp{BaseComponent: core.NewBaseComponent("svc")}
	if err := c.Register("svc", svc); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := autowire.InjectAll(c); err == nil {
		t.Fatalf("expected error for missing required dependency")
	}
}

func TestInjectionDrivesStartOrder(t *testing.T) {
	c := core.NewContainer()
	store := &storeComp{BaseComponent: core.NewBaseComponent("store")}
	svc := &svcComp{BaseComponent: core.NewBaseComponent("svc")}
	for name, comp := range map[string]core.Component{"store": store, "svc": svc} {
		if err := c.Register(name, comp); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	if err := autowire.InjectAll(c); err != nil {
		t.Fatalf("autowire failed: %v", err)
	}
	ordered, err := c.ValidateDependencies()
	if err != nil {
		t.Fatalf("validate deps failed: %v", err)
	}
	idx := map[string]int{}
	for i, comp := range ordered {
		idx[comp.Name()] = i
	}
	if idx["store"] > idx["svc"] {
		t.Fatalf("expected store before svc in start order, got %d > %d", idx["store"], idx["svc"])
	}
}
