package registry

import (
	"log"
	"sync"

	"github.com/VanGog06-SoftUni/ToDAI/internal/core"
)

// runtimeDepExtMap stores extra runtime dependency edges applied AFTER
// components are built and registered but BEFORE lifecycle StartAll sorts
// them. key: target component name -> additional dependency names.
var (
	runtimeDepExtMap = map[string][]string{}
	runtimeDepExtMu  sync.Mutex
)

// ExtendRuntimeDependencies declares that component `target` additionally
// depends on `deps`. Affects only runtime start/stop ordering; must be called
// before registry.BuildAndRegisterAll (typically from an init function).
// Unknown targets are ignored with a warning when applied.
func ExtendRuntimeDependencies(target string, deps ...string) {
	if target == "" || len(deps) == 0 {
		return
	}
	runtimeDepExtMu.Lock()
	defer runtimeDepExtMu.Unlock()
	runtimeDepExtMap[target] = append(runtimeDepExtMap[target], deps...)
}

func applyRuntimeDepExtensions(c *core.Container) {
	runtimeDepExtMu.Lock()
	defer runtimeDepExtMu.Unlock()
	if len(runtimeDepExtMap) == 0 {
		return
	}
	for target, extra := range runtimeDepExtMap {
		comp, err := c.Resolve(target)
		if err != nil {
			log.Printf("registry: runtime dep extension target %s not registered (skipped): %v", target, err)
			continue
		}
		if extender, ok := comp.(interface{ AddDependencies(...string) }); ok {
			extender.AddDependencies(extra...)
		} else {
			log.Printf("registry: component %s does not support AddDependencies; extension skipped", target)
		}
	}
	// clear so a second BuildAndRegisterAll does not re-apply
	runtimeDepExtMap = map[string][]string{}
}
