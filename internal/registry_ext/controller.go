package registry_ext

import (
	"github.com/VanGog06-SoftUni/ToDAI/internal/api"
	"github.com/VanGog06-SoftUni/ToDAI/internal/config"
	"github.com/VanGog06-SoftUni/ToDAI/internal/consts"
	"github.com/VanGog06-SoftUni/ToDAI/internal/core"
	"github.com/VanGog06-SoftUni/ToDAI/internal/registry"
)

func init() {
	registry.RegisterAuto(func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		return true, api.NewTaskController(cfg.Env()), nil
	})

	// The http server resolves the controller while registering routes, so
	// it must start after it.
	registry.ExtendRuntimeDependencies(consts.COMPONENT_HTTP_SERVER, consts.COMP_CTRL_TASK)
}
