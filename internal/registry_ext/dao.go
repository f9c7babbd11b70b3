package registry_ext

import (
	"github.com/VanGog06-SoftUni/ToDAI/internal/config"
	"github.com/VanGog06-SoftUni/ToDAI/internal/core"
	"github.com/VanGog06-SoftUni/ToDAI/internal/dao"
	"github.com/VanGog06-SoftUni/ToDAI/internal/registry"
)

func init() {
	registry.RegisterAuto(func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		// datasource name comes from config.yaml -> postgres_gorm.data_sources
		return true, dao.NewTaskDao("tasks"), nil
	})
}
