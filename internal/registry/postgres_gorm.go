package registry

import (
	"github.com/VanGog06-SoftUni/ToDAI/internal/components/postgresgorm"
	"github.com/VanGog06-SoftUni/ToDAI/internal/config"
	"github.com/VanGog06-SoftUni/ToDAI/internal/consts"
	"github.com/VanGog06-SoftUni/ToDAI/internal/core"
)

func init() {
	Register(consts.COMPONENT_POSTGRES_GORM, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if cfg.PostgresGORM == nil || !cfg.PostgresGORM.Enabled {
			return false, nil, nil
		}
		factory := postgresgorm.NewFactory()
		comp, err := factory.Create(cfg.PostgresGORM)
		if err != nil {
			return true, nil, err
		}
		return true, comp, nil
	})
}
