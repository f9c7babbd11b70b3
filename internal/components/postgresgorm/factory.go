package postgresgorm

import (
	"fmt"

	"github.com/VanGog06-SoftUni/ToDAI/internal/core"
)

type Factory struct{}

func NewFactory() *Factory { return &Factory{} }

func (f *Factory) Create(cfg interface{}) (core.Component, error) {
	pgCfg, ok := cfg.(*Config)
	if !ok {
		return nil, fmt.Errorf("invalid config type for postgres_gorm component (need *postgresgorm.Config)")
	}
	if !pgCfg.Enabled {
		return nil, fmt.Errorf("postgres_gorm component disabled")
	}
	if len(pgCfg.DataSources) == 0 {
		return nil, fmt.Errorf("postgres_gorm requires at least one datasource")
	}
	return NewPostgresGormComponent(pgCfg), nil
}
