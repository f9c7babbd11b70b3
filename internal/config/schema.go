package config

import (
	"github.com/VanGog06-SoftUni/ToDAI/internal/components/http_server"
	"github.com/VanGog06-SoftUni/ToDAI/internal/components/logging"
	"github.com/VanGog06-SoftUni/ToDAI/internal/components/postgresgorm"
	"github.com/VanGog06-SoftUni/ToDAI/internal/components/prometheus"
	"github.com/VanGog06-SoftUni/ToDAI/internal/components/redis"
	"github.com/VanGog06-SoftUni/ToDAI/internal/components/telemetry"
)

// AppConfig is the top-level application configuration.
type AppConfig struct {
	APPInfo      *APPInfo                      `yaml:"app_info" json:"app_info"`
	Logging      *logging.LoggingConfig        `yaml:"logging" json:"logging"`
	HTTPServer   *http_server.HTTPServerConfig `yaml:"http_server" json:"http_server"`
	PostgresGORM *postgresgorm.Config          `yaml:"postgres_gorm" json:"postgres_gorm"`
	Redis        *redis.Config                 `yaml:"redis" json:"redis"`
	Prometheus   *prometheus.Config            `yaml:"prometheus" json:"prometheus"`
	Telemetry    *telemetry.Config             `yaml:"telemetry" json:"telemetry"`
}

type APPInfo struct {
	APPName string `yaml:"app_name" json:"app_name"`
	ENV     string `yaml:"env" json:"env"`
}

// Env returns the configured environment, defaulting to development.
func (a *AppConfig) Env() string {
	if a == nil || a.APPInfo == nil || a.APPInfo.ENV == "" {
		return "development"
	}
	return a.APPInfo.ENV
}
