package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/VanGog06-SoftUni/ToDAI/internal/consts"
)

// Loader reads the application config file (yaml or json).
type Loader struct {
	env        string
	configPath string
}

func NewLoader(env string, configPath string) *Loader {
	if env == "" {
		env = consts.ENV_DEVELOPMENT
	}
	if configPath == "" {
		configPath = consts.DEFAULT_CONFIG_PATH
	}
	return &Loader{env: env, configPath: configPath}
}

func (l *Loader) LoadConfig() (*AppConfig, error) {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	ext := strings.ToLower(filepath.Ext(l.configPath))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	l.mergeEnvVars(&cfg)
	return &cfg, nil
}

// mergeEnvVars lets deployment environments override secrets without editing
// the config file. Only connection-level settings are overridable.
func (l *Loader) mergeEnvVars(cfg *AppConfig) {
	if cfg == nil {
		return
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" && cfg.PostgresGORM != nil {
		for _, ds := range cfg.PostgresGORM.DataSources {
			if ds != nil && ds.DSN == "" {
				ds.DSN = dsn
			}
		}
	}
	if port := os.Getenv("PORT"); port != "" && cfg.HTTPServer != nil {
		cfg.HTTPServer.Address = ":" + port
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
