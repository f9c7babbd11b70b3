package registry

import (
	"github.com/VanGog06-SoftUni/ToDAI/internal/components/http_server"
	"github.com/VanGog06-SoftUni/ToDAI/internal/config"
	"github.com/VanGog06-SoftUni/ToDAI/internal/consts"
	"github.com/VanGog06-SoftUni/ToDAI/internal/core"
)

func init() {
	Register(consts.COMPONENT_HTTP_SERVER, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if cfg.HTTPServer == nil || !cfg.HTTPServer.Enabled {
			return false, nil, nil
		}
		if cfg.HTTPServer.ServiceName == "" && cfg.APPInfo != nil {
			cfg.HTTPServer.ServiceName = cfg.APPInfo.APPName
		}
		factory := http_server.NewFactory(c)
		comp, err := factory.Create(cfg.HTTPServer)
		if err != nil {
			return true, nil, err
		}
		// The otelchi middleware needs the tracer provider installed first,
		// but telemetry may be disabled entirely.
		if cfg.Telemetry != nil && cfg.Telemetry.Enabled {
			if adder, ok := comp.(interface{ AddDependencies(...string) }); ok {
				adder.AddDependencies(consts.COMPONENT_TELEMETRY)
			}
		}
		return true, comp, nil
	})
}
