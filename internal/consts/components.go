package consts

// Infrastructure component names.
const (
	COMPONENT_LOGGING       = "logging"
	COMPONENT_HTTP_SERVER   = "http_server"
	COMPONENT_REDIS         = "redis"
	COMPONENT_PROMETHEUS    = "prometheus"
	COMPONENT_TELEMETRY     = "telemetry"
	COMPONENT_POSTGRES_GORM = "postgres_gorm"
)

// Business component names.
const (
	COMP_DAO_TASK  = "task_dao"
	COMP_SVC_TASK  = "task_service"
	COMP_CTRL_TASK = "task_ctrl"
)
