package main

import (
	"flag"
	"log"
	"os"

	"github.com/VanGog06-SoftUni/ToDAI/internal/app"
	"github.com/VanGog06-SoftUni/ToDAI/internal/consts"

	// Route registration and component builders hook in via init.
	_ "github.com/VanGog06-SoftUni/ToDAI/internal/api"
	_ "github.com/VanGog06-SoftUni/ToDAI/internal/registry_ext"
)

func main() {
	cfgPath := flag.String("config", consts.DEFAULT_CONFIG_PATH, "config file path")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = consts.ENV_DEVELOPMENT
	}

	a := app.NewApp(env, *cfgPath)
	if err := a.Run(); err != nil {
		log.Fatalf("todai-server exited with error: %v", err)
	}
}
