package api

import (
	"fmt"

	"github.com/go-chi/chi/v5"

	"github.com/VanGog06-SoftUni/ToDAI/internal/components/http_server"
	"github.com/VanGog06-SoftUni/ToDAI/internal/consts"
	"github.com/VanGog06-SoftUni/ToDAI/internal/core"
)

// Unified route registration for the task API.
func init() {
	http_server.RegisterRoutes(func(r chi.Router, c *core.Container) error {
		comp, err := c.Resolve(consts.COMP_CTRL_TASK)
		if err != nil {
			return err
		}
		ctrl, ok := comp.(*TaskController)
		if !ok {
			return fmt.Errorf("component %s is not a TaskController", consts.COMP_CTRL_TASK)
		}

		r.Route("/api/tasks", func(r chi.Router) {
			r.Get("/", ctrl.List)
			r.Post("/", ctrl.Create)
			r.Put("/{id}", ctrl.Update)
			r.Delete("/{id}", ctrl.Delete)
		})
		return nil
	})
}
