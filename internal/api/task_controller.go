package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	promclient "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/VanGog06-SoftUni/ToDAI/internal/components/logging"
	"github.com/VanGog06-SoftUni/ToDAI/internal/components/prometheus"
	"github.com/VanGog06-SoftUni/ToDAI/internal/consts"
	"github.com/VanGog06-SoftUni/ToDAI/internal/core"
	"github.com/VanGog06-SoftUni/ToDAI/internal/dao"
	"github.com/VanGog06-SoftUni/ToDAI/internal/model"
	"github.com/VanGog06-SoftUni/ToDAI/internal/service"
	"github.com/VanGog06-SoftUni/ToDAI/internal/validation"
)

// TaskController maps the /api/tasks resource onto the task service.
type TaskController struct {
	*core.BaseComponent
	Svc *service.TaskService `infra:"dep:task_service"`

	env string

	metricsOnce sync.Once
	reqCounter  *promclient.CounterVec
	reqDuration *promclient.HistogramVec
}

func NewTaskController(env string) *TaskController {
	return &TaskController{
		BaseComponent: core.NewBaseComponent(consts.COMP_CTRL_TASK, consts.COMPONENT_LOGGING),
		env:           env,
	}
}

func (c *TaskController) Start(ctx context.Context) error { return c.BaseComponent.Start(ctx) }
func (c *TaskController) Stop(ctx context.Context) error  { return c.BaseComponent.Stop(ctx) }

// observe records per-operation request metrics when the metrics component
// is running.
func (c *TaskController) observe(op string, status int, start time.Time) {
	c.metricsOnce.Do(func() {
		if m := prometheus.C(); m != nil {
			c.reqCounter = m.NewCounter("task_requests_total", "Task API requests by operation and status.", []string{"op", "status"})
			c.reqDuration = m.NewHistogram("task_request_duration_seconds", "Task API request latency.", []string{"op"}, nil)
		}
	})
	if c.reqCounter != nil {
		c.reqCounter.WithLabelValues(op, strconv.Itoa(status)).Inc()
	}
	if c.reqDuration != nil {
		c.reqDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

// serverError maps unexpected failures to a 500. The concrete error text
// is only exposed outside production.
func (c *TaskController) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logging.Error(r.Context(), "task request failed", zap.Error(err))
	msg := "Internal server error"
	if c.env == consts.ENV_DEVELOPMENT {
		msg = err.Error()
	}
	writeError(w, http.StatusInternalServerError, msg)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// GET /api/tasks
func (c *TaskController) List(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	list, err := c.Svc.List(r.Context())
	if err != nil {
		c.observe("list", http.StatusInternalServerError, start)
		c.serverError(w, r, err)
		return
	}
	if list == nil {
		list = []*model.Task{}
	}
	c.observe("list", http.StatusOK, start)
	writeJSON(w, http.StatusOK, list)
}

// POST /api/tasks
func (c *TaskController) Create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var in model.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		c.observe("create", http.StatusBadRequest, start)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validation.ValidateCreate(&in); len(errs) > 0 {
		c.observe("create", http.StatusBadRequest, start)
		writeFieldErrors(w, errs)
		return
	}
	t, err := c.Svc.Create(r.Context(), &in)
	if err != nil {
		c.observe("create", http.StatusInternalServerError, start)
		c.serverError(w, r, err)
		return
	}
	c.observe("create", http.StatusCreated, start)
	writeJSON(w, http.StatusCreated, t)
}

// PUT /api/tasks/{id}
func (c *TaskController) Update(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseID(r)
	if err != nil {
		c.observe("update", http.StatusNotFound, start)
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	var in model.UpdateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		c.observe("update", http.StatusBadRequest, start)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Empty() {
		c.observe("update", http.StatusBadRequest, start)
		writeError(w, http.StatusBadRequest, "No fields to update")
		return
	}
	if errs := validation.ValidateUpdate(&in); len(errs) > 0 {
		c.observe("update", http.StatusBadRequest, start)
		writeFieldErrors(w, errs)
		return
	}
	t, err := c.Svc.Update(r.Context(), id, &in)
	if err != nil {
		switch {
		case errors.Is(err, dao.ErrTaskNotFound):
			c.observe("update", http.StatusNotFound, start)
			writeError(w, http.StatusNotFound, "Task not found")
		case errors.Is(err, dao.ErrEmptyUpdate):
			c.observe("update", http.StatusBadRequest, start)
			writeError(w, http.StatusBadRequest, "No fields to update")
		default:
			c.observe("update", http.StatusInternalServerError, start)
			c.serverError(w, r, err)
		}
		return
	}
	c.observe("update", http.StatusOK, start)
	writeJSON(w, http.StatusOK, t)
}

// DELETE /api/tasks/{id}
func (c *TaskController) Delete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseID(r)
	if err != nil {
		c.observe("delete", http.StatusNotFound, start)
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err := c.Svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, dao.ErrTaskNotFound) {
			c.observe("delete", http.StatusNotFound, start)
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		c.observe("delete", http.StatusInternalServerError, start)
		c.serverError(w, r, err)
		return
	}
	c.observe("delete", http.StatusNoContent, start)
	w.WriteHeader(http.StatusNoContent)
}
