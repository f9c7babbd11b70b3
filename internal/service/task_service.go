package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/VanGog06-SoftUni/ToDAI/internal/components/logging"
	rediscomp "github.com/VanGog06-SoftUni/ToDAI/internal/components/redis"
	"github.com/VanGog06-SoftUni/ToDAI/internal/consts"
	"github.com/VanGog06-SoftUni/ToDAI/internal/core"
	"github.com/VanGog06-SoftUni/ToDAI/internal/dao"
	"github.com/VanGog06-SoftUni/ToDAI/internal/model"
)

const (
	taskListCacheKey = "todai:tasks"
	taskListCacheTTL = 30 * time.Second
)

// TaskService fronts the dao with an optional redis read-through cache for
// the list query. Cache failures degrade to the database silently.
type TaskService struct {
	*core.BaseComponent
	Dao   dao.TaskDao               `infra:"dep:task_dao"`
	Redis *rediscomp.RedisComponent `infra:"dep:redis?"`
}

func NewTaskService() *TaskService {
	return &TaskService{BaseComponent: core.NewBaseComponent(consts.COMP_SVC_TASK)}
}

func (s *TaskService) Start(ctx context.Context) error { return s.BaseComponent.Start(ctx) }
func (s *TaskService) Stop(ctx context.Context) error  { return s.BaseComponent.Stop(ctx) }

func (s *TaskService) List(ctx context.Context) ([]*model.Task, error) {
	if cached, ok := s.cachedList(ctx); ok {
		return cached, nil
	}
	list, err := s.Dao.List(ctx)
	if err != nil {
		return nil, err
	}
	s.storeList(ctx, list)
	return list, nil
}

func (s *TaskService) Create(ctx context.Context, in *model.CreateTaskInput) (*model.Task, error) {
	t, err := in.ToTask()
	if err != nil {
		return nil, err
	}
	if err := s.Dao.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidateList(ctx)
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, id int64, in *model.UpdateTaskInput) (*model.Task, error) {
	t, err := s.Dao.UpdatePartial(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.invalidateList(ctx)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.Dao.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateList(ctx)
	return nil
}

func (s *TaskService) cachedList(ctx context.Context) ([]*model.Task, bool) {
	if s.Redis == nil || s.Redis.Client() == nil {
		return nil, false
	}
	raw, err := s.Redis.Client().Get(ctx, taskListCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var list []*model.Task
	if err := json.Unmarshal(raw, &list); err != nil {
		logging.Warn(ctx, "task list cache decode failed", zap.Error(err))
		return nil, false
	}
	return list, true
}

func (s *TaskService) storeList(ctx context.Context, list []*model.Task) {
	if s.Redis == nil || s.Redis.Client() == nil {
		return
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := s.Redis.Client().Set(ctx, taskListCacheKey, raw, taskListCacheTTL).Err(); err != nil {
		logging.Debug(ctx, "task list cache store failed", zap.Error(err))
	}
}

func (s *TaskService) invalidateList(ctx context.Context) {
	if s.Redis == nil || s.Redis.Client() == nil {
		return
	}
	if err := s.Redis.Client().Del(ctx, taskListCacheKey).Err(); err != nil {
		logging.Debug(ctx, "task list cache invalidate failed", zap.Error(err))
	}
}
