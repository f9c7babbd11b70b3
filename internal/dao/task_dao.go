package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/VanGog06-SoftUni/ToDAI/internal/components/postgresgorm"
	"github.com/VanGog06-SoftUni/ToDAI/internal/consts"
	"github.com/VanGog06-SoftUni/ToDAI/internal/core"
	"github.com/VanGog06-SoftUni/ToDAI/internal/model"
)

// ErrTaskNotFound is returned when the target id has no row.
var ErrTaskNotFound = errors.New("task not found")

// ErrEmptyUpdate is returned when a partial update carries no fields.
var ErrEmptyUpdate = errors.New("no fields to update")

type TaskDao interface {
	// Embed component so registry builders can return it where
	// core.Component is required.
	core.Component

	List(ctx context.Context) ([]*model.Task, error)
	Get(ctx context.Context, id int64) (*model.Task, error)
	Create(ctx context.Context, t *model.Task) error
	// UpdatePartial applies exactly the supplied columns plus updated_at
	// and returns the full updated row.
	UpdatePartial(ctx context.Context, id int64, in *model.UpdateTaskInput) (*model.Task, error)
	Delete(ctx context.Context, id int64) error
}

type taskDaoImpl struct {
	*core.BaseComponent
	GormComp *postgresgorm.PostgresGormComponent `infra:"dep:postgres_gorm"`
	db       *gorm.DB
	dsName   string
}

func NewTaskDao(dsName string) TaskDao {
	return &taskDaoImpl{
		BaseComponent: core.NewBaseComponent(consts.COMP_DAO_TASK, consts.COMPONENT_LOGGING),
		dsName:        dsName,
	}
}

func (d *taskDaoImpl) Start(ctx context.Context) error {
	db, err := d.GormComp.GetDB(d.dsName)
	if err != nil {
		return fmt.Errorf("get gorm db %s failed: %w", d.dsName, err)
	}
	d.db = db
	d.SetActive(true)
	return nil
}

func (d *taskDaoImpl) Stop(ctx context.Context) error {
	d.SetActive(false)
	return nil
}

func (d *taskDaoImpl) List(ctx context.Context) ([]*model.Task, error) {
	var list []*model.Task
	err := d.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (d *taskDaoImpl) Get(ctx context.Context, id int64) (*model.Task, error) {
	var t model.Task
	if err := d.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (d *taskDaoImpl) Create(ctx context.Context, t *model.Task) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	return d.db.WithContext(ctx).Create(t).Error
}

func (d *taskDaoImpl) UpdatePartial(ctx context.Context, id int64, in *model.UpdateTaskInput) (*model.Task, error) {
	if in == nil || in.Empty() {
		return nil, ErrEmptyUpdate
	}
	cols, err := in.Columns(time.Now())
	if err != nil {
		return nil, err
	}
	res := d.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrTaskNotFound
	}
	return d.Get(ctx, id)
}

func (d *taskDaoImpl) Delete(ctx context.Context, id int64) error {
	res := d.db.WithContext(ctx).Delete(&model.Task{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
