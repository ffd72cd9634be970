package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aerocode/backend/internal/model"
	pkgerrors "aerocode/backend/pkg/errors"
)

// StageRepository 生产阶段数据访问接口
type StageRepository interface {
	Create(ctx context.Context, s *model.Stage) error
	GetByID(ctx context.Context, id string) (*model.Stage, error)
	GetByNameAndAircraft(ctx context.Context, name, aircraftCode string) (*model.Stage, error)
	// List 按期限排序并加载分配关系
	List(ctx context.Context, aircraftCode string) ([]model.Stage, error)
	// ListWithEmployees 加载分配员工，供报告与日历使用
	ListWithEmployees(ctx context.Context, aircraftCode string) ([]model.Stage, error)
	Update(ctx context.Context, s *model.Stage) error
	Delete(ctx context.Context, id string) error
	// TransitionStatus 条件更新 status: from → to，未命中返回 ErrOptimisticLock
	TransitionStatus(ctx context.Context, id, from, to string) (*model.Stage, error)
}

type stageRepo struct {
	db *gorm.DB
}

// NewStageRepo 创建 StageRepository 实例
func NewStageRepo(db *gorm.DB) StageRepository {
	return &stageRepo{db: db}
}

func (r *stageRepo) Create(ctx context.Context, s *model.Stage) error {
	return r.db.WithContext(ctx).Omit("Assignments").Create(s).Error
}

func (r *stageRepo) GetByID(ctx context.Context, id string) (*model.Stage, error) {
	var s model.Stage
	err := r.db.WithContext(ctx).
		Preload("Assignments").
		Where("stage_id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stageRepo) GetByNameAndAircraft(ctx context.Context, name, aircraftCode string) (*model.Stage, error) {
	var s model.Stage
	err := r.db.WithContext(ctx).
		Where("name = ? AND aircraft_code = ?", name, aircraftCode).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stageRepo) List(ctx context.Context, aircraftCode string) ([]model.Stage, error) {
	var stages []model.Stage
	db := r.db.WithContext(ctx).Preload("Assignments")
	if aircraftCode != "" {
		db = db.Where("aircraft_code = ?", aircraftCode)
	}
	err := db.Order("deadline ASC, name ASC").Find(&stages).Error
	return stages, err
}

func (r *stageRepo) ListWithEmployees(ctx context.Context, aircraftCode string) ([]model.Stage, error) {
	var stages []model.Stage
	db := r.db.WithContext(ctx).Preload("Assignments.Employee")
	if aircraftCode != "" {
		db = db.Where("aircraft_code = ?", aircraftCode)
	}
	err := db.Order("deadline ASC, name ASC").Find(&stages).Error
	return stages, err
}

func (r *stageRepo) Update(ctx context.Context, s *model.Stage) error {
	return r.db.WithContext(ctx).
		Model(&model.Stage{}).
		Where("stage_id = ?", s.StageID).
		Updates(map[string]interface{}{
			"name":          s.Name,
			"deadline":      s.Deadline,
			"aircraft_code": s.AircraftCode,
			"updated_at":    gorm.Expr("NOW()"),
		}).Error
}

func (r *stageRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("stage_id = ?", id).
		Delete(&model.Stage{}).Error
}

func (r *stageRepo) TransitionStatus(ctx context.Context, id, from, to string) (*model.Stage, error) {
	var s model.Stage
	result := r.db.WithContext(ctx).
		Model(&s).
		Clauses(clause.Returning{}).
		Where("stage_id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, pkgerrors.ErrOptimisticLock
	}
	return &s, nil
}
