package repository

import (
	"context"

	"gorm.io/gorm"

	"aerocode/backend/internal/model"
)

// StageAssignmentRepository 阶段-员工分配数据访问接口
type StageAssignmentRepository interface {
	Create(ctx context.Context, a *model.StageAssignment) error
	Exists(ctx context.Context, stageID, cpf string) (bool, error)
	// Delete 返回实际删除行数
	Delete(ctx context.Context, stageID, cpf string) (int64, error)
}

type stageAssignmentRepo struct {
	db *gorm.DB
}

// NewStageAssignmentRepo 创建 StageAssignmentRepository 实例
func NewStageAssignmentRepo(db *gorm.DB) StageAssignmentRepository {
	return &stageAssignmentRepo{db: db}
}

func (r *stageAssignmentRepo) Create(ctx context.Context, a *model.StageAssignment) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(a).Error
}

func (r *stageAssignmentRepo) Exists(ctx context.Context, stageID, cpf string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.StageAssignment{}).
		Where("stage_id = ? AND employee_cpf = ?", stageID, cpf).
		Count(&count).Error
	return count > 0, err
}

func (r *stageAssignmentRepo) Delete(ctx context.Context, stageID, cpf string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("stage_id = ? AND employee_cpf = ?", stageID, cpf).
		Delete(&model.StageAssignment{})
	return result.RowsAffected, result.Error
}
