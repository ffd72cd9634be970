package repository

import (
	"context"

	"gorm.io/gorm"

	"aerocode/backend/internal/model"
)

// StatusLogRepository 状态变更记录数据访问接口（只追加）
type StatusLogRepository interface {
	Create(ctx context.Context, log *model.StatusChangeLog) error
	List(ctx context.Context, entityType, entityID string, offset, limit int) ([]model.StatusChangeLog, int64, error)
}

type statusLogRepo struct {
	db *gorm.DB
}

// NewStatusLogRepo 创建 StatusLogRepository 实例
func NewStatusLogRepo(db *gorm.DB) StatusLogRepository {
	return &statusLogRepo{db: db}
}

func (r *statusLogRepo) Create(ctx context.Context, log *model.StatusChangeLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *statusLogRepo) List(ctx context.Context, entityType, entityID string, offset, limit int) ([]model.StatusChangeLog, int64, error) {
	var logs []model.StatusChangeLog
	var total int64

	db := r.db.WithContext(ctx).Model(&model.StatusChangeLog{})
	if entityType != "" {
		db = db.Where("entity_type = ?", entityType)
	}
	if entityID != "" {
		db = db.Where("entity_id = ?", entityID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
