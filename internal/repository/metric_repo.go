package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"aerocode/backend/internal/model"
)

// MetricRepository 请求指标数据访问接口
type MetricRepository interface {
	Create(ctx context.Context, m *model.RequestMetric) error
	ListRecent(ctx context.Context, limit int) ([]model.RequestMetric, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

type metricRepo struct {
	db *gorm.DB
}

// NewMetricRepo 创建 MetricRepository 实例
func NewMetricRepo(db *gorm.DB) MetricRepository {
	return &metricRepo{db: db}
}

func (r *metricRepo) Create(ctx context.Context, m *model.RequestMetric) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *metricRepo) ListRecent(ctx context.Context, limit int) ([]model.RequestMetric, error) {
	var list []model.RequestMetric
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *metricRepo) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&model.RequestMetric{})
	return result.RowsAffected, result.Error
}
