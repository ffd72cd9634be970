package repository

import (
	"context"

	"gorm.io/gorm"

	"aerocode/backend/internal/model"
)

// ReportRepository 交付报告数据访问接口（无 Update）
type ReportRepository interface {
	Create(ctx context.Context, r *model.Report) error
	GetByID(ctx context.Context, id string) (*model.Report, error)
	// List 按生成时间倒序
	List(ctx context.Context, aircraftCode string) ([]model.Report, error)
	Delete(ctx context.Context, id string) error
}

type reportRepo struct {
	db *gorm.DB
}

// NewReportRepo 创建 ReportRepository 实例
func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, rep *model.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *reportRepo) GetByID(ctx context.Context, id string) (*model.Report, error) {
	var rep model.Report
	err := r.db.WithContext(ctx).
		Where("report_id = ?", id).
		First(&rep).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *reportRepo) List(ctx context.Context, aircraftCode string) ([]model.Report, error) {
	var list []model.Report
	db := r.db.WithContext(ctx)
	if aircraftCode != "" {
		db = db.Where("aircraft_code = ?", aircraftCode)
	}
	err := db.Order("generated_at DESC").Find(&list).Error
	return list, err
}

func (r *reportRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("report_id = ?", id).
		Delete(&model.Report{}).Error
}
