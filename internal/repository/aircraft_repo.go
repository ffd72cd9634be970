package repository

import (
	"context"

	"gorm.io/gorm"

	"aerocode/backend/internal/model"
)

// AircraftRepository 飞机数据访问接口
type AircraftRepository interface {
	Create(ctx context.Context, a *model.Aircraft) error
	GetByCode(ctx context.Context, code string) (*model.Aircraft, error)
	// GetWithRelations 同时加载零件、阶段（含分配）与测试
	GetWithRelations(ctx context.Context, code string) (*model.Aircraft, error)
	ListWithRelations(ctx context.Context) ([]model.Aircraft, error)
	Update(ctx context.Context, a *model.Aircraft) error
	Delete(ctx context.Context, code string) error
}

type aircraftRepo struct {
	db *gorm.DB
}

// NewAircraftRepo 创建 AircraftRepository 实例
func NewAircraftRepo(db *gorm.DB) AircraftRepository {
	return &aircraftRepo{db: db}
}

func (r *aircraftRepo) Create(ctx context.Context, a *model.Aircraft) error {
	return r.db.WithContext(ctx).Omit("Parts", "Stages", "Tests").Create(a).Error
}

func (r *aircraftRepo) GetByCode(ctx context.Context, code string) (*model.Aircraft, error) {
	var a model.Aircraft
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *aircraftRepo) GetWithRelations(ctx context.Context, code string) (*model.Aircraft, error) {
	var a model.Aircraft
	err := withAircraftRelations(r.db.WithContext(ctx)).
		Where("code = ?", code).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *aircraftRepo) ListWithRelations(ctx context.Context) ([]model.Aircraft, error) {
	var list []model.Aircraft
	err := withAircraftRelations(r.db.WithContext(ctx)).
		Order("code ASC").
		Find(&list).Error
	return list, err
}

func (r *aircraftRepo) Update(ctx context.Context, a *model.Aircraft) error {
	return r.db.WithContext(ctx).
		Model(&model.Aircraft{}).
		Where("code = ?", a.Code).
		Updates(map[string]interface{}{
			"model":      a.Model,
			"category":   a.Category,
			"capacity":   a.Capacity,
			"range_km":   a.RangeKm,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *aircraftRepo) Delete(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).
		Where("code = ?", code).
		Delete(&model.Aircraft{}).Error
}

func withAircraftRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Parts", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("deadline ASC, name ASC") }).
		Preload("Stages.Assignments").
		Preload("Tests", func(db *gorm.DB) *gorm.DB { return db.Order("performed_on ASC, type ASC") })
}
