package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aerocode/backend/internal/model"
	pkgerrors "aerocode/backend/pkg/errors"
)

// PartRepository 零件数据访问接口
type PartRepository interface {
	Create(ctx context.Context, p *model.Part) error
	GetByID(ctx context.Context, id string) (*model.Part, error)
	GetByNameAndAircraft(ctx context.Context, name, aircraftCode string) (*model.Part, error)
	List(ctx context.Context, aircraftCode string) ([]model.Part, error)
	Update(ctx context.Context, p *model.Part) error
	Delete(ctx context.Context, id string) error
	// AdvanceStatus 条件更新 status: from → to，未命中返回 ErrOptimisticLock
	AdvanceStatus(ctx context.Context, id, from, to string) (*model.Part, error)
}

type partRepo struct {
	db *gorm.DB
}

// NewPartRepo 创建 PartRepository 实例
func NewPartRepo(db *gorm.DB) PartRepository {
	return &partRepo{db: db}
}

func (r *partRepo) Create(ctx context.Context, p *model.Part) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *partRepo) GetByID(ctx context.Context, id string) (*model.Part, error) {
	var p model.Part
	err := r.db.WithContext(ctx).
		Where("part_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *partRepo) GetByNameAndAircraft(ctx context.Context, name, aircraftCode string) (*model.Part, error) {
	var p model.Part
	err := r.db.WithContext(ctx).
		Where("name = ? AND aircraft_code = ?", name, aircraftCode).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *partRepo) List(ctx context.Context, aircraftCode string) ([]model.Part, error) {
	var parts []model.Part
	db := r.db.WithContext(ctx)
	if aircraftCode != "" {
		db = db.Where("aircraft_code = ?", aircraftCode)
	}
	err := db.Order("aircraft_code ASC, name ASC").Find(&parts).Error
	return parts, err
}

// Update 仅更新描述字段，状态不在此处修改
func (r *partRepo) Update(ctx context.Context, p *model.Part) error {
	return r.db.WithContext(ctx).
		Model(&model.Part{}).
		Where("part_id = ?", p.PartID).
		Updates(map[string]interface{}{
			"name":          p.Name,
			"origin":        p.Origin,
			"supplier":      p.Supplier,
			"aircraft_code": p.AircraftCode,
			"updated_at":    gorm.Expr("NOW()"),
		}).Error
}

func (r *partRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("part_id = ?", id).
		Delete(&model.Part{}).Error
}

func (r *partRepo) AdvanceStatus(ctx context.Context, id, from, to string) (*model.Part, error) {
	var p model.Part
	result := r.db.WithContext(ctx).
		Model(&p).
		Clauses(clause.Returning{}).
		Where("part_id = ? AND status = ?", id, from).
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
	return &p, nil
}
