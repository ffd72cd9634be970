package repository

import (
	"context"

	"gorm.io/gorm"

	"aerocode/backend/internal/model"
)

// QualityTestRepository 质量测试数据访问接口
type QualityTestRepository interface {
	Create(ctx context.Context, t *model.QualityTest) error
	GetByID(ctx context.Context, id string) (*model.QualityTest, error)
	List(ctx context.Context, aircraftCode string) ([]model.QualityTest, error)
	// ListWithEmployee 加载执行人，供报告使用
	ListWithEmployee(ctx context.Context, aircraftCode string) ([]model.QualityTest, error)
	Update(ctx context.Context, t *model.QualityTest) error
	Delete(ctx context.Context, id string) error
}

type qualityTestRepo struct {
	db *gorm.DB
}

// NewQualityTestRepo 创建 QualityTestRepository 实例
func NewQualityTestRepo(db *gorm.DB) QualityTestRepository {
	return &qualityTestRepo{db: db}
}

func (r *qualityTestRepo) Create(ctx context.Context, t *model.QualityTest) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(t).Error
}

func (r *qualityTestRepo) GetByID(ctx context.Context, id string) (*model.QualityTest, error) {
	var t model.QualityTest
	err := r.db.WithContext(ctx).
		Where("test_id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *qualityTestRepo) List(ctx context.Context, aircraftCode string) ([]model.QualityTest, error) {
	var list []model.QualityTest
	db := r.db.WithContext(ctx)
	if aircraftCode != "" {
		db = db.Where("aircraft_code = ?", aircraftCode)
	}
	err := db.Order("performed_on ASC, type ASC").Find(&list).Error
	return list, err
}

func (r *qualityTestRepo) ListWithEmployee(ctx context.Context, aircraftCode string) ([]model.QualityTest, error) {
	var list []model.QualityTest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("aircraft_code = ?", aircraftCode).
		Order("performed_on ASC, type ASC").
		Find(&list).Error
	return list, err
}

func (r *qualityTestRepo) Update(ctx context.Context, t *model.QualityTest) error {
	return r.db.WithContext(ctx).
		Model(&model.QualityTest{}).
		Where("test_id = ?", t.TestID).
		Updates(map[string]interface{}{
			"type":          t.Type,
			"description":   t.Description,
			"result":        t.Result,
			"performed_on":  t.PerformedOn,
			"employee_cpf":  t.EmployeeCPF,
			"aircraft_code": t.AircraftCode,
			"updated_at":    gorm.Expr("NOW()"),
		}).Error
}

func (r *qualityTestRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("test_id = ?", id).
		Delete(&model.QualityTest{}).Error
}
