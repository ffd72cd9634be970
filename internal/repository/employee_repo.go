package repository

import (
	"context"

	"gorm.io/gorm"

	"aerocode/backend/internal/model"
)

// EmployeeRepository 员工数据访问接口
type EmployeeRepository interface {
	Create(ctx context.Context, e *model.Employee) error
	GetByCPF(ctx context.Context, cpf string) (*model.Employee, error)
	GetByLogin(ctx context.Context, login string) (*model.Employee, error)
	List(ctx context.Context) ([]model.Employee, error)
	Update(ctx context.Context, e *model.Employee) error
	Delete(ctx context.Context, cpf string) error
}

// employeeRepo EmployeeRepository 的 GORM 实现
type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, e *model.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *employeeRepo) GetByCPF(ctx context.Context, cpf string) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).
		Where("cpf = ?", cpf).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepo) GetByLogin(ctx context.Context, login string) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).
		Where("login = ?", login).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepo) List(ctx context.Context) ([]model.Employee, error) {
	var list []model.Employee
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *employeeRepo) Update(ctx context.Context, e *model.Employee) error {
	return r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("cpf = ?", e.CPF).
		Updates(map[string]interface{}{
			"name":          e.Name,
			"login":         e.Login,
			"password_hash": e.PasswordHash,
			"level":         e.Level,
			"updated_at":    gorm.Expr("NOW()"),
		}).Error
}

func (r *employeeRepo) Delete(ctx context.Context, cpf string) error {
	return r.db.WithContext(ctx).
		Where("cpf = ?", cpf).
		Delete(&model.Employee{}).Error
}
