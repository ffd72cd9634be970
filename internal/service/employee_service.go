package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/model"
	"aerocode/backend/internal/repository"
)

// EmployeeService 员工业务接口，任何读取都不返回凭据
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	GetByCPF(ctx context.Context, cpf string) (*dto.EmployeeResponse, error)
	List(ctx context.Context) ([]dto.EmployeeResponse, error)
	Update(ctx context.Context, cpf string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, cpf string, callerCPF string) error
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	cpf := strings.TrimSpace(req.CPF)
	login := strings.TrimSpace(req.Login)
	if blank(cpf, req.Name, login, req.Password) {
		return nil, ErrInvalidArgument
	}
	if !model.ValidLevel(req.Level) {
		return nil, ErrInvalidLevel
	}

	if _, err := s.repo.Employee.GetByCPF(ctx, cpf); err == nil {
		return nil, ErrEmployeeCPFExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询员工失败", zap.String("cpf", cpf), zap.Error(err))
		return nil, err
	}
	if err := s.checkLoginFree(ctx, login, ""); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	employee := &model.Employee{
		CPF:          cpf,
		Name:         strings.TrimSpace(req.Name),
		Login:        login,
		PasswordHash: hash,
		Level:        req.Level,
	}
	if err := s.repo.Employee.Create(ctx, employee); err != nil {
		if err := s.translateDuplicate(ctx, err, employee); isDomainError(err) {
			return nil, err
		}
		s.logger.Error("创建员工失败", zap.String("cpf", cpf), zap.Error(err))
		return nil, err
	}

	s.logger.Info("员工已创建", zap.String("cpf", cpf), zap.Int("level", employee.Level))
	return toEmployeeResponse(employee), nil
}

// ────────────────────── GetByCPF ──────────────────────

func (s *employeeService) GetByCPF(ctx context.Context, cpf string) (*dto.EmployeeResponse, error) {
	employee, err := s.getEmployee(ctx, cpf)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	list, err := s.repo.Employee.List(ctx)
	if err != nil {
		s.logger.Error("列出员工失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EmployeeResponse, 0, len(list))
	for i := range list {
		result = append(result, *toEmployeeResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *employeeService) Update(ctx context.Context, cpf string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := s.getEmployee(ctx, cpf)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if blank(*req.Name) {
			return nil, ErrInvalidArgument
		}
		employee.Name = strings.TrimSpace(*req.Name)
	}
	if req.Login != nil {
		login := strings.TrimSpace(*req.Login)
		if login == "" {
			return nil, ErrInvalidArgument
		}
		if login != employee.Login {
			if err := s.checkLoginFree(ctx, login, cpf); err != nil {
				return nil, err
			}
		}
		employee.Login = login
	}
	if req.Level != nil {
		if !model.ValidLevel(*req.Level) {
			return nil, ErrInvalidLevel
		}
		employee.Level = *req.Level
	}
	if req.Password != nil {
		if blank(*req.Password) {
			return nil, ErrInvalidArgument
		}
		hash, err := hashPassword(*req.Password)
		if err != nil {
			s.logger.Error("密码哈希失败", zap.Error(err))
			return nil, err
		}
		employee.PasswordHash = hash
	}

	if err := s.repo.Employee.Update(ctx, employee); err != nil {
		if err := s.translateDuplicate(ctx, err, employee); isDomainError(err) {
			return nil, err
		}
		s.logger.Error("更新员工失败", zap.String("cpf", cpf), zap.Error(err))
		return nil, err
	}

	return toEmployeeResponse(employee), nil
}

// ────────────────────── Delete ──────────────────────

func (s *employeeService) Delete(ctx context.Context, cpf string, callerCPF string) error {
	if cpf == callerCPF {
		return ErrEmployeeSelfDelete
	}
	if _, err := s.getEmployee(ctx, cpf); err != nil {
		return err
	}

	// quality_tests.employee_cpf 为 RESTRICT：执行过测试的员工不可删除
	if err := s.repo.Employee.Delete(ctx, cpf); err != nil {
		if err := translateStoreError(err, nil, ErrEmployeeHasTests); isDomainError(err) {
			return err
		}
		s.logger.Error("删除员工失败", zap.String("cpf", cpf), zap.Error(err))
		return err
	}

	s.logger.Info("员工已删除", zap.String("cpf", cpf))
	return nil
}

// ── 内部辅助方法 ──

func (s *employeeService) getEmployee(ctx context.Context, cpf string) (*model.Employee, error) {
	employee, err := s.repo.Employee.GetByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("cpf", cpf), zap.Error(err))
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) checkLoginFree(ctx context.Context, login, selfCPF string) error {
	existing, err := s.repo.Employee.GetByLogin(ctx, login)
	if err == nil && existing.CPF != selfCPF {
		return ErrEmployeeLoginExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询登录名失败", zap.String("login", login), zap.Error(err))
		return err
	}
	return nil
}

// translateDuplicate 并发写入撞上唯一约束时，按登录名归属区分冲突字段
func (s *employeeService) translateDuplicate(ctx context.Context, err error, e *model.Employee) error {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	if existing, lookupErr := s.repo.Employee.GetByLogin(ctx, e.Login); lookupErr == nil && existing.CPF != e.CPF {
		return ErrEmployeeLoginExists
	}
	return ErrEmployeeCPFExists
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func toEmployeeResponse(e *model.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		CPF:   e.CPF,
		Name:  e.Name,
		Login: e.Login,
		Level: e.Level,
	}
}
