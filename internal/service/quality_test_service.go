package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/model"
	"aerocode/backend/internal/repository"
)

// QualityTestService 质量测试业务接口
type QualityTestService interface {
	Create(ctx context.Context, req *dto.CreateQualityTestRequest) (*dto.QualityTestResponse, error)
	GetByID(ctx context.Context, id string) (*dto.QualityTestResponse, error)
	List(ctx context.Context, req *dto.QualityTestListRequest) ([]dto.QualityTestResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateQualityTestRequest) (*dto.QualityTestResponse, error)
	Delete(ctx context.Context, id string) error
}

type qualityTestService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewQualityTestService 创建 QualityTestService 实例
func NewQualityTestService(repo *repository.Repository, logger *zap.Logger) QualityTestService {
	return &qualityTestService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *qualityTestService) Create(ctx context.Context, req *dto.CreateQualityTestRequest) (*dto.QualityTestResponse, error) {
	if blank(req.Type, req.Description, req.EmployeeCPF, req.AircraftCode) {
		return nil, ErrInvalidArgument
	}
	if !validResult(req.Result) {
		return nil, ErrTestInvalidResult
	}
	performedOn, err := parseDate(req.PerformedOn)
	if err != nil {
		return nil, err
	}

	test := &model.QualityTest{
		Type:         strings.TrimSpace(req.Type),
		Description:  strings.TrimSpace(req.Description),
		Result:       req.Result,
		PerformedOn:  performedOn,
		EmployeeCPF:  strings.TrimSpace(req.EmployeeCPF),
		AircraftCode: strings.TrimSpace(req.AircraftCode),
	}

	if err := s.checkReferences(ctx, test); err != nil {
		return nil, err
	}

	if err := s.repo.QualityTest.Create(ctx, test); err != nil {
		if err := translateStoreError(err, nil, ErrAircraftNotFound); isDomainError(err) {
			return nil, err
		}
		s.logger.Error("创建测试记录失败", zap.String("aircraft", test.AircraftCode), zap.Error(err))
		return nil, err
	}

	return toQualityTestResponse(test), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *qualityTestService) GetByID(ctx context.Context, id string) (*dto.QualityTestResponse, error) {
	test, err := s.getTest(ctx, id)
	if err != nil {
		return nil, err
	}
	return toQualityTestResponse(test), nil
}

// ────────────────────── List ──────────────────────

func (s *qualityTestService) List(ctx context.Context, req *dto.QualityTestListRequest) ([]dto.QualityTestResponse, error) {
	list, err := s.repo.QualityTest.List(ctx, req.AircraftCode)
	if err != nil {
		s.logger.Error("列出测试记录失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.QualityTestResponse, 0, len(list))
	for i := range list {
		result = append(result, *toQualityTestResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *qualityTestService) Update(ctx context.Context, id string, req *dto.UpdateQualityTestRequest) (*dto.QualityTestResponse, error) {
	test, err := s.getTest(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		test.Type = strings.TrimSpace(*req.Type)
	}
	if req.Description != nil {
		test.Description = strings.TrimSpace(*req.Description)
	}
	if req.Result != nil {
		if !validResult(*req.Result) {
			return nil, ErrTestInvalidResult
		}
		test.Result = *req.Result
	}
	if req.PerformedOn != nil {
		performedOn, err := parseDate(*req.PerformedOn)
		if err != nil {
			return nil, err
		}
		test.PerformedOn = performedOn
	}
	if req.EmployeeCPF != nil {
		test.EmployeeCPF = strings.TrimSpace(*req.EmployeeCPF)
	}
	if req.AircraftCode != nil {
		test.AircraftCode = strings.TrimSpace(*req.AircraftCode)
	}
	if blank(test.Type, test.Description, test.EmployeeCPF, test.AircraftCode) {
		return nil, ErrInvalidArgument
	}

	if err := s.checkReferences(ctx, test); err != nil {
		return nil, err
	}

	if err := s.repo.QualityTest.Update(ctx, test); err != nil {
		if err := translateStoreError(err, nil, ErrAircraftNotFound); isDomainError(err) {
			return nil, err
		}
		s.logger.Error("更新测试记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toQualityTestResponse(test), nil
}

// ────────────────────── Delete ──────────────────────

func (s *qualityTestService) Delete(ctx context.Context, id string) error {
	if _, err := s.getTest(ctx, id); err != nil {
		return err
	}

	if err := s.repo.QualityTest.Delete(ctx, id); err != nil {
		s.logger.Error("删除测试记录失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *qualityTestService) getTest(ctx context.Context, id string) (*model.QualityTest, error) {
	test, err := s.repo.QualityTest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		s.logger.Error("查询测试记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return test, nil
}

// checkReferences 飞机与执行员工必须存在
func (s *qualityTestService) checkReferences(ctx context.Context, test *model.QualityTest) error {
	if err := requireAircraft(ctx, s.repo, test.AircraftCode); err != nil {
		if !isDomainError(err) {
			s.logger.Error("查询飞机失败", zap.String("code", test.AircraftCode), zap.Error(err))
		}
		return err
	}
	if _, err := s.repo.Employee.GetByCPF(ctx, test.EmployeeCPF); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("cpf", test.EmployeeCPF), zap.Error(err))
		return err
	}
	return nil
}

func validResult(result string) bool {
	return result == model.ResultApproved || result == model.ResultRejected
}

func toQualityTestResponse(t *model.QualityTest) *dto.QualityTestResponse {
	return &dto.QualityTestResponse{
		ID:           t.TestID,
		Type:         t.Type,
		Description:  t.Description,
		Result:       t.Result,
		PerformedOn:  formatDate(t.PerformedOn),
		EmployeeCPF:  t.EmployeeCPF,
		AircraftCode: t.AircraftCode,
	}
}
