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

// AircraftService 飞机业务接口
type AircraftService interface {
	Create(ctx context.Context, req *dto.CreateAircraftRequest) (*dto.AircraftResponse, error)
	GetByCode(ctx context.Context, code string) (*dto.AircraftResponse, error)
	List(ctx context.Context) ([]dto.AircraftResponse, error)
	Update(ctx context.Context, code string, req *dto.UpdateAircraftRequest) (*dto.AircraftResponse, error)
	// Delete 级联删除零件、阶段、测试与报告
	Delete(ctx context.Context, code string) error
}

type aircraftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAircraftService 创建 AircraftService 实例
func NewAircraftService(repo *repository.Repository, logger *zap.Logger) AircraftService {
	return &aircraftService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *aircraftService) Create(ctx context.Context, req *dto.CreateAircraftRequest) (*dto.AircraftResponse, error) {
	code := strings.TrimSpace(req.Code)
	if blank(code, req.Model) {
		return nil, ErrInvalidArgument
	}
	if !validAircraft(req.Category, req.Capacity, req.RangeKm) {
		return nil, ErrAircraftInvalidField
	}

	// 编码唯一：先查询给出明确错误，数据库主键兜底
	if _, err := s.repo.Aircraft.GetByCode(ctx, code); err == nil {
		return nil, ErrAircraftCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询飞机失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	aircraft := &model.Aircraft{
		Code:     code,
		Model:    strings.TrimSpace(req.Model),
		Category: req.Category,
		Capacity: req.Capacity,
		RangeKm:  req.RangeKm,
	}
	if err := s.repo.Aircraft.Create(ctx, aircraft); err != nil {
		if err := translateStoreError(err, ErrAircraftCodeExists, nil); isDomainError(err) {
			return nil, err
		}
		s.logger.Error("创建飞机失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	s.logger.Info("飞机已创建", zap.String("code", code))
	return toAircraftResponse(aircraft), nil
}

// ────────────────────── GetByCode ──────────────────────

func (s *aircraftService) GetByCode(ctx context.Context, code string) (*dto.AircraftResponse, error) {
	aircraft, err := s.repo.Aircraft.GetWithRelations(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAircraftNotFound
		}
		s.logger.Error("查询飞机失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	return toAircraftResponse(aircraft), nil
}

// ────────────────────── List ──────────────────────

func (s *aircraftService) List(ctx context.Context) ([]dto.AircraftResponse, error) {
	list, err := s.repo.Aircraft.ListWithRelations(ctx)
	if err != nil {
		s.logger.Error("列出飞机失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AircraftResponse, 0, len(list))
	for i := range list {
		result = append(result, *toAircraftResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *aircraftService) Update(ctx context.Context, code string, req *dto.UpdateAircraftRequest) (*dto.AircraftResponse, error) {
	aircraft, err := s.repo.Aircraft.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAircraftNotFound
		}
		s.logger.Error("查询飞机失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	if req.Model != nil {
		if blank(*req.Model) {
			return nil, ErrInvalidArgument
		}
		aircraft.Model = strings.TrimSpace(*req.Model)
	}
	if req.Category != nil {
		aircraft.Category = *req.Category
	}
	if req.Capacity != nil {
		aircraft.Capacity = *req.Capacity
	}
	if req.RangeKm != nil {
		aircraft.RangeKm = *req.RangeKm
	}
	if !validAircraft(aircraft.Category, aircraft.Capacity, aircraft.RangeKm) {
		return nil, ErrAircraftInvalidField
	}

	if err := s.repo.Aircraft.Update(ctx, aircraft); err != nil {
		s.logger.Error("更新飞机失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	return s.GetByCode(ctx, code)
}

// ────────────────────── Delete ──────────────────────

func (s *aircraftService) Delete(ctx context.Context, code string) error {
	if _, err := s.repo.Aircraft.GetByCode(ctx, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAircraftNotFound
		}
		s.logger.Error("查询飞机失败", zap.String("code", code), zap.Error(err))
		return err
	}

	if err := s.repo.Aircraft.Delete(ctx, code); err != nil {
		s.logger.Error("删除飞机失败", zap.String("code", code), zap.Error(err))
		return err
	}

	s.logger.Info("飞机已删除", zap.String("code", code))
	return nil
}

// ── 内部辅助方法 ──

func validAircraft(category string, capacity, rangeKm int) bool {
	if category != model.CategoryCommercial && category != model.CategoryMilitary {
		return false
	}
	return capacity > 0 && rangeKm > 0
}

// requireAircraft 引用校验：飞机必须存在
func requireAircraft(ctx context.Context, repo *repository.Repository, code string) error {
	if _, err := repo.Aircraft.GetByCode(ctx, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAircraftNotFound
		}
		return err
	}
	return nil
}

func toAircraftResponse(a *model.Aircraft) *dto.AircraftResponse {
	resp := &dto.AircraftResponse{
		Code:      a.Code,
		Model:     a.Model,
		Category:  a.Category,
		Capacity:  a.Capacity,
		RangeKm:   a.RangeKm,
		Parts:     make([]dto.PartResponse, 0, len(a.Parts)),
		Stages:    make([]dto.StageResponse, 0, len(a.Stages)),
		Tests:     make([]dto.QualityTestResponse, 0, len(a.Tests)),
		CreatedAt: formatTime(a.CreatedAt),
		UpdatedAt: formatTime(a.UpdatedAt),
	}
	for i := range a.Parts {
		resp.Parts = append(resp.Parts, *toPartResponse(&a.Parts[i]))
	}
	for i := range a.Stages {
		resp.Stages = append(resp.Stages, *toStageResponse(&a.Stages[i]))
	}
	for i := range a.Tests {
		resp.Tests = append(resp.Tests, *toQualityTestResponse(&a.Tests[i]))
	}
	return resp
}
