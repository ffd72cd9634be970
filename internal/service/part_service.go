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
	pkgerrors "aerocode/backend/pkg/errors"
)

// PartService 零件业务接口
type PartService interface {
	Create(ctx context.Context, req *dto.CreatePartRequest) (*dto.PartResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PartResponse, error)
	List(ctx context.Context, req *dto.PartListRequest) ([]dto.PartResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdatePartRequest) (*dto.PartResponse, error)
	Delete(ctx context.Context, id string) error
	// AdvanceStatus in_production → in_transit → ready，终态返回 ErrPartFinalStatus
	AdvanceStatus(ctx context.Context, id string, callerCPF string) (*dto.PartResponse, error)
}

type partService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPartService 创建 PartService 实例
func NewPartService(repo *repository.Repository, logger *zap.Logger) PartService {
	return &partService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *partService) Create(ctx context.Context, req *dto.CreatePartRequest) (*dto.PartResponse, error) {
	if blank(req.Name, req.Supplier, req.AircraftCode) {
		return nil, ErrInvalidArgument
	}
	if !validOrigin(req.Origin) {
		return nil, ErrPartInvalidOrigin
	}

	part := &model.Part{
		Name:         strings.TrimSpace(req.Name),
		Origin:       req.Origin,
		Supplier:     strings.TrimSpace(req.Supplier),
		Status:       model.PartInProduction,
		AircraftCode: strings.TrimSpace(req.AircraftCode),
	}

	if err := s.checkReferences(ctx, part, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Part.Create(ctx, part); err != nil {
		if err := translateStoreError(err, ErrPartNameExists, ErrAircraftNotFound); isDomainError(err) {
			return nil, err
		}
		s.logger.Error("创建零件失败", zap.String("name", part.Name), zap.Error(err))
		return nil, err
	}

	return toPartResponse(part), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *partService) GetByID(ctx context.Context, id string) (*dto.PartResponse, error) {
	part, err := s.getPart(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// ────────────────────── List ──────────────────────

func (s *partService) List(ctx context.Context, req *dto.PartListRequest) ([]dto.PartResponse, error) {
	parts, err := s.repo.Part.List(ctx, req.AircraftCode)
	if err != nil {
		s.logger.Error("列出零件失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PartResponse, 0, len(parts))
	for i := range parts {
		result = append(result, *toPartResponse(&parts[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *partService) Update(ctx context.Context, id string, req *dto.UpdatePartRequest) (*dto.PartResponse, error) {
	part, err := s.getPart(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		part.Name = strings.TrimSpace(*req.Name)
	}
	if req.Origin != nil {
		if !validOrigin(*req.Origin) {
			return nil, ErrPartInvalidOrigin
		}
		part.Origin = *req.Origin
	}
	if req.Supplier != nil {
		part.Supplier = strings.TrimSpace(*req.Supplier)
	}
	if req.AircraftCode != nil {
		part.AircraftCode = strings.TrimSpace(*req.AircraftCode)
	}
	if blank(part.Name, part.Supplier, part.AircraftCode) {
		return nil, ErrInvalidArgument
	}

	if err := s.checkReferences(ctx, part, id); err != nil {
		return nil, err
	}

	if err := s.repo.Part.Update(ctx, part); err != nil {
		if err := translateStoreError(err, ErrPartNameExists, ErrAircraftNotFound); isDomainError(err) {
			return nil, err
		}
		s.logger.Error("更新零件失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toPartResponse(part), nil
}

// ────────────────────── Delete ──────────────────────

func (s *partService) Delete(ctx context.Context, id string) error {
	if _, err := s.getPart(ctx, s.repo, id); err != nil {
		return err
	}

	if err := s.repo.Part.Delete(ctx, id); err != nil {
		s.logger.Error("删除零件失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── AdvanceStatus ──────────────────────

func (s *partService) AdvanceStatus(ctx context.Context, id string, callerCPF string) (*dto.PartResponse, error) {
	var updated *model.Part

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		current, err := s.getPart(ctx, txRepo, id)
		if err != nil {
			return err
		}

		next, ok := model.NextPartStatus(current.Status)
		if !ok {
			return ErrPartFinalStatus
		}

		// 条件更新：status 仍为读取时的值才生效
		updated, err = txRepo.Part.AdvanceStatus(ctx, id, current.Status, next)
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			if _, err := s.getPart(ctx, txRepo, id); err != nil {
				return err
			}
			return ErrPartStatusConflict
		}
		if err != nil {
			s.logger.Error("推进零件状态失败", zap.String("id", id), zap.Error(err))
			return err
		}

		return appendStatusLog(ctx, txRepo, model.EntityPart, id, current.Status, next, callerCPF)
	})
	if err != nil {
		if !isDomainError(err) {
			s.logger.Error("零件状态事务失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("零件状态已推进",
		zap.String("id", id),
		zap.String("status", updated.Status),
		zap.String("by", callerCPF),
	)
	return toPartResponse(updated), nil
}

// ── 内部辅助方法 ──

func (s *partService) getPart(ctx context.Context, repo *repository.Repository, id string) (*model.Part, error) {
	part, err := repo.Part.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		s.logger.Error("查询零件失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return part, nil
}

// checkReferences 飞机存在且 (name, aircraft) 未被其他零件占用
func (s *partService) checkReferences(ctx context.Context, part *model.Part, selfID string) error {
	if err := requireAircraft(ctx, s.repo, part.AircraftCode); err != nil {
		if !isDomainError(err) {
			s.logger.Error("查询飞机失败", zap.String("code", part.AircraftCode), zap.Error(err))
		}
		return err
	}

	existing, err := s.repo.Part.GetByNameAndAircraft(ctx, part.Name, part.AircraftCode)
	if err == nil && existing.PartID != selfID {
		return ErrPartNameExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询零件失败", zap.String("name", part.Name), zap.Error(err))
		return err
	}
	return nil
}

func validOrigin(origin string) bool {
	return origin == model.OriginDomestic || origin == model.OriginImported
}

func toPartResponse(p *model.Part) *dto.PartResponse {
	return &dto.PartResponse{
		ID:           p.PartID,
		Name:         p.Name,
		Origin:       p.Origin,
		Supplier:     p.Supplier,
		Status:       p.Status,
		AircraftCode: p.AircraftCode,
	}
}
