package service

import (
	"context"

	"go.uber.org/zap"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/model"
	"aerocode/backend/internal/repository"
)

// StatusLogService 状态变更记录查询接口
type StatusLogService interface {
	List(ctx context.Context, req *dto.StatusLogListRequest) ([]dto.StatusLogResponse, int64, error)
}

type statusLogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatusLogService 创建 StatusLogService 实例
func NewStatusLogService(repo *repository.Repository, logger *zap.Logger) StatusLogService {
	return &statusLogService{repo: repo, logger: logger}
}

func (s *statusLogService) List(ctx context.Context, req *dto.StatusLogListRequest) ([]dto.StatusLogResponse, int64, error) {
	logs, total, err := s.repo.StatusLog.List(ctx, req.EntityType, req.EntityID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询状态变更记录失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StatusLogResponse, 0, len(logs))
	for _, l := range logs {
		item := dto.StatusLogResponse{
			ID:         l.LogID,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			FromStatus: l.FromStatus,
			ToStatus:   l.ToStatus,
			CreatedAt:  formatTime(l.CreatedAt),
		}
		if l.ChangedBy != nil {
			item.ChangedBy = *l.ChangedBy
		}
		result = append(result, item)
	}
	return result, total, nil
}

// appendStatusLog 在调用方事务内追加一条状态变更记录
func appendStatusLog(ctx context.Context, repo *repository.Repository, entityType, entityID, from, to, changedBy string) error {
	entry := &model.StatusChangeLog{
		EntityType: entityType,
		EntityID:   entityID,
		FromStatus: from,
		ToStatus:   to,
	}
	if changedBy != "" {
		entry.ChangedBy = &changedBy
	}
	return repo.StatusLog.Create(ctx, entry)
}
