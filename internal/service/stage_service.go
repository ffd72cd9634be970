package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/model"
	"aerocode/backend/internal/repository"
	pkgerrors "aerocode/backend/pkg/errors"
)

// StageService 生产阶段业务接口
type StageService interface {
	Create(ctx context.Context, req *dto.CreateStageRequest) (*dto.StageResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StageResponse, error)
	List(ctx context.Context, req *dto.StageListRequest) ([]dto.StageResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateStageRequest) (*dto.StageResponse, error)
	Delete(ctx context.Context, id string) error

	// Start pending → in_progress
	Start(ctx context.Context, id string, callerCPF string) (*dto.StageResponse, error)
	// Finish in_progress → done
	Finish(ctx context.Context, id string, callerCPF string) (*dto.StageResponse, error)

	AssignEmployee(ctx context.Context, id string, cpf string) (*dto.StageResponse, error)
	UnassignEmployee(ctx context.Context, id string, cpf string) error
}

type stageService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStageService 创建 StageService 实例
func NewStageService(repo *repository.Repository, logger *zap.Logger) StageService {
	return &stageService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *stageService) Create(ctx context.Context, req *dto.CreateStageRequest) (*dto.StageResponse, error) {
	if blank(req.Name, req.AircraftCode) {
		return nil, ErrInvalidArgument
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		return nil, err
	}

	// 新阶段一律从 pending 开始
	stage := &model.Stage{
		Name:         strings.TrimSpace(req.Name),
		Deadline:     deadline,
		Status:       model.StagePending,
		AircraftCode: strings.TrimSpace(req.AircraftCode),
	}

	if err := s.checkReferences(ctx, stage, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Stage.Create(ctx, stage); err != nil {
		if err := translateStoreError(err, ErrStageNameExists, ErrAircraftNotFound); isDomainError(err) {
			return nil, err
		}
		s.logger.Error("创建阶段失败", zap.String("name", stage.Name), zap.Error(err))
		return nil, err
	}

	return toStageResponse(stage), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *stageService) GetByID(ctx context.Context, id string) (*dto.StageResponse, error) {
	stage, err := s.getStage(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return toStageResponse(stage), nil
}

// ────────────────────── List ──────────────────────

func (s *stageService) List(ctx context.Context, req *dto.StageListRequest) ([]dto.StageResponse, error) {
	stages, err := s.repo.Stage.List(ctx, req.AircraftCode)
	if err != nil {
		s.logger.Error("列出阶段失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.StageResponse, 0, len(stages))
	for i := range stages {
		result = append(result, *toStageResponse(&stages[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *stageService) Update(ctx context.Context, id string, req *dto.UpdateStageRequest) (*dto.StageResponse, error) {
	stage, err := s.getStage(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		stage.Name = strings.TrimSpace(*req.Name)
	}
	if req.Deadline != nil {
		deadline, err := parseDate(*req.Deadline)
		if err != nil {
			return nil, err
		}
		stage.Deadline = deadline
	}
	if req.AircraftCode != nil {
		stage.AircraftCode = strings.TrimSpace(*req.AircraftCode)
	}
	if blank(stage.Name, stage.AircraftCode) {
		return nil, ErrInvalidArgument
	}

	if err := s.checkReferences(ctx, stage, id); err != nil {
		return nil, err
	}

	if err := s.repo.Stage.Update(ctx, stage); err != nil {
		if err := translateStoreError(err, ErrStageNameExists, ErrAircraftNotFound); isDomainError(err) {
			return nil, err
		}
		s.logger.Error("更新阶段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toStageResponse(stage), nil
}

// ────────────────────── Delete ──────────────────────

func (s *stageService) Delete(ctx context.Context, id string) error {
	if _, err := s.getStage(ctx, s.repo, id); err != nil {
		return err
	}

	if err := s.repo.Stage.Delete(ctx, id); err != nil {
		s.logger.Error("删除阶段失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Start / Finish ──────────────────────

func (s *stageService) Start(ctx context.Context, id string, callerCPF string) (*dto.StageResponse, error) {
	return s.transition(ctx, id, model.StagePending, model.StageInProgress, ErrStageNotPending, callerCPF)
}

func (s *stageService) Finish(ctx context.Context, id string, callerCPF string) (*dto.StageResponse, error) {
	return s.transition(ctx, id, model.StageInProgress, model.StageDone, ErrStageNotInProgress, callerCPF)
}

// transition 条件更新 status: from → to，并在同一事务内写入变更记录
func (s *stageService) transition(ctx context.Context, id, from, to string, invalid error, callerCPF string) (*dto.StageResponse, error) {
	var updated *model.Stage

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		var err error
		updated, err = txRepo.Stage.TransitionStatus(ctx, id, from, to)
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			// 未命中：区分不存在与状态不符
			if _, err := s.getStage(ctx, txRepo, id); err != nil {
				return err
			}
			return invalid
		}
		if err != nil {
			return err
		}
		return appendStatusLog(ctx, txRepo, model.EntityStage, id, from, to, callerCPF)
	})
	if err != nil {
		if !isDomainError(err) {
			s.logger.Error("阶段状态迁移失败",
				zap.String("id", id),
				zap.String("from", from),
				zap.String("to", to),
				zap.Error(err),
			)
		}
		return nil, err
	}

	// RETURNING 不带关联，重新读取以填充员工列表
	stage, err := s.getStage(ctx, s.repo, id)
	if err != nil {
		return toStageResponse(updated), nil
	}
	return toStageResponse(stage), nil
}

// ────────────────────── 员工分配 ──────────────────────

func (s *stageService) AssignEmployee(ctx context.Context, id string, cpf string) (*dto.StageResponse, error) {
	if blank(cpf) {
		return nil, ErrInvalidArgument
	}
	if _, err := s.getStage(ctx, s.repo, id); err != nil {
		return nil, err
	}
	if _, err := s.repo.Employee.GetByCPF(ctx, cpf); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("cpf", cpf), zap.Error(err))
		return nil, err
	}

	exists, err := s.repo.StageAssignment.Exists(ctx, id, cpf)
	if err != nil {
		s.logger.Error("查询阶段分配失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyAssigned
	}

	assignment := &model.StageAssignment{StageID: id, EmployeeCPF: cpf}
	if err := s.repo.StageAssignment.Create(ctx, assignment); err != nil {
		if err := translateStoreError(err, ErrAlreadyAssigned, ErrStageNotFound); isDomainError(err) {
			return nil, err
		}
		s.logger.Error("分配员工失败", zap.String("id", id), zap.String("cpf", cpf), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *stageService) UnassignEmployee(ctx context.Context, id string, cpf string) error {
	if _, err := s.getStage(ctx, s.repo, id); err != nil {
		return err
	}

	n, err := s.repo.StageAssignment.Delete(ctx, id, cpf)
	if err != nil {
		s.logger.Error("移除员工分配失败", zap.String("id", id), zap.String("cpf", cpf), zap.Error(err))
		return err
	}
	if n == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *stageService) getStage(ctx context.Context, repo *repository.Repository, id string) (*model.Stage, error) {
	stage, err := repo.Stage.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		s.logger.Error("查询阶段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return stage, nil
}

// checkReferences 飞机存在且 (name, aircraft) 未被其他阶段占用
func (s *stageService) checkReferences(ctx context.Context, stage *model.Stage, selfID string) error {
	if err := requireAircraft(ctx, s.repo, stage.AircraftCode); err != nil {
		if !isDomainError(err) {
			s.logger.Error("查询飞机失败", zap.String("code", stage.AircraftCode), zap.Error(err))
		}
		return err
	}

	existing, err := s.repo.Stage.GetByNameAndAircraft(ctx, stage.Name, stage.AircraftCode)
	if err == nil && existing.StageID != selfID {
		return ErrStageNameExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询阶段失败", zap.String("name", stage.Name), zap.Error(err))
		return err
	}
	return nil
}

func toStageResponse(st *model.Stage) *dto.StageResponse {
	employees := make([]string, 0, len(st.Assignments))
	for _, a := range st.Assignments {
		employees = append(employees, a.EmployeeCPF)
	}
	sort.Strings(employees)

	return &dto.StageResponse{
		ID:           st.StageID,
		Name:         st.Name,
		Deadline:     formatDate(st.Deadline),
		Status:       st.Status,
		AircraftCode: st.AircraftCode,
		Employees:    employees,
	}
}
