package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"aerocode/backend/internal/model"
	"aerocode/backend/internal/repository"
)

// Seeder 写入演示数据；已存在的记录跳过，可重复执行
type Seeder struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSeeder 创建 Seeder
func NewSeeder(repo *repository.Repository, logger *zap.Logger) *Seeder {
	return &Seeder{repo: repo, logger: logger}
}

type seedEmployee struct {
	cpf, name, login, password string
	level                      int
}

var seedEmployees = []seedEmployee{
	{"000.000.000-00", "Administrador", "admin", "admin", model.LevelAdmin},
	{"111.111.111-11", "Engenheiro", "engenheiro", "eng123", model.LevelEngineer},
	{"222.222.222-22", "Operador", "operador", "oper123", model.LevelOperator},
}

// Run 在单个事务内写入员工、飞机、零件、阶段、分配与测试
func (s *Seeder) Run(ctx context.Context) error {
	return s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		for _, e := range seedEmployees {
			if err := s.seedEmployee(ctx, txRepo, e); err != nil {
				return err
			}
		}

		aircraft := []model.Aircraft{
			{Code: "AER-001", Model: "Boeing 737-800", Category: model.CategoryCommercial, Capacity: 180, RangeKm: 5500},
			{Code: "AER-002", Model: "Embraer E195", Category: model.CategoryCommercial, Capacity: 124, RangeKm: 3900},
		}
		for i := range aircraft {
			if err := s.seedAircraft(ctx, txRepo, &aircraft[i]); err != nil {
				return err
			}
		}

		parts := []model.Part{
			{Name: "Motor Turbo", Origin: model.OriginDomestic, Supplier: "Rolls-Royce", Status: model.PartInProduction, AircraftCode: "AER-001"},
			{Name: "Trem de Pouso", Origin: model.OriginImported, Supplier: "Boeing Parts", Status: model.PartInTransit, AircraftCode: "AER-001"},
		}
		for i := range parts {
			if err := s.seedPart(ctx, txRepo, &parts[i]); err != nil {
				return err
			}
		}

		stages := []struct {
			stage    model.Stage
			assignee string
		}{
			{model.Stage{Name: "Montagem da Fuselagem", Deadline: date(2025, 12, 31), Status: model.StagePending, AircraftCode: "AER-001"}, "222.222.222-22"},
			{model.Stage{Name: "Instalação de Motores", Deadline: date(2026, 1, 15), Status: model.StageInProgress, AircraftCode: "AER-001"}, "111.111.111-11"},
		}
		for i := range stages {
			if err := s.seedStage(ctx, txRepo, &stages[i].stage, stages[i].assignee); err != nil {
				return err
			}
		}

		existing, err := txRepo.QualityTest.List(ctx, "AER-001")
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			s.logger.Info("测试记录已存在，跳过")
			return nil
		}
		tests := []model.QualityTest{
			{Type: "Elétrico", Description: "Teste de resistência da fuselagem", Result: model.ResultApproved,
				PerformedOn: date(2025, 11, 15), EmployeeCPF: "111.111.111-11", AircraftCode: "AER-001"},
			{Type: "Hidráulico", Description: "Teste de pressurização da cabine", Result: model.ResultApproved,
				PerformedOn: date(2025, 11, 20), EmployeeCPF: "111.111.111-11", AircraftCode: "AER-001"},
		}
		for i := range tests {
			if err := txRepo.QualityTest.Create(ctx, &tests[i]); err != nil {
				return err
			}
		}
		s.logger.Info("测试记录已写入", zap.Int("count", len(tests)))
		return nil
	})
}

// ── 内部辅助方法 ──

func (s *Seeder) seedEmployee(ctx context.Context, repo *repository.Repository, e seedEmployee) error {
	if _, err := repo.Employee.GetByCPF(ctx, e.cpf); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := hashPassword(e.password)
	if err != nil {
		return err
	}
	if err := repo.Employee.Create(ctx, &model.Employee{
		CPF:          e.cpf,
		Name:         e.name,
		Login:        e.login,
		PasswordHash: hash,
		Level:        e.level,
	}); err != nil {
		return err
	}
	s.logger.Info("员工已写入", zap.String("login", e.login))
	return nil
}

func (s *Seeder) seedAircraft(ctx context.Context, repo *repository.Repository, a *model.Aircraft) error {
	if _, err := repo.Aircraft.GetByCode(ctx, a.Code); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := repo.Aircraft.Create(ctx, a); err != nil {
		return err
	}
	s.logger.Info("飞机已写入", zap.String("code", a.Code))
	return nil
}

func (s *Seeder) seedPart(ctx context.Context, repo *repository.Repository, p *model.Part) error {
	if _, err := repo.Part.GetByNameAndAircraft(ctx, p.Name, p.AircraftCode); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return repo.Part.Create(ctx, p)
}

func (s *Seeder) seedStage(ctx context.Context, repo *repository.Repository, st *model.Stage, assignee string) error {
	if _, err := repo.Stage.GetByNameAndAircraft(ctx, st.Name, st.AircraftCode); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := repo.Stage.Create(ctx, st); err != nil {
		return err
	}
	return repo.StageAssignment.Create(ctx, &model.StageAssignment{StageID: st.StageID, EmployeeCPF: assignee})
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
