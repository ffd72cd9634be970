//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"aerocode/backend/internal/model"
	"aerocode/backend/internal/repository"
	"aerocode/backend/pkg/database"
	pkgerrors "aerocode/backend/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=aerocode password=aerocode_password dbname=aerocode_test sslmode=disable TimeZone=America/Sao_Paulo"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "迁移失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建一架飞机与一名员工并返回清理函数
func setupTestData(t *testing.T) (aircraft *model.Aircraft, employee *model.Employee, cleanup func()) {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().UnixNano()

	aircraft = &model.Aircraft{
		Code:     fmt.Sprintf("IT-%d", suffix),
		Model:    "Embraer E195",
		Category: model.CategoryCommercial,
		Capacity: 124,
		RangeKm:  3900,
	}
	if err := testDB.WithContext(ctx).Create(aircraft).Error; err != nil {
		t.Fatalf("创建飞机失败: %v", err)
	}

	employee = &model.Employee{
		CPF:          fmt.Sprintf("%d", suffix%100000000000),
		Name:         "测试员工",
		Login:        fmt.Sprintf("it%d", suffix),
		PasswordHash: "$2a$10$placeholder",
		Level:        model.LevelEngineer,
	}
	if err := testDB.WithContext(ctx).Create(employee).Error; err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}

	cleanup = func() {
		testDB.Where("code = ?", aircraft.Code).Delete(&model.Aircraft{})
		testDB.Where("cpf = ?", employee.CPF).Delete(&model.Employee{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	aircraft, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx 失败: %v", err)
	}
	txRepo := repo.WithTx(tx)

	part := &model.Part{
		Name:         "Motor Turbo",
		Origin:       model.OriginDomestic,
		Supplier:     "Rolls-Royce",
		Status:       model.PartInProduction,
		AircraftCode: aircraft.Code,
	}
	if err := txRepo.Part.Create(ctx, part); err != nil {
		tx.Rollback()
		t.Fatalf("事务内创建零件失败: %v", err)
	}

	tx.Rollback()

	if _, err := repo.Part.GetByID(ctx, part.PartID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("期望回滚后查不到零件，实际 err=%v", err)
	}
}

func TestTransaction_Commit(t *testing.T) {
	aircraft, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	var stageID string
	err := repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		stage := &model.Stage{
			Name:         "Montagem da Fuselagem",
			Deadline:     time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			Status:       model.StagePending,
			AircraftCode: aircraft.Code,
		}
		if err := txRepo.Stage.Create(ctx, stage); err != nil {
			return err
		}
		stageID = stage.StageID
		return nil
	})
	if err != nil {
		t.Fatalf("Transaction 失败: %v", err)
	}

	found, err := repo.Stage.GetByID(ctx, stageID)
	if err != nil {
		t.Fatalf("提交后查询阶段失败: %v", err)
	}
	if found.Status != model.StagePending {
		t.Errorf("期望 status=pending，实际=%s", found.Status)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Constraints
// ═══════════════════════════════════════════════════════════

func TestPart_UniqueNamePerAircraft(t *testing.T) {
	aircraft, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	newPart := func() *model.Part {
		return &model.Part{
			Name:         "Trem de Pouso",
			Origin:       model.OriginImported,
			Supplier:     "Boeing Parts",
			Status:       model.PartInProduction,
			AircraftCode: aircraft.Code,
		}
	}
	if err := repo.Part.Create(ctx, newPart()); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}
	if err := repo.Part.Create(ctx, newPart()); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("期望 ErrDuplicatedKey，实际: %v", err)
	}
}

func TestPart_UnknownAircraft(t *testing.T) {
	repo := repository.NewRepository(testDB)
	err := repo.Part.Create(context.Background(), &model.Part{
		Name:         "Asa",
		Origin:       model.OriginDomestic,
		Supplier:     "X",
		Status:       model.PartInProduction,
		AircraftCode: "NAO-EXISTE",
	})
	if !errors.Is(err, gorm.ErrForeignKeyViolated) {
		t.Fatalf("期望 ErrForeignKeyViolated，实际: %v", err)
	}
}

func TestAircraftDelete_Cascades(t *testing.T) {
	aircraft, employee, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	stage := &model.Stage{
		Name:         "Pintura",
		Deadline:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:       model.StagePending,
		AircraftCode: aircraft.Code,
	}
	if err := repo.Stage.Create(ctx, stage); err != nil {
		t.Fatalf("创建阶段失败: %v", err)
	}
	if err := repo.StageAssignment.Create(ctx, &model.StageAssignment{StageID: stage.StageID, EmployeeCPF: employee.CPF}); err != nil {
		t.Fatalf("分配失败: %v", err)
	}

	if err := repo.Aircraft.Delete(ctx, aircraft.Code); err != nil {
		t.Fatalf("删除飞机失败: %v", err)
	}
	if _, err := repo.Stage.GetByID(ctx, stage.StageID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("阶段应随飞机级联删除，实际 err=%v", err)
	}
	exists, err := repo.StageAssignment.Exists(ctx, stage.StageID, employee.CPF)
	if err != nil || exists {
		t.Errorf("分配应随阶段级联删除: exists=%v err=%v", exists, err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Conditional status update
// ═══════════════════════════════════════════════════════════

func TestPart_AdvanceStatus(t *testing.T) {
	aircraft, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	part := &model.Part{
		Name:         "Motor",
		Origin:       model.OriginDomestic,
		Supplier:     "Rolls-Royce",
		Status:       model.PartInProduction,
		AircraftCode: aircraft.Code,
	}
	if err := repo.Part.Create(ctx, part); err != nil {
		t.Fatalf("创建零件失败: %v", err)
	}

	updated, err := repo.Part.AdvanceStatus(ctx, part.PartID, model.PartInProduction, model.PartInTransit)
	if err != nil {
		t.Fatalf("AdvanceStatus 失败: %v", err)
	}
	if updated.Status != model.PartInTransit || updated.Name != "Motor" {
		t.Errorf("RETURNING 未回填: %+v", updated)
	}

	// 期望状态已变化，条件更新不应命中
	if _, err := repo.Part.AdvanceStatus(ctx, part.PartID, model.PartInProduction, model.PartInTransit); !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Fatalf("期望 ErrOptimisticLock，实际: %v", err)
	}
}

func TestStage_TransitionStatus(t *testing.T) {
	aircraft, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	stage := &model.Stage{
		Name:         "Instalação de Motores",
		Deadline:     time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:       model.StagePending,
		AircraftCode: aircraft.Code,
	}
	if err := repo.Stage.Create(ctx, stage); err != nil {
		t.Fatalf("创建阶段失败: %v", err)
	}

	if _, err := repo.Stage.TransitionStatus(ctx, stage.StageID, model.StageInProgress, model.StageDone); !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Fatalf("pending 阶段不应直接完成，实际: %v", err)
	}
	got, err := repo.Stage.TransitionStatus(ctx, stage.StageID, model.StagePending, model.StageInProgress)
	if err != nil {
		t.Fatalf("开始阶段失败: %v", err)
	}
	if got.Status != model.StageInProgress {
		t.Errorf("期望 in_progress，实际=%s", got.Status)
	}
}
