package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/model"
	"aerocode/backend/internal/repository"
)

// ReportService 交付报告业务接口
//
// 报告是某一时刻的快照：每次 Generate 都新建一条记录，内容生成后不再修改
type ReportService interface {
	Generate(ctx context.Context, req *dto.GenerateReportRequest) (*dto.ReportResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ReportResponse, error)
	// List 按生成时间倒序，aircraftCode 为空时返回全部
	List(ctx context.Context, req *dto.ReportListRequest) ([]dto.ReportResponse, error)
	Delete(ctx context.Context, id string) error
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// Generate 读取飞机全量数据并写入报告，同一事务内完成
// ═══════════════════════════════════════════════════════════

func (s *reportService) Generate(ctx context.Context, req *dto.GenerateReportRequest) (*dto.ReportResponse, error) {
	if blank(req.Client, req.DeliveryDate, req.AircraftCode) {
		return nil, ErrReportIncomplete
	}
	deliveryDate, err := parseDate(req.DeliveryDate)
	if err != nil {
		return nil, err
	}
	code := strings.TrimSpace(req.AircraftCode)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	rollback := func() {
		if tx != nil {
			tx.Rollback()
		}
	}
	defer func() {
		if r := recover(); r != nil {
			rollback()
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	snap, err := loadSnapshot(ctx, txRepo, s.logger, code)
	if err != nil {
		rollback()
		return nil, err
	}
	snap.client = strings.TrimSpace(req.Client)
	snap.deliveryDate = deliveryDate
	snap.generatedAt = s.now()

	report := &model.Report{
		Client:       snap.client,
		DeliveryDate: deliveryDate,
		AircraftCode: snap.aircraft.Code,
		Content:      renderReport(snap),
		GeneratedAt:  snap.generatedAt,
	}
	if err := txRepo.Report.Create(ctx, report); err != nil {
		rollback()
		if err := translateStoreError(err, nil, ErrAircraftNotFound); isDomainError(err) {
			return nil, err
		}
		s.logger.Error("保存报告失败", zap.String("aircraft", code), zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("报告已生成",
		zap.String("id", report.ReportID),
		zap.String("aircraft", report.AircraftCode),
		zap.String("client", report.Client),
	)
	return toReportResponse(report), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *reportService) GetByID(ctx context.Context, id string) (*dto.ReportResponse, error) {
	report, err := s.repo.Report.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		s.logger.Error("查询报告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toReportResponse(report), nil
}

// ────────────────────── List ──────────────────────

func (s *reportService) List(ctx context.Context, req *dto.ReportListRequest) ([]dto.ReportResponse, error) {
	list, err := s.repo.Report.List(ctx, req.AircraftCode)
	if err != nil {
		s.logger.Error("列出报告失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ReportResponse, 0, len(list))
	for i := range list {
		result = append(result, *toReportResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *reportService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Report.Delete(ctx, id); err != nil {
		s.logger.Error("删除报告失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 快照与渲染 ──

type reportSnapshot struct {
	client       string
	deliveryDate time.Time
	generatedAt  time.Time
	aircraft     *model.Aircraft
	stages       []model.Stage
	parts        []model.Part
	tests        []model.QualityTest
}

// loadSnapshot 读取飞机及其阶段（含员工）、零件、测试
func loadSnapshot(ctx context.Context, repo *repository.Repository, logger *zap.Logger, code string) (*reportSnapshot, error) {
	aircraft, err := repo.Aircraft.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAircraftNotFound
		}
		logger.Error("查询飞机失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	stages, err := repo.Stage.ListWithEmployees(ctx, code)
	if err != nil {
		logger.Error("查询阶段失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	parts, err := repo.Part.List(ctx, code)
	if err != nil {
		logger.Error("查询零件失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	tests, err := repo.QualityTest.ListWithEmployee(ctx, code)
	if err != nil {
		logger.Error("查询测试记录失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	// 与存储层排序规则一致
	sort.SliceStable(stages, func(i, j int) bool {
		if !stages[i].Deadline.Equal(stages[j].Deadline) {
			return stages[i].Deadline.Before(stages[j].Deadline)
		}
		return stages[i].Name < stages[j].Name
	})
	sort.SliceStable(parts, func(i, j int) bool { return parts[i].Name < parts[j].Name })
	sort.SliceStable(tests, func(i, j int) bool {
		if !tests[i].PerformedOn.Equal(tests[j].PerformedOn) {
			return tests[i].PerformedOn.Before(tests[j].PerformedOn)
		}
		return tests[i].Type < tests[j].Type
	})

	return &reportSnapshot{aircraft: aircraft, stages: stages, parts: parts, tests: tests}, nil
}

const noneMarker = "无"

// renderReport 按固定顺序输出：抬头、飞机信息、阶段、零件、测试、汇总
func renderReport(snap *reportSnapshot) string {
	var b strings.Builder
	a := snap.aircraft

	b.WriteString("飞机交付报告\n")
	b.WriteString("========================\n\n")
	fmt.Fprintf(&b, "客户: %s\n", snap.client)
	fmt.Fprintf(&b, "交付日期: %s\n", formatDate(snap.deliveryDate))
	fmt.Fprintf(&b, "生成时间: %s\n", snap.generatedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("\n--- 飞机信息 ---\n")
	fmt.Fprintf(&b, "编码: %s\n", a.Code)
	fmt.Fprintf(&b, "型号: %s\n", a.Model)
	fmt.Fprintf(&b, "类别: %s\n", categoryLabel(a.Category))
	fmt.Fprintf(&b, "载客量: %d 人\n", a.Capacity)
	fmt.Fprintf(&b, "航程: %d km\n", a.RangeKm)

	b.WriteString("\n--- 生产阶段 ---\n")
	doneStages := 0
	if len(snap.stages) == 0 {
		b.WriteString("暂无阶段记录。\n")
	}
	for i, st := range snap.stages {
		if st.Status == model.StageDone {
			doneStages++
		}
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, st.Name)
		fmt.Fprintf(&b, "   状态: %s\n", stageStatusLabel(st.Status))
		fmt.Fprintf(&b, "   期限: %s\n", formatDate(st.Deadline))
		fmt.Fprintf(&b, "   负责员工: %s\n", stageEmployeeNames(&st))
	}

	b.WriteString("\n--- 使用零件 ---\n")
	if len(snap.parts) == 0 {
		b.WriteString("暂无零件记录。\n")
	}
	for i, p := range snap.parts {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, p.Name)
		fmt.Fprintf(&b, "   来源: %s\n", originLabel(p.Origin))
		fmt.Fprintf(&b, "   供应商: %s\n", p.Supplier)
		fmt.Fprintf(&b, "   状态: %s\n", partStatusLabel(p.Status))
	}

	b.WriteString("\n--- 测试结果 ---\n")
	approved := 0
	if len(snap.tests) == 0 {
		b.WriteString("暂无测试记录。\n")
	}
	for i, t := range snap.tests {
		if t.Result == model.ResultApproved {
			approved++
		}
		performer := t.EmployeeCPF
		if t.Employee != nil {
			performer = t.Employee.Name
		}
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, t.Type)
		fmt.Fprintf(&b, "   描述: %s\n", t.Description)
		fmt.Fprintf(&b, "   结果: %s\n", resultLabel(t.Result))
		fmt.Fprintf(&b, "   日期: %s\n", formatDate(t.PerformedOn))
		fmt.Fprintf(&b, "   执行人: %s\n", performer)
	}

	b.WriteString("\n--- 汇总 ---\n")
	fmt.Fprintf(&b, "阶段总数: %d\n", len(snap.stages))
	fmt.Fprintf(&b, "已完成阶段: %d\n", doneStages)
	fmt.Fprintf(&b, "零件总数: %d\n", len(snap.parts))
	fmt.Fprintf(&b, "测试总数: %d\n", len(snap.tests))
	fmt.Fprintf(&b, "通过测试: %d\n", approved)

	b.WriteString("\n========================\n")
	b.WriteString("报告结束\n")
	return b.String()
}

// stageEmployeeNames 员工姓名按字母序以 ", " 连接，无分配时返回 "无"
func stageEmployeeNames(st *model.Stage) string {
	names := make([]string, 0, len(st.Assignments))
	for _, a := range st.Assignments {
		if a.Employee != nil {
			names = append(names, a.Employee.Name)
		} else {
			names = append(names, a.EmployeeCPF)
		}
	}
	if len(names) == 0 {
		return noneMarker
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func categoryLabel(v string) string {
	switch v {
	case model.CategoryCommercial:
		return "商用"
	case model.CategoryMilitary:
		return "军用"
	}
	return v
}

func originLabel(v string) string {
	switch v {
	case model.OriginDomestic:
		return "国产"
	case model.OriginImported:
		return "进口"
	}
	return v
}

func partStatusLabel(v string) string {
	switch v {
	case model.PartInProduction:
		return "生产中"
	case model.PartInTransit:
		return "运输中"
	case model.PartReady:
		return "就绪"
	}
	return v
}

func stageStatusLabel(v string) string {
	switch v {
	case model.StagePending:
		return "待开始"
	case model.StageInProgress:
		return "进行中"
	case model.StageDone:
		return "已完成"
	}
	return v
}

func resultLabel(v string) string {
	switch v {
	case model.ResultApproved:
		return "通过"
	case model.ResultRejected:
		return "未通过"
	}
	return v
}

func toReportResponse(r *model.Report) *dto.ReportResponse {
	return &dto.ReportResponse{
		ID:           r.ReportID,
		Client:       r.Client,
		DeliveryDate: formatDate(r.DeliveryDate),
		AircraftCode: r.AircraftCode,
		Content:      r.Content,
		GeneratedAt:  formatTime(r.GeneratedAt),
	}
}
