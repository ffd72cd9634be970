package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"aerocode/backend/internal/repository"
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportAircraft 导出飞机工作簿：飞机信息 + 阶段 / 零件 / 测试 四个 Sheet
	ExportAircraft(ctx context.Context, code string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportAircraft 导出飞机数据为 Excel
// ═══════════════════════════════════════════════════════════
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportAircraft(ctx context.Context, code string) (*bytes.Buffer, string, error) {
	snap, err := loadSnapshot(ctx, s.repo, s.logger, code)
	if err != nil {
		return nil, "", err
	}
	a := snap.aircraft

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── 飞机信息 ──
	const infoSheet = "飞机信息"
	idx, _ := f.NewSheet(infoSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	f.SetColWidth(infoSheet, "A", "A", 12)
	f.SetColWidth(infoSheet, "B", "B", 28)

	info := [][]interface{}{
		{"编码", a.Code},
		{"型号", a.Model},
		{"类别", categoryLabel(a.Category)},
		{"载客量", a.Capacity},
		{"航程(km)", a.RangeKm},
	}
	for i, row := range info {
		writeRow(f, infoSheet, i+1, row)
	}
	f.SetCellStyle(infoSheet, "A1", cell("A", len(info)), headerStyle)

	// ── 阶段 ──
	stageRows := make([][]interface{}, 0, len(snap.stages))
	for i := range snap.stages {
		st := &snap.stages[i]
		stageRows = append(stageRows, []interface{}{
			st.Name, stageStatusLabel(st.Status), formatDate(st.Deadline), stageEmployeeNames(st),
		})
	}
	writeTable(f, "阶段", []string{"名称", "状态", "期限", "负责员工"}, stageRows, headerStyle)

	// ── 零件 ──
	partRows := make([][]interface{}, 0, len(snap.parts))
	for _, p := range snap.parts {
		partRows = append(partRows, []interface{}{
			p.Name, originLabel(p.Origin), p.Supplier, partStatusLabel(p.Status),
		})
	}
	writeTable(f, "零件", []string{"名称", "来源", "供应商", "状态"}, partRows, headerStyle)

	// ── 测试 ──
	testRows := make([][]interface{}, 0, len(snap.tests))
	for _, t := range snap.tests {
		performer := t.EmployeeCPF
		if t.Employee != nil {
			performer = t.Employee.Name
		}
		testRows = append(testRows, []interface{}{
			t.Type, t.Description, resultLabel(t.Result), formatDate(t.PerformedOn), performer,
		})
	}
	writeTable(f, "测试", []string{"类型", "描述", "结果", "日期", "执行人"}, testRows, headerStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.String("code", code), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("飞机_%s.xlsx", a.Code)
	return buf, filename, nil
}

// ── 辅助函数 ──

func writeTable(f *excelize.File, sheet string, header []string, rows [][]interface{}, headerStyle int) {
	f.NewSheet(sheet)

	head := make([]interface{}, len(header))
	for i, h := range header {
		head[i] = h
	}
	writeRow(f, sheet, 1, head)
	f.SetCellStyle(sheet, "A1", cell(colName(len(header)-1), 1), headerStyle)
	f.SetColWidth(sheet, "A", colName(len(header)-1), 20)

	if len(rows) == 0 {
		f.SetCellValue(sheet, "A2", noneMarker)
		return
	}
	for i, row := range rows {
		writeRow(f, sheet, i+2, row)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for i, v := range values {
		f.SetCellValue(sheet, cell(colName(i), row), v)
	}
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
