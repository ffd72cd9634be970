package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func nopLogger() *zap.Logger { return zap.NewNop() }

// ── ExportAircraft 测试 ──

func TestExportService_ExportAircraft(t *testing.T) {
	svc, store := setupTestServices()
	seedReportAircraft(t, svc, store)

	buf, filename, err := svc.Export.ExportAircraft(context.Background(), "AER-001")
	if err != nil {
		t.Fatalf("ExportAircraft 应成功: %v", err)
	}
	if filename != "飞机_AER-001.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	sheets := strings.Join(f.GetSheetList(), ",")
	for _, want := range []string{"飞机信息", "阶段", "零件", "测试"} {
		if !strings.Contains(sheets, want) {
			t.Errorf("缺少工作表 %s，实际 %s", want, sheets)
		}
	}

	rows, err := f.GetRows("阶段")
	if err != nil {
		t.Fatalf("读取阶段表失败: %v", err)
	}
	// 表头 + 2 个阶段
	if len(rows) != 3 {
		t.Fatalf("期望 3 行，实际 %d", len(rows))
	}
	if rows[1][0] != "Montagem" || rows[1][3] != "Engenheiro, Operador" {
		t.Errorf("阶段行内容不符: %v", rows[1])
	}
}

func TestExportService_UnknownAircraft(t *testing.T) {
	svc, _ := setupTestServices()

	_, _, err := svc.Export.ExportAircraft(context.Background(), "NOPE")
	if !errors.Is(err, ErrAircraftNotFound) {
		t.Fatalf("期望 ErrAircraftNotFound，实际: %v", err)
	}
}
