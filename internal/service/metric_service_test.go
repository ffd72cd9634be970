package service

import (
	"context"
	"testing"
	"time"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/model"
)

func TestSummarize_Empty(t *testing.T) {
	resp := summarize(nil)
	if resp.Count != 0 || resp.MinLatencyMs != 0 {
		t.Errorf("空列表汇总应为零值: %+v", resp)
	}
	if resp.Endpoints == nil {
		t.Error("Endpoints 应为空切片而非 nil")
	}
}

func TestSummarize_Aggregates(t *testing.T) {
	list := []model.RequestMetric{
		{Endpoint: "/api/v1/aircraft", Method: "GET", LatencyMs: 10, StoreMs: 4, StoreCalls: 2},
		{Endpoint: "/api/v1/aircraft", Method: "GET", LatencyMs: 20, StoreMs: 6, StoreCalls: 4},
		{Endpoint: "/api/v1/reports", Method: "POST", LatencyMs: 30, StoreMs: 5, StoreCalls: 6},
	}

	resp := summarize(list)
	if resp.Count != 3 {
		t.Fatalf("期望 Count=3，实际 %d", resp.Count)
	}
	if resp.AvgLatencyMs != 20 {
		t.Errorf("期望平均延迟 20，实际 %v", resp.AvgLatencyMs)
	}
	if resp.MinLatencyMs != 10 || resp.MaxLatencyMs != 30 {
		t.Errorf("最小/最大延迟不符: %v %v", resp.MinLatencyMs, resp.MaxLatencyMs)
	}
	if resp.AvgStoreMs != 5 || resp.AvgStoreCalls != 4 {
		t.Errorf("存储耗时或调用次数不符: %v %v", resp.AvgStoreMs, resp.AvgStoreCalls)
	}
	if len(resp.Endpoints) != 2 {
		t.Fatalf("期望 2 个接口，实际 %d", len(resp.Endpoints))
	}
	if resp.Endpoints[0].Endpoint != "/api/v1/aircraft" || resp.Endpoints[0].Count != 2 {
		t.Errorf("调用次数多的接口应排在前面: %+v", resp.Endpoints[0])
	}
	if resp.Endpoints[0].AvgLatencyMs != 15 {
		t.Errorf("期望接口平均延迟 15，实际 %v", resp.Endpoints[0].AvgLatencyMs)
	}
}

func TestMetricService_Cleanup(t *testing.T) {
	repo, store := newMockRepository()
	now := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)
	svc := &metricService{repo: repo, logger: nopLogger(), now: func() time.Time { return now }}
	ctx := context.Background()

	for _, age := range []int{1, 3, 10, 30} {
		if err := svc.Record(ctx, &model.RequestMetric{
			Endpoint: "/health", Method: "GET", CreatedAt: now.AddDate(0, 0, -age),
		}); err != nil {
			t.Fatalf("Record 应成功: %v", err)
		}
	}

	resp, err := svc.Cleanup(ctx, &dto.MetricCleanupRequest{})
	if err != nil {
		t.Fatalf("Cleanup 应成功: %v", err)
	}
	if resp.Deleted != 2 {
		t.Errorf("默认保留 7 天，期望删除 2 条，实际 %d", resp.Deleted)
	}
	if len(store.metrics) != 2 {
		t.Errorf("期望剩余 2 条，实际 %d", len(store.metrics))
	}

	list, err := svc.List(ctx, &dto.MetricListRequest{Limit: 1})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("期望按 limit 返回 1 条，实际 %d", len(list))
	}
}
