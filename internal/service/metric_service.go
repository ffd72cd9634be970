package service

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/model"
	"aerocode/backend/internal/repository"
)

// summaryWindow 汇总只统计最近的记录
const summaryWindow = 1000

// MetricService 请求指标业务接口
type MetricService interface {
	Record(ctx context.Context, m *model.RequestMetric) error
	List(ctx context.Context, req *dto.MetricListRequest) ([]dto.MetricResponse, error)
	Summary(ctx context.Context) (*dto.MetricSummaryResponse, error)
	Cleanup(ctx context.Context, req *dto.MetricCleanupRequest) (*dto.MetricCleanupResponse, error)
}

type metricService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewMetricService 创建 MetricService 实例
func NewMetricService(repo *repository.Repository, logger *zap.Logger) MetricService {
	return &metricService{repo: repo, logger: logger, now: time.Now}
}

func (s *metricService) Record(ctx context.Context, m *model.RequestMetric) error {
	if err := s.repo.Metric.Create(ctx, m); err != nil {
		s.logger.Warn("保存请求指标失败", zap.String("endpoint", m.Endpoint), zap.Error(err))
		return err
	}
	return nil
}

func (s *metricService) List(ctx context.Context, req *dto.MetricListRequest) ([]dto.MetricResponse, error) {
	list, err := s.repo.Metric.ListRecent(ctx, req.GetLimit())
	if err != nil {
		s.logger.Error("查询请求指标失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.MetricResponse, 0, len(list))
	for _, m := range list {
		result = append(result, dto.MetricResponse{
			Endpoint:   m.Endpoint,
			Method:     m.Method,
			StatusCode: m.StatusCode,
			LatencyMs:  m.LatencyMs,
			StoreMs:    m.StoreMs,
			StoreCalls: m.StoreCalls,
			CreatedAt:  formatTime(m.CreatedAt),
		})
	}
	return result, nil
}

func (s *metricService) Summary(ctx context.Context) (*dto.MetricSummaryResponse, error) {
	list, err := s.repo.Metric.ListRecent(ctx, summaryWindow)
	if err != nil {
		s.logger.Error("查询请求指标失败", zap.Error(err))
		return nil, err
	}
	return summarize(list), nil
}

func (s *metricService) Cleanup(ctx context.Context, req *dto.MetricCleanupRequest) (*dto.MetricCleanupResponse, error) {
	before := s.now().AddDate(0, 0, -req.GetDays())
	n, err := s.repo.Metric.DeleteBefore(ctx, before)
	if err != nil {
		s.logger.Error("清理请求指标失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("请求指标已清理", zap.Int64("deleted", n), zap.Time("before", before))
	return &dto.MetricCleanupResponse{Deleted: n}, nil
}

// ── 内部辅助方法 ──

func summarize(list []model.RequestMetric) *dto.MetricSummaryResponse {
	resp := &dto.MetricSummaryResponse{
		Count:     len(list),
		Endpoints: []dto.EndpointSummary{},
	}
	if len(list) == 0 {
		return resp
	}

	type acc struct {
		method, endpoint string
		count            int
		latency, store   float64
	}
	byKey := make(map[string]*acc)

	var latencySum, storeSum float64
	var callSum int
	resp.MinLatencyMs = math.MaxFloat64
	for _, m := range list {
		latencySum += m.LatencyMs
		storeSum += m.StoreMs
		callSum += m.StoreCalls
		resp.MinLatencyMs = math.Min(resp.MinLatencyMs, m.LatencyMs)
		resp.MaxLatencyMs = math.Max(resp.MaxLatencyMs, m.LatencyMs)

		key := m.Method + " " + m.Endpoint
		a, ok := byKey[key]
		if !ok {
			a = &acc{method: m.Method, endpoint: m.Endpoint}
			byKey[key] = a
		}
		a.count++
		a.latency += m.LatencyMs
		a.store += m.StoreMs
	}

	n := float64(len(list))
	resp.AvgLatencyMs = round2(latencySum / n)
	resp.AvgStoreMs = round2(storeSum / n)
	resp.AvgStoreCalls = round2(float64(callSum) / n)

	for _, a := range byKey {
		resp.Endpoints = append(resp.Endpoints, dto.EndpointSummary{
			Endpoint:     a.endpoint,
			Method:       a.method,
			Count:        a.count,
			AvgLatencyMs: round2(a.latency / float64(a.count)),
			AvgStoreMs:   round2(a.store / float64(a.count)),
		})
	}
	// 调用次数多的在前
	sort.Slice(resp.Endpoints, func(i, j int) bool {
		if resp.Endpoints[i].Count != resp.Endpoints[j].Count {
			return resp.Endpoints[i].Count > resp.Endpoints[j].Count
		}
		return resp.Endpoints[i].Endpoint+resp.Endpoints[i].Method < resp.Endpoints[j].Endpoint+resp.Endpoints[j].Method
	})
	return resp
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
