package service

import (
	"go.uber.org/zap"

	"aerocode/backend/config"
	"aerocode/backend/internal/repository"
	"aerocode/backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Aircraft    AircraftService
	Part        PartService
	Stage       StageService
	Employee    EmployeeService
	Auth        AuthService
	QualityTest QualityTestService
	Report      ReportService
	Export      ExportService
	Calendar    CalendarService
	StatusLog   StatusLogService
	Metric      MetricService
}

// NewService 创建 Service 聚合，blacklist 可为 nil（未启用 Redis）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	return &Service{
		Aircraft:    NewAircraftService(repo, logger),
		Part:        NewPartService(repo, logger),
		Stage:       NewStageService(repo, logger),
		Employee:    NewEmployeeService(repo, logger),
		Auth:        NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		QualityTest: NewQualityTestService(repo, logger),
		Report:      NewReportService(repo, logger),
		Export:      NewExportService(repo, logger),
		Calendar:    NewCalendarService(repo, logger),
		StatusLog:   NewStatusLogService(repo, logger),
		Metric:      NewMetricService(repo, logger),
	}
}
