package handler

import "aerocode/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	Aircraft    *AircraftHandler
	Part        *PartHandler
	Stage       *StageHandler
	Employee    *EmployeeHandler
	QualityTest *QualityTestHandler
	Report      *ReportHandler
	Export      *ExportHandler
	StatusLog   *StatusLogHandler
	Metric      *MetricHandler
	Health      *HealthHandler
}

// NewHandler 创建 Handler 聚合；cache 为 nil 表示未启用 Redis
func NewHandler(svc *service.Service, db Pinger, cache Pinger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Aircraft:    NewAircraftHandler(svc.Aircraft),
		Part:        NewPartHandler(svc.Part),
		Stage:       NewStageHandler(svc.Stage, svc.Calendar),
		Employee:    NewEmployeeHandler(svc.Employee),
		QualityTest: NewQualityTestHandler(svc.QualityTest),
		Report:      NewReportHandler(svc.Report),
		Export:      NewExportHandler(svc.Export),
		StatusLog:   NewStatusLogHandler(svc.StatusLog),
		Metric:      NewMetricHandler(svc.Metric),
		Health:      NewHealthHandler(db, cache),
	}
}
