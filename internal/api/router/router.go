package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aerocode/backend/config"
	"aerocode/backend/internal/api/handler"
	"aerocode/backend/internal/api/middleware"
	"aerocode/backend/internal/service"
	"aerocode/backend/pkg/jwt"
	"aerocode/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎；rdb 为 nil 时黑名单与限流降级
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	metrics middleware.MetricRecorder,
	sessions middleware.SessionChecker,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	if metrics != nil {
		r.Use(middleware.Metrics(metrics, logger))
	}

	// ── 健康检查 ──
	r.GET("/health", h.Health.Health)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 登录（无需认证）
		v1.POST("/employees/auth",
			middleware.RateLimit(rdb, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow),
			h.Auth.Login,
		)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.SessionAuth(jwtMgr, rdb, sessions))
		{
			authorized.POST("/employees/logout", h.Auth.Logout)
			authorized.GET("/employees/me", h.Auth.Me)

			// 飞机模块
			aircraft := authorized.Group("/aircraft")
			{
				aircraft.GET("", middleware.Require(service.ActionAircraftView), h.Aircraft.ListAircraft)
				aircraft.GET("/:code", middleware.Require(service.ActionAircraftView), h.Aircraft.GetAircraft)
				aircraft.POST("", middleware.Require(service.ActionAircraftManage), h.Aircraft.CreateAircraft)
				aircraft.PUT("/:code", middleware.Require(service.ActionAircraftManage), h.Aircraft.UpdateAircraft)
				aircraft.DELETE("/:code", middleware.Require(service.ActionAircraftManage), h.Aircraft.DeleteAircraft)
			}

			// 零件模块
			parts := authorized.Group("/parts")
			{
				parts.GET("", middleware.Require(service.ActionPartView), h.Part.ListParts)
				parts.GET("/:id", middleware.Require(service.ActionPartView), h.Part.GetPart)
				parts.POST("", middleware.Require(service.ActionPartManage), h.Part.CreatePart)
				parts.PUT("/:id", middleware.Require(service.ActionPartManage), h.Part.UpdatePart)
				parts.DELETE("/:id", middleware.Require(service.ActionPartManage), h.Part.DeletePart)
				parts.PATCH("/:id/advance-status", middleware.Require(service.ActionPartManage), h.Part.AdvanceStatus)
			}

			// 生产阶段模块
			stages := authorized.Group("/stages")
			{
				stages.GET("", middleware.Require(service.ActionStageView), h.Stage.ListStages)
				stages.GET("/calendar", middleware.Require(service.ActionStageView), h.Stage.Calendar)
				stages.GET("/:id", middleware.Require(service.ActionStageView), h.Stage.GetStage)
				stages.POST("", middleware.Require(service.ActionStageManage), h.Stage.CreateStage)
				stages.PUT("/:id", middleware.Require(service.ActionStageManage), h.Stage.UpdateStage)
				stages.DELETE("/:id", middleware.Require(service.ActionStageManage), h.Stage.DeleteStage)
				stages.PATCH("/:id/start", middleware.Require(service.ActionStageManage), h.Stage.StartStage)
				stages.PATCH("/:id/finish", middleware.Require(service.ActionStageManage), h.Stage.FinishStage)
				stages.POST("/:id/employees", middleware.Require(service.ActionStageManage), h.Stage.AssignEmployee)
				stages.DELETE("/:id/employees/:cpf", middleware.Require(service.ActionStageManage), h.Stage.UnassignEmployee)
			}

			// 员工模块
			employees := authorized.Group("/employees")
			{
				employees.GET("", middleware.Require(service.ActionEmployeeView), h.Employee.ListEmployees)
				employees.GET("/:cpf", middleware.Require(service.ActionEmployeeView), h.Employee.GetEmployee)
				employees.POST("", middleware.Require(service.ActionEmployeeManage), h.Employee.CreateEmployee)
				employees.PUT("/:cpf", middleware.Require(service.ActionEmployeeManage), h.Employee.UpdateEmployee)
				employees.DELETE("/:cpf", middleware.Require(service.ActionEmployeeManage), h.Employee.DeleteEmployee)
			}

			// 质量测试模块
			tests := authorized.Group("/tests")
			{
				tests.GET("", middleware.Require(service.ActionTestView), h.QualityTest.ListTests)
				tests.GET("/:id", middleware.Require(service.ActionTestView), h.QualityTest.GetTest)
				tests.POST("", middleware.Require(service.ActionTestManage), h.QualityTest.CreateTest)
				tests.PUT("/:id", middleware.Require(service.ActionTestManage), h.QualityTest.UpdateTest)
				tests.DELETE("/:id", middleware.Require(service.ActionTestManage), h.QualityTest.DeleteTest)
			}

			// 报告模块
			reports := authorized.Group("/reports")
			{
				reports.GET("", middleware.Require(service.ActionReportView), h.Report.ListReports)
				reports.GET("/:id", middleware.Require(service.ActionReportView), h.Report.GetReport)
				reports.GET("/:id/download", middleware.Require(service.ActionReportView), h.Report.DownloadReport)
				reports.POST("/generate", middleware.Require(service.ActionReportManage), h.Report.GenerateReport)
				reports.DELETE("/:id", middleware.Require(service.ActionReportManage), h.Report.DeleteReport)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/aircraft/:code", middleware.Require(service.ActionReportView), h.Export.ExportAircraft)
			}

			// 状态变更记录
			authorized.GET("/status-logs", middleware.Require(service.ActionReportView), h.StatusLog.ListStatusLogs)

			// 请求指标
			metricsGroup := authorized.Group("/metrics")
			metricsGroup.Use(middleware.Require(service.ActionMetricsView))
			{
				metricsGroup.GET("", h.Metric.ListMetrics)
				metricsGroup.GET("/summary", h.Metric.Summary)
				metricsGroup.DELETE("/cleanup", h.Metric.Cleanup)
			}
		}
	}

	return r
}
