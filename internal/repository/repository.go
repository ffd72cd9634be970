package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Aircraft        AircraftRepository
	Part            PartRepository
	Stage           StageRepository
	StageAssignment StageAssignmentRepository
	Employee        EmployeeRepository
	QualityTest     QualityTestRepository
	Report          ReportRepository
	StatusLog       StatusLogRepository
	Metric          MetricRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:              db,
		Aircraft:        NewAircraftRepo(db),
		Part:            NewPartRepo(db),
		Stage:           NewStageRepo(db),
		StageAssignment: NewStageAssignmentRepo(db),
		Employee:        NewEmployeeRepo(db),
		QualityTest:     NewQualityTestRepo(db),
		Report:          NewReportRepo(db),
		StatusLog:       NewStatusLogRepo(db),
		Metric:          NewMetricRepo(db),
	}
}

// BeginTx 开启事务
// 未持有数据库连接时（单元测试注入 mock）返回 nil，调用方需判空
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx 返回绑定到事务连接的 Repository；tx 为 nil 时返回自身
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Transaction 在单个事务内执行 fn，fn 返回错误时回滚
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// Ping 检查数据库连通性
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
