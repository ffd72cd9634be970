package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"aerocode/backend/config"
	"aerocode/backend/internal/repository"
	"aerocode/backend/internal/service"
	"aerocode/backend/pkg/database"
	applogger "aerocode/backend/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	reset := flag.Bool("reset", false, "写入前清空并重建表结构")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	defer sqlDB.Close()

	if *reset {
		if err := database.ResetSchema(sqlDB, logger); err != nil {
			logger.Fatal("重置表结构失败", zap.Error(err))
		}
	} else if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := service.NewSeeder(repository.NewRepository(db), logger).Run(ctx); err != nil {
		logger.Fatal("写入演示数据失败", zap.Error(err))
	}
	logger.Info("演示数据写入完成")
}
