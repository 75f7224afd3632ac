package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-gin-gorm-todo/internal/core/config"
	"go-gin-gorm-todo/internal/core/database"
	"go-gin-gorm-todo/internal/core/logger"
)

// 单独建表：db.automigrate=false 的部署先跑这个
func main() {
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:   cfg.DB.Driver,
		DSN:      cfg.DB.DSN,
		Username: cfg.DB.Username,
		Password: cfg.DB.Password,
		LogLevel: cfg.DB.LogLevel,
		Writer:   logger.ToStdLogger(log.Named("gorm"), zapcore.InfoLevel),
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}
	log.Info("migrate done")
}
