package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"go-gin-gorm-todo/internal/core/auth"
	"go-gin-gorm-todo/internal/core/cache"
	"go-gin-gorm-todo/internal/core/config"
	"go-gin-gorm-todo/internal/core/database"
	"go-gin-gorm-todo/internal/core/logger"
	"go-gin-gorm-todo/internal/core/server"
	"go-gin-gorm-todo/internal/domain"
	"go-gin-gorm-todo/internal/feature/staging"
	"go-gin-gorm-todo/internal/repo"
	"go-gin-gorm-todo/internal/service"
	"go-gin-gorm-todo/internal/transport/http/handler"
	mdw "go-gin-gorm-todo/internal/transport/http/middleware"
	"go-gin-gorm-todo/internal/transport/http/router"
	"go-gin-gorm-todo/pkg/utils"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log, zapcore.ErrorLevel)

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	users := repo.NewUserRepo(db)
	var items domain.ItemRepository = repo.NewItemRepo(db)
	if cfg.Redis.Addr != "" {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, time.Duration(cfg.Redis.TTLSec)*time.Second)
		defer c.Close()
		pctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := c.Ping(pctx); err != nil {
			// 缓存不可用不影响启动，读写直接走数据库
			log.Warn("redis unavailable, cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			items = repo.NewCachedItemRepo(items, c, log)
			log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
		}
		cancel()
	}

	authSvc := service.NewAuthService(users, utils.Bcrypt{}, log)
	todoSvc := service.NewTodoService(staging.New(), items, service.TodoOptions{
		StrictOwnership: cfg.Todo.StrictOwnership,
	}, log)

	jwter := &auth.JWTer{
		Secret: []byte(cfg.Session.Secret),
		Issuer: cfg.Session.Issuer,
		TTL:    time.Duration(cfg.Session.TTLMin) * time.Minute,
	}
	gate := mdw.NewSessionGate(jwter, authSvc, cfg.Session.CookieName, cfg.Session.Secure, log)

	r := router.NewEngine(log, cfg.App.HTTP, gate,
		handler.NewTodoHandler(todoSvc, authSvc, gate, log),
		handler.NewAPIHandler(todoSvc),
	)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
		logger.ToStdLogger(log, zapcore.ErrorLevel),
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("todo starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.Bool("strict_ownership", cfg.Todo.StrictOwnership),
	)

	// 优雅关闭
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := server.StartHTTP(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("todo server stopped with error", zap.Error(err))
		return
	}
	log.Info("todo stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Writer:             logger.ToStdLogger(l.Named("gorm"), zapcore.InfoLevel),
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
