package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-gorm-todo/internal/core/config"
	"go-gin-gorm-todo/internal/core/server"
	mdw "go-gin-gorm-todo/internal/transport/http/middleware"
	"go-gin-gorm-todo/internal/transport/http/view"
)

const maxBody = 1 << 20

// NewEngine 组装中间件、模板与模块路由
func NewEngine(l *zap.Logger, hc config.HTTP, gate *mdw.SessionGate, mods ...Module) *gin.Engine {
	if l == nil {
		l = zap.NewNop()
	}
	r := server.NewRouter(l)

	rps, burst := hc.RateLimitRPS, hc.RateLimitBurst
	if rps <= 0 {
		rps = 50
	}
	if burst <= 0 {
		burst = 100
	}
	conc := hc.MaxConcurrent
	if conc <= 0 {
		conc = 300
	}
	timeout := time.Duration(hc.RequestTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(rate.Limit(rps), burst),
		mdw.ConcurrencyLimit(conc),
		mdw.MaxBodyBytes(maxBody),
		mdw.Timeout(timeout),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)
	r.SetHTMLTemplate(view.Templates())

	// 健康检查 / 指标，不走会话
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", mdw.MetricsHandler())

	site := r.Group("")
	if gate != nil {
		site.Use(gate.Middleware())
	}
	var reg Registry
	reg.Add(mods...)
	reg.MountAll(site)
	return r
}
