package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohamadacma/capflow-demo/internal/config"
	"github.com/mohamadacma/capflow-demo/internal/logging"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Controllers 路由绑定的控制器集合
type Controllers struct {
	Health  *HealthController
	Request *RequestController
	Report  *ReportController
	Users   *UserController
}

// SetupRoutes 使用默认配置构建路由
func SetupRoutes(db *gorm.DB, controllers *Controllers) *gin.Engine {
	return SetupRoutesWithConfig(config.Default(), nil, db, controllers)
}

// SetupRoutesWithConfig 根据配置构建路由
func SetupRoutesWithConfig(cfg *config.Config, logger *logrus.Logger, db *gorm.DB, controllers *Controllers) *gin.Engine {
	logger = logging.OrDefault(logger)

	router := gin.New()

	// 中间件（顺序: 追踪 ID -> 链路追踪 -> 日志 -> 错误处理 -> 恢复 -> 安全/跨域/限流）
	router.Use(RequestIDMiddleware())
	if cfg.Tracing.Enabled {
		router.Use(TracingMiddleware())
	}
	router.Use(RequestLogMiddleware(logger))
	router.Use(ErrorHandlerMiddleware())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithField("panic", recovered).WithField("request_id", c.GetString("request_id")).Error("panic recovered")
		Error(c, http.StatusInternalServerError, "internal server error", "")
		c.Abort()
	}))
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(&cfg.CORS))
	if cfg.RateLimit.Enabled && cfg.RateLimit.RPS > 0 {
		router.Use(RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	// 健康检查
	health := controllers.Health
	if health == nil {
		health = NewHealthController(db)
	}
	router.GET("/health", health.Check)

	// Prometheus 指标端点
	router.GET("/metrics", MetricsHandler)

	v1 := router.Group("/api/v1")
	{
		if rc := controllers.Request; rc != nil {
			requests := v1.Group("/requests")
			{
				requests.POST("", rc.Create)
				requests.GET("", rc.List)
				// 静态路径必须在 /:id 之前注册
				requests.GET("/pending", rc.ListPending)
				requests.GET("/:id", rc.Get)
				requests.GET("/:id/capas", rc.ListRequestCAPAs)
				requests.POST("/:id/decision", rc.Decide)
			}

			v1.GET("/capas", rc.ListCAPAs)
		}

		if uc := controllers.Users; uc != nil {
			v1.GET("/users", uc.List)
		}

		if rep := controllers.Report; rep != nil {
			reports := v1.Group("/reports")
			{
				reports.GET("/metrics", rep.Metrics)
				reports.GET("/approvals.csv", rep.ExportApprovals)
			}
		}
	}

	// 未匹配的路由返回 JSON 格式的 404
	router.NoRoute(func(c *gin.Context) {
		Error(c, http.StatusNotFound, "route not found", "the requested route does not exist")
	})

	return router
}
