package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mohamadacma/capflow-demo/internal/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// TracingMiddleware 追踪中间件,每个请求一个 server span
func TracingMiddleware() gin.HandlerFunc {
	return otelgin.Middleware(tracing.ServiceName)
}
