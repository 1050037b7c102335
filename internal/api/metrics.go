package api

import (
	"github.com/bp4sp4/NMS-System-sub000/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsHandler Prometheus 指标处理器
func MetricsHandler(c *gin.Context) {
	metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
