package api

import (
	"github.com/gin-gonic/gin"

	"github.com/MorningZephyr/zhen-bot/pkg/ratelimiter"
)

// SetupRouter 配置和返回一个 Gin 引擎实例。
func SetupRouter(h *Handler, jwtSecret string, limiter ratelimiter.RateLimiter) *gin.Engine {
	// 使用默认中间件 (logger, recovery) 创建一个 Gin 引擎。
	r := gin.Default()
	r.Use(TraceMiddleware())
	r.Use(RequestLogMiddleware(h.serviceName))
	r.Use(RateLimitMiddleware(limiter))

	// 健康检查不需要认证。
	r.GET("/healthz", h.Healthz)

	// 使用 v1 版本对 API 进行分组。
	// 画像路由组下的所有路由都要求认证；写权限（只有画像主人
	// 本人能写）由引擎在每次调用时判断。
	apiV1 := r.Group("/api/v1")
	apiV1.Use(AuthMiddleware(jwtSecret))
	{
		profiles := apiV1.Group("/profiles")
		{
			profiles.POST("/:owner/facts", h.Learn)
			profiles.GET("/:owner/facts", h.ListFacts)
			profiles.GET("/:owner/facts/search", h.SearchFacts)
			profiles.POST("/:owner/ask", h.Ask)
		}
	}

	return r
}
