package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"github.com/MorningZephyr/zhen-bot/internal/models"
	"github.com/MorningZephyr/zhen-bot/pkg/logger"
	"github.com/MorningZephyr/zhen-bot/pkg/ratelimiter"
)

// callerIDKey 是经过认证的调用者 ID 在 Gin 上下文中的键。
const callerIDKey = "callerID"

// traceIDKey 是请求追踪 ID 在 Gin 上下文中的键。
const traceIDKey = "traceID"

// AuthMiddleware 创建一个 Gin 中间件，用于验证 JWT。
// 认证只确定调用者身份（sub 声明），不做任何授权判断：
// 同一个 token 既可以读任何人的画像，也只能写自己的画像，
// 写权限由引擎逐次判断。
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "请求未包含授权标头"})
			c.Abort()
			return
		}

		// 我们期望的格式是 "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "授权标头格式不正确"})
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 解析和验证 token
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			// 确保 token 的签名方法是我们期望的
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("非预期的签名方法")
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的 token"})
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
			// 从 claims 中获取调用者 ID（字符串用户名）
			callerID, ok := claims["sub"].(string)
			if !ok || callerID == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的 token claims"})
				c.Abort()
				return
			}
			// 将调用者 ID 存储在 Gin 的上下文中，以便后续的处理函数可以使用
			c.Set(callerIDKey, callerID)
		} else {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的 token"})
			c.Abort()
			return
		}

		// 进入下一个处理函数
		c.Next()
	}
}

// TraceMiddleware 为每个请求生成一个追踪 ID，贯穿日志记录。
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Set(traceIDKey, traceID)
		c.Header("X-Trace-ID", traceID)
		c.Next()
	}
}

// RequestLogMiddleware 在每个请求完成后记录一条结构化日志，
// 带上请求信息、追踪 ID 和调用者身份。
func RequestLogMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger.New(serviceName, c.GetString(traceIDKey), c.GetString(callerIDKey)).
			WithRequest(models.RequestInfo{
				Method:     c.Request.Method,
				Path:       c.Request.URL.Path,
				RemoteAddr: c.ClientIP(),
				UserAgent:  c.Request.UserAgent(),
			}).
			WithPayload(map[string]interface{}{
				"status_code": c.Writer.Status(),
			}).
			Info("request completed")
	}
}

// RateLimitMiddleware 使用给定的限流器保护整个 API。
// limiter 为 nil 时不限流。
func RateLimitMiddleware(limiter ratelimiter.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "请求过于频繁，请稍后再试"})
			c.Abort()
			return
		}
		c.Next()
	}
}
