package middlewares

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"feasibility-bot/chat-api/internal/domain/ratelimit"
	"feasibility-bot/chat-api/internal/infrastructure/metrics"
	"feasibility-bot/chat-api/internal/interfaces/httpserver/dto"
)

const rateLimitMessage = "使用頻度制限に達しました。少し時間をおいて再度お試しください。"

// RateLimitMiddleware applies fixed-window admission control keyed by
// client IP. Rejected requests are answered locally and never reach the
// assistant protocol.
func RateLimitMiddleware(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := limiter.Admit(rateKey(c), time.Now())
		if !decision.Allowed {
			metrics.RateLimitRejectionsTotal.Inc()
			seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: rateLimitMessage})
			return
		}
		c.Next()
	}
}

func rateKey(c *gin.Context) string {
	ip := clientIP(c.ClientIP())
	if ip != "" {
		return "ip:" + ip
	}
	return "anonymous"
}

// Normalize IPv6-mapped IPv4 etc.
func clientIP(raw string) string {
	if raw == "" {
		return ""
	}
	if ip := net.ParseIP(raw); ip != nil {
		return ip.String()
	}
	return raw
}
