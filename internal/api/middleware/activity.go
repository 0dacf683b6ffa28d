package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"ppa-connect/backend/internal/service"
)

// 同一用户两次活跃时间刷新的最小间隔，避免每个请求都打数据库
const activityThrottle = 5 * time.Minute

// Activity 在线活跃中间件
// 认证请求通过后异步刷新 last_seen，节流到每用户 5 分钟一次
func Activity(userSvc service.UserService) gin.HandlerFunc {
	var mu sync.Mutex
	lastTouch := make(map[string]time.Time)

	return func(c *gin.Context) {
		c.Next()

		v, exists := c.Get("user_id")
		if !exists {
			return
		}
		userID, ok := v.(string)
		if !ok || userID == "" {
			return
		}

		now := time.Now()
		mu.Lock()
		if t, seen := lastTouch[userID]; seen && now.Sub(t) < activityThrottle {
			mu.Unlock()
			return
		}
		lastTouch[userID] = now
		mu.Unlock()

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			userSvc.TouchLastSeen(ctx, userID)
		}()
	}
}
