package middleware

import (
	"net/http"
	"strings"

	"github.com/wjxyyds666/bookkeeping/internal/util"

	"github.com/gin-gonic/gin"
)

// context key，鉴权通过后存放 *util.Claims
const CurrentUserKey = "currentUser"

// 不需要认证的路由白名单
var whiteList = map[string]bool{
	"/":                  true,
	"/login.html":        true,
	"/register.html":     true,
	"/api/auth/login":    true,
	"/api/auth/register": true,
}

// 静态资源前缀，直接放行
var whitePrefixes = []string{"/js/", "/css/"}

func inWhiteList(path string) bool {
	if whiteList[path] {
		return true
	}
	for _, p := range whitePrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// AuthMiddleware 校验 JWT，并把令牌里的用户信息放入 context。
// 白名单路径直接放行；/api/admin/ 下的接口额外要求管理员。
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if inWhiteList(path) {
			c.Next()
			return
		}

		var tokenStr string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		if tokenStr == "" {
			// 页面入口未登录时跳转到登录页，接口返回 401
			if path == "/index.html" || path == "/admin.html" {
				c.Redirect(http.StatusFound, "/login.html")
				c.Abort()
				return
			}
			util.Error(c, http.StatusUnauthorized, "未登录，请先登录")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, "令牌无效，请重新登录")
			c.Abort()
			return
		}

		// 管理员路由权限校验
		if strings.HasPrefix(path, "/api/admin/") && !claims.IsAdmin {
			util.Error(c, http.StatusForbidden, "无管理员权限")
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, claims)
		c.Next()
	}
}

// CurrentUser 从 context 取出鉴权通过的用户信息
func CurrentUser(c *gin.Context) (*util.Claims, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*util.Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}
