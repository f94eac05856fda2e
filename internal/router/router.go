package router

import (
	"github.com/wjxyyds666/bookkeeping/internal/config"
	"github.com/wjxyyds666/bookkeeping/internal/handler"
	"github.com/wjxyyds666/bookkeeping/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, middleware chain and routes.
// 中间件顺序：请求 ID → CORS → 鉴权 → 审计日志。
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.CORSMiddleware(),
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.AuditMiddleware(db),
	)

	// 静态页面和资源
	r.Static("/js", "./public/js")
	r.Static("/css", "./public/css")
	r.StaticFile("/", "./public/login.html")
	r.StaticFile("/login.html", "./public/login.html")
	r.StaticFile("/register.html", "./public/register.html")
	r.StaticFile("/index.html", "./public/index.html")
	r.StaticFile("/admin.html", "./public/admin.html")

	// ====== API ======
	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.ExpireDays)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", handler.GetMe)
	api.POST("/auth/password", authHandler.ChangePassword)

	categoryHandler := handler.NewCategoryHandler(db)
	api.GET("/categories", categoryHandler.List)
	api.POST("/categories", categoryHandler.Create)

	recordHandler := handler.NewRecordHandler(db, cfg.App.PageSize)
	api.GET("/records", recordHandler.List)
	api.POST("/records", recordHandler.Create)
	api.PUT("/records", recordHandler.Update)
	api.DELETE("/records", recordHandler.Delete)

	statsHandler := handler.NewStatsHandler(db)
	api.GET("/records/stats", statsHandler.GetMonthlyStats)

	exportHandler := handler.NewExportHandler(db)
	api.GET("/records/export/csv", exportHandler.ExportCSV)
	api.GET("/records/export/xlsx", exportHandler.ExportXLSX)

	logHandler := handler.NewLogHandler(db)
	api.GET("/logs", logHandler.ListLogs)

	adminHandler := handler.NewAdminHandler(db)
	api.GET("/admin/users", adminHandler.ListUsers)

	return r
}
