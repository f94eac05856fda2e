package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/wjxyyds666/bookkeeping/internal/middleware"
	"github.com/wjxyyds666/bookkeeping/internal/models"
	"github.com/wjxyyds666/bookkeeping/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler 负责登录/注册相关接口
type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
}

// NewAuthHandler 构造函数
func NewAuthHandler(db *gorm.DB, jwtSecret string, ttlDays int) *AuthHandler {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	return &AuthHandler{
		DB:        db,
		JWTSecret: jwtSecret,
		TokenTTL:  time.Duration(ttlDays) * 24 * time.Hour,
	}
}

// ---------- 注册 ----------

type registerReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "用户名和密码不能为空")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	if req.Username == "" || req.Password == "" {
		util.Error(c, http.StatusBadRequest, "用户名和密码不能为空")
		return
	}
	if err := util.ValidateUsername(req.Username); err != nil {
		util.Error(c, http.StatusBadRequest, "用户名长度需3-20位")
		return
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		util.Error(c, http.StatusBadRequest, "密码长度至少6位")
		return
	}

	// 检查用户名是否已存在
	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("username = ?", req.Username).
		Count(&count).Error; err != nil {
		util.ServerError(c, "查询用户失败", err)
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, "用户名已存在")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		util.ServerError(c, "密码加密失败", err)
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.ServerError(c, "创建用户失败", err)
		return
	}

	util.SuccessMsg(c, "注册成功，请登录", nil)
}

// ---------- 登录 ----------

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "用户名和密码不能为空")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		util.Error(c, http.StatusBadRequest, "用户名和密码不能为空")
		return
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// 和密码错误保持同一提示，避免泄露用户名是否存在
			util.Error(c, http.StatusBadRequest, "用户名或密码错误")
		} else {
			util.ServerError(c, "查询用户失败", err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusBadRequest, "用户名或密码错误")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, user.Username, user.IsAdmin, h.TokenTTL)
	if err != nil {
		util.ServerError(c, "生成令牌失败", err)
		return
	}

	util.Success(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"is_admin": user.IsAdmin,
		},
	})
}

// ---------- 当前用户 ----------

// GetMe 返回令牌里的用户信息（需要经过 AuthMiddleware）
func GetMe(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "未登录，请先登录")
		return
	}

	util.Success(c, gin.H{
		"id":       claims.UserID,
		"username": claims.Username,
		"is_admin": claims.IsAdmin,
	})
}

// ---------- 修改密码 ----------

type changePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword 修改当前用户密码。
// 已签发的令牌不会因此失效，到期后自然作废。
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "未登录，请先登录")
		return
	}

	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "参数错误")
		return
	}
	if req.OldPassword == "" {
		util.Error(c, http.StatusBadRequest, "原密码不能为空")
		return
	}
	if err := util.ValidatePassword(req.NewPassword); err != nil {
		util.Error(c, http.StatusBadRequest, "新密码长度至少6位")
		return
	}

	var user models.User
	if err := h.DB.First(&user, claims.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusUnauthorized, "用户不存在")
		} else {
			util.ServerError(c, "查询用户失败", err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		util.Error(c, http.StatusBadRequest, "原密码错误")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		util.ServerError(c, "密码加密失败", err)
		return
	}

	if err := h.DB.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		util.ServerError(c, "修改密码失败", err)
		return
	}

	util.SuccessMsg(c, "密码修改成功", nil)
}
