package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 统一返回结构 {code, message?, data?}，code 与 HTTP 状态码一致，200 表示成功

// Success 统一成功返回
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code": http.StatusOK,
		"data": data,
	})
}

// SuccessMsg 成功返回并附带提示信息
func SuccessMsg(c *gin.Context, msg string, data interface{}) {
	body := gin.H{
		"code":    http.StatusOK,
		"message": msg,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

// Error 统一错误返回
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    httpStatus,
		"message": msg,
	})
}

// ServerError 服务器内部错误，带上底层错误文本方便排查
func ServerError(c *gin.Context, msg string, err error) {
	body := gin.H{
		"code":    http.StatusInternalServerError,
		"message": msg,
	}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
