package handler

import (
	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(200, Response{Success: true, Data: data})
}

// Fail 错误响应
func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{Success: false, Message: message})
}
