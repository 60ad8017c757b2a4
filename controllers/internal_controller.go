package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"PlanifyGo/config"
	"PlanifyGo/utils"
)

type InternalController struct{}

// IssueToken 为指定用户签发测试令牌，仅限内部调用
func (ic *InternalController) IssueToken(c *gin.Context) {
	uid := c.Query("uid")
	if uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 uid 参数"})
		return
	}

	token, err := utils.GenerateToken(uid)
	if err != nil {
		config.Logger.Errorw("签发令牌失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "签发令牌失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
