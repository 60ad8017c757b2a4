package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"PlanifyGo/config"
	"PlanifyGo/services"
)

type EnrichController struct {
	service *services.PlannerService
}

func NewEnrichController(service *services.PlannerService) *EnrichController {
	return &EnrichController{service: service}
}

// EnrichTask 对单个任务做 AI 估算并写回
func (ec *EnrichController) EnrichTask(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	estimate, err := ec.service.EnrichTask(c.Request.Context(), uid.(string), c.Param("listId"), c.Param("taskId"))
	if err != nil {
		config.Logger.Errorw("任务补全失败",
			"error", err,
			"uid", uid,
			"taskId", c.Param("taskId"),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "任务补全失败"})
		return
	}

	c.JSON(http.StatusOK, estimate)
}

// EnrichBatch 批量补全全部待确认任务
func (ec *EnrichController) EnrichBatch(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	response, err := ec.service.EnrichAll(c.Request.Context(), uid.(string), time.Now())
	if err != nil {
		config.Logger.Errorw("批量补全失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "批量补全失败"})
		return
	}

	c.JSON(http.StatusOK, response)
}
