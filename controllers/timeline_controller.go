package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"PlanifyGo/config"
	"PlanifyGo/models"
	"PlanifyGo/services"
)

type TimelineController struct {
	service *services.PlannerService
	cfg     config.Config
}

func NewTimelineController(service *services.PlannerService, cfg config.Config) *TimelineController {
	return &TimelineController{service: service, cfg: cfg}
}

// GetTimeline 计算当日时间轴布局。无可排内容时返回 204
func (tlc *TimelineController) GetTimeline(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	now := time.Now()
	events, err := fetchTodaysEvents(c, tlc.cfg, now)
	if err != nil {
		config.Logger.Errorw("获取日历事件失败", "error", err, "uid", uid)
		c.JSON(http.StatusBadGateway, gin.H{"error": "获取日历事件失败"})
		return
	}

	layout, ok, err := tlc.service.BuildTimeline(c.Request.Context(), uid.(string), events, now)
	if err != nil {
		config.Logger.Errorw("计算时间轴失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "计算时间轴失败"})
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, layout)
}

// MoveItem 提交拖拽位置并返回重算后的布局
func (tlc *TimelineController) MoveItem(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	var req models.MoveTimelineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	now := time.Now()
	events, err := fetchTodaysEvents(c, tlc.cfg, now)
	if err != nil {
		config.Logger.Errorw("获取日历事件失败", "error", err, "uid", uid)
		c.JSON(http.StatusBadGateway, gin.H{"error": "获取日历事件失败"})
		return
	}

	layout, ok, err := tlc.service.MoveTimelineItem(c.Request.Context(), uid.(string), c.Param("itemId"), req.Offset, events, now)
	if err != nil {
		config.Logger.Errorw("移动时间轴条目失败",
			"error", err,
			"uid", uid,
			"itemId", c.Param("itemId"),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "移动时间轴条目失败"})
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, layout)
}
