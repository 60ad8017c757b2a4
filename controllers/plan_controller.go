package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"PlanifyGo/config"
	"PlanifyGo/models"
	"PlanifyGo/services"
)

type PlanController struct {
	service *services.PlannerService
	cfg     config.Config
}

func NewPlanController(service *services.PlannerService, cfg config.Config) *PlanController {
	return &PlanController{service: service, cfg: cfg}
}

// resolveTimeBudget 预算为 0 时用日历推算的剩余可用时间
func (pc *PlanController) resolveTimeBudget(c *gin.Context, requested int, now time.Time) (int, error) {
	if requested > 0 {
		return requested, nil
	}
	events, err := fetchTodaysEvents(c, pc.cfg, now)
	if err != nil {
		return 0, err
	}
	return services.CalculateTimeBudget(events, now), nil
}

// GeneratePlan 生成当日计划
func (pc *PlanController) GeneratePlan(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	// 请求体可以为空，空请求体等价于使用日历推算预算
	var req models.GeneratePlanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
			return
		}
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	timeBudget, err := pc.resolveTimeBudget(c, req.TimeBudget, now)
	if err != nil {
		config.Logger.Errorw("推算时间预算失败", "error", err, "uid", uid)
		c.JSON(http.StatusBadGateway, gin.H{"error": "获取日历事件失败"})
		return
	}

	result, err := pc.service.GeneratePlan(uid.(string), timeBudget, now)
	if err != nil {
		config.Logger.Errorw("生成计划失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成计划失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plan":       result.Plan,
		"meta":       result.Meta,
		"timeBudget": timeBudget,
	})
}

// ExportPlan 把当日计划批量搬入计划清单
func (pc *PlanController) ExportPlan(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	var req models.GeneratePlanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
			return
		}
	}

	now := time.Now()
	timeBudget, err := pc.resolveTimeBudget(c, req.TimeBudget, now)
	if err != nil {
		config.Logger.Errorw("推算时间预算失败", "error", err, "uid", uid)
		c.JSON(http.StatusBadGateway, gin.H{"error": "获取日历事件失败"})
		return
	}

	response, err := pc.service.ExportPlan(uid.(string), timeBudget, now)
	if err != nil {
		config.Logger.Errorw("导出计划失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出计划失败"})
		return
	}

	c.JSON(http.StatusOK, response)
}
