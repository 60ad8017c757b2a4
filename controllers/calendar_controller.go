package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"PlanifyGo/config"
	"PlanifyGo/models"
	"PlanifyGo/services"
)

type CalendarController struct {
	cfg config.Config
}

func NewCalendarController(cfg config.Config) *CalendarController {
	return &CalendarController{cfg: cfg}
}

// calendarSourceFor 按请求选择日历源：带 Google 令牌走 Google，
// 否则回退到配置的 ICS 订阅；两者都没有时返回 nil
func calendarSourceFor(c *gin.Context, cfg config.Config) services.CalendarSource {
	if token := c.GetHeader("X-Google-Token"); token != "" {
		return services.NewGoogleCalendarSource(token)
	}
	if cfg.ICSFeedURL != "" {
		return services.NewICSCalendarSource(cfg.ICSFeedURL)
	}
	return nil
}

// fetchTodaysEvents 拉取当天事件，无日历源时返回空列表
func fetchTodaysEvents(c *gin.Context, cfg config.Config, now time.Time) ([]models.CalendarEvent, error) {
	source := calendarSourceFor(c, cfg)
	if source == nil {
		return []models.CalendarEvent{}, nil
	}
	return source.ListTodaysEvents(c.Request.Context(), now)
}

// GetEvents 获取当天日历事件和推算出的可用时间
func (cc *CalendarController) GetEvents(c *gin.Context) {
	_, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	now := time.Now()
	events, err := fetchTodaysEvents(c, cc.cfg, now)
	if err != nil {
		config.Logger.Errorw("获取日历事件失败", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "获取日历事件失败"})
		return
	}

	c.JSON(http.StatusOK, models.CalendarEventsResponse{
		Events:     events,
		TimeBudget: services.CalculateTimeBudget(events, now),
	})
}
