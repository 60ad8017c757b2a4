package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"time"

	ical "github.com/arran4/golang-ical"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"PlanifyGo/config"
	"PlanifyGo/models"
)

// CalendarSource 只读日历源。返回当天（本地时区 [00:00, 24:00)）的固定日程
type CalendarSource interface {
	ListTodaysEvents(ctx context.Context, now time.Time) ([]models.CalendarEvent, error)
}

// GoogleCalendarSource 基于调用方提供的访问令牌读取 Google 日历。
// 每次请求新建客户端，令牌过期由调用方处理
type GoogleCalendarSource struct {
	accessToken string
}

func NewGoogleCalendarSource(accessToken string) *GoogleCalendarSource {
	return &GoogleCalendarSource{accessToken: accessToken}
}

// ListTodaysEvents 汇总用户全部日历当天的具体时段事件，全天事件跳过
func (s *GoogleCalendarSource) ListTodaysEvents(ctx context.Context, now time.Time) ([]models.CalendarEvent, error) {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.accessToken})
	srv, err := calendar.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("创建日历客户端失败: %w", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	calendars, err := srv.CalendarList.List().Do()
	if err != nil {
		return nil, fmt.Errorf("获取日历列表失败: %w", err)
	}

	events := []models.CalendarEvent{}
	for _, cal := range calendars.Items {
		items, err := srv.Events.List(cal.Id).
			TimeMin(dayStart.Format(time.RFC3339)).
			TimeMax(dayEnd.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			Do()
		if err != nil {
			return nil, fmt.Errorf("获取日历 %s 的事件失败: %w", cal.Id, err)
		}

		for _, item := range items.Items {
			// 全天事件只有 Date 没有 DateTime，不占用可排期时间
			if item.Start == nil || item.Start.DateTime == "" || item.End == nil || item.End.DateTime == "" {
				continue
			}
			start, err := time.Parse(time.RFC3339, item.Start.DateTime)
			if err != nil {
				continue
			}
			end, err := time.Parse(time.RFC3339, item.End.DateTime)
			if err != nil {
				continue
			}
			events = append(events, models.CalendarEvent{
				ID:      item.Id,
				Summary: item.Summary,
				Start:   start.In(now.Location()),
				End:     end.In(now.Location()),
			})
		}
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	return events, nil
}

// ICSCalendarSource 从配置的 ICS 订阅地址拉取日历，作为无 Google 授权时的回退
type ICSCalendarSource struct {
	feedURL string
	client  *http.Client
}

func NewICSCalendarSource(feedURL string) *ICSCalendarSource {
	return &ICSCalendarSource{
		feedURL: feedURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *ICSCalendarSource) ListTodaysEvents(ctx context.Context, now time.Time) ([]models.CalendarEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构造 ICS 请求失败: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("拉取 ICS 订阅失败: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ICS 订阅返回状态 %d", resp.StatusCode)
	}

	cal, err := ical.ParseCalendar(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("解析 ICS 失败: %w", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	events := []models.CalendarEvent{}
	for _, ve := range cal.Events() {
		start, err := ve.GetStartAt()
		if err != nil {
			config.Logger.Warnw("跳过无法解析开始时间的 ICS 事件", "error", err)
			continue
		}
		end, err := ve.GetEndAt()
		if err != nil {
			continue
		}
		start = start.In(now.Location())
		end = end.In(now.Location())
		// 只保留与当天有交集的事件
		if !start.Before(dayEnd) || !end.After(dayStart) {
			continue
		}

		summary := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			summary = p.Value
		}
		id := ""
		if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
			id = p.Value
		}
		events = append(events, models.CalendarEvent{
			ID:      id,
			Summary: summary,
			Start:   start,
			End:     end,
		})
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	return events, nil
}

// CalculateTimeBudget 推算今天剩余可规划时间（分钟）：
// 从现在到午夜的总分钟数，减去各事件与该区间的重叠时长
func CalculateTimeBudget(events []models.CalendarEvent, now time.Time) int {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	totalMinutesLeft := midnight.Sub(now).Minutes()

	var upcoming float64
	for _, event := range events {
		overlapStart := event.Start
		if now.After(overlapStart) {
			overlapStart = now
		}
		overlapEnd := event.End
		if midnight.Before(overlapEnd) {
			overlapEnd = midnight
		}
		if overlapEnd.After(overlapStart) {
			upcoming += overlapEnd.Sub(overlapStart).Minutes()
		}
	}

	return int(math.Round(totalMinutesLeft - upcoming))
}
