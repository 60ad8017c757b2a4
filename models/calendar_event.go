package models

import "time"

// CalendarEvent 日历事件。来自外部日历源，只读，占用不可协商的固定时间段
type CalendarEvent struct {
	ID      string    `json:"id"`
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// DurationMinutes 返回事件时长（分钟）
func (e *CalendarEvent) DurationMinutes() float64 {
	return e.End.Sub(e.Start).Minutes()
}
