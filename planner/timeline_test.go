package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PlanifyGo/models"
)

func timelineTask(id, title string, estTime int, items ...models.ChecklistItem) EnrichedTask {
	return EnrichedTask{
		Task:           models.Task{ID: id, Title: title, ChecklistItems: items},
		TaskProperties: TaskProperties{EstTime: estTime, Urgency: 5, Importance: 5, Energy: "medium", Context: "work"},
	}
}

func findItem(t *testing.T, layout *TimelineLayout, id string) TimelineItem {
	t.Helper()
	for _, item := range layout.Items {
		if item.ID == id {
			return item
		}
	}
	t.Fatalf("item %s not found in layout", id)
	return TimelineItem{}
}

func TestCurrentTimeOffset(t *testing.T) {
	day := func(h, m int) time.Time {
		return time.Date(2026, 8, 31, h, m, 0, 0, time.Local)
	}

	assert.Equal(t, 0.0, CurrentTimeOffset(day(6, 0)))
	assert.Equal(t, float64(170)*MinuteToPixelScale, CurrentTimeOffset(day(8, 50)))
	// 凌晨 1 点折算到"次日"区段
	assert.Equal(t, float64(19*60)*MinuteToPixelScale, CurrentTimeOffset(day(1, 0)))
	// 凌晨 3 点不在窗口内，归零
	assert.Equal(t, 0.0, CurrentTimeOffset(day(3, 0)))
}

func TestWindowMinutesClockRoundTrip(t *testing.T) {
	hour, minute := WindowMinutesToClock(OffsetToWindowMinutes(float64(210) * MinuteToPixelScale))
	assert.Equal(t, 9, hour)
	assert.Equal(t, 30, minute)

	// 跨天取模回钟面时刻
	hour, minute = WindowMinutesToClock(19*60 + 15)
	assert.Equal(t, 1, hour)
	assert.Equal(t, 15, minute)
}

func TestLayoutTimelineAvoidsCalendarEvent(t *testing.T) {
	now := time.Date(2026, 8, 31, 8, 50, 0, 0, time.Local)
	events := []models.CalendarEvent{{
		ID:      "ev1",
		Summary: "站会",
		Start:   time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local),
		End:     time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local),
	}}
	tasks := []EnrichedTask{timelineTask("t1", "写周报", 30)}

	layout, ok := LayoutTimeline(tasks, events, nil, now)
	require.True(t, ok)

	event := findItem(t, layout, "ev1")
	task := findItem(t, layout, "t1")

	// 任务从 8:50 起排，撞上 [9:00,10:00) 的事件后推到 10:00
	tenAM := float64(4*60) * MinuteToPixelScale
	assert.Equal(t, tenAM, task.Offset)
	assert.Equal(t, float64(3*60)*MinuteToPixelScale, event.Offset)
}

func TestLayoutTimelineFlattensSubtasks(t *testing.T) {
	now := time.Date(2026, 8, 31, 6, 0, 0, 0, time.Local)
	tasks := []EnrichedTask{timelineTask("t1", "整理报告", 120,
		models.ChecklistItem{ID: "s1", DisplayName: "查资料 (30 min)"},
		models.ChecklistItem{ID: "s2", DisplayName: "写初稿 (60 min)"},
		models.ChecklistItem{ID: "s3", DisplayName: "已完成的 (20 min)", IsChecked: true},
		models.ChecklistItem{ID: "s4", DisplayName: "没有时长后缀"},
	)}

	layout, ok := LayoutTimeline(tasks, nil, nil, now)
	require.True(t, ok)

	// 有可排期子任务时任务本身不上轴，已勾选和无时长的子任务被跳过
	require.Len(t, layout.Items, 2)
	s1 := findItem(t, layout, "s1")
	s2 := findItem(t, layout, "s2")
	assert.Equal(t, "查资料", s1.Title)
	assert.Equal(t, "t1", s1.TaskID)
	assert.Equal(t, s1.Offset+s1.Width, s2.Offset, "同语境子任务首尾相接")
}

func TestLayoutTimelineContextSwitchGap(t *testing.T) {
	now := time.Date(2026, 8, 31, 6, 0, 0, 0, time.Local)
	workTask := timelineTask("w1", "写代码", 60)
	homeTask := timelineTask("h1", "修水管", 30)
	homeTask.Context = "home"

	layout, ok := LayoutTimeline([]EnrichedTask{workTask, homeTask}, nil, nil, now)
	require.True(t, ok)

	w := findItem(t, layout, "w1")
	h := findItem(t, layout, "h1")
	assert.Equal(t, w.Offset+w.Width+AutoPlacementGapMinutes*MinuteToPixelScale, h.Offset)
}

// 自动排布顺序由父任务分数决定，与传入切片的顺序无关
func TestLayoutTimelinePacksByScoreDescending(t *testing.T) {
	now := time.Date(2026, 8, 31, 6, 0, 0, 0, time.Local)
	low := timelineTask("low", "低分任务", 30)
	low.Score = 18
	high := timelineTask("high", "高分任务", 30)
	high.Score = 162

	layout, ok := LayoutTimeline([]EnrichedTask{low, high}, nil, nil, now)
	require.True(t, ok)

	h := findItem(t, layout, "high")
	l := findItem(t, layout, "low")
	assert.Equal(t, 0.0, h.Offset)
	assert.Equal(t, h.Offset+h.Width, l.Offset)
}

// 子任务都没有时长后缀时回退到任务本身整体排期。
// 未勾选但不可解析的子任务不会让任务从时间轴上消失
func TestLayoutTimelineFallsBackToTaskWhenSubtasksLackDurations(t *testing.T) {
	now := time.Date(2026, 8, 31, 6, 0, 0, 0, time.Local)
	tasks := []EnrichedTask{timelineTask("t1", "整理报告", 45,
		models.ChecklistItem{ID: "s1", DisplayName: "查资料"},
		models.ChecklistItem{ID: "s2", DisplayName: "写初稿"},
	)}

	layout, ok := LayoutTimeline(tasks, nil, nil, now)
	require.True(t, ok)
	require.Len(t, layout.Items, 1)
	assert.Equal(t, "t1", layout.Items[0].ID)
	assert.Equal(t, "task", layout.Items[0].Kind)
	assert.Equal(t, float64(45)*MinuteToPixelScale, layout.Items[0].Width)
}

func TestLayoutTimelineManualOverrideBlocks(t *testing.T) {
	now := time.Date(2026, 8, 31, 6, 0, 0, 0, time.Local)
	pinned := timelineTask("pinned", "固定任务", 60)
	auto := timelineTask("auto", "自动任务", 30)

	// pinned 钉在窗口起点，auto 必须绕开它
	layout, ok := LayoutTimeline([]EnrichedTask{pinned, auto}, nil, map[string]int{"pinned": 0}, now)
	require.True(t, ok)

	p := findItem(t, layout, "pinned")
	a := findItem(t, layout, "auto")
	assert.True(t, p.Manual)
	assert.False(t, a.Manual)
	assert.Equal(t, 0.0, p.Offset)
	assert.GreaterOrEqual(t, a.Offset, p.Offset+p.Width)
}

func TestLayoutTimelineEmptyInput(t *testing.T) {
	now := time.Date(2026, 8, 31, 6, 0, 0, 0, time.Local)

	layout, ok := LayoutTimeline(nil, nil, nil, now)
	assert.False(t, ok)
	assert.Nil(t, layout)

	// 只有既无时长又无子任务的任务，同样视为空
	layout, ok = LayoutTimeline([]EnrichedTask{timelineTask("t1", "空任务", 0)}, nil, nil, now)
	assert.False(t, ok)
	assert.Nil(t, layout)
}

func TestLayoutTimelineLevels(t *testing.T) {
	now := time.Date(2026, 8, 31, 6, 0, 0, 0, time.Local)
	events := []models.CalendarEvent{
		{ID: "e1", Summary: "很长很长很长很长的会议名称", Start: time.Date(2026, 8, 31, 6, 0, 0, 0, time.Local), End: time.Date(2026, 8, 31, 6, 5, 0, 0, time.Local)},
		{ID: "e2", Summary: "紧跟着的事件", Start: time.Date(2026, 8, 31, 6, 5, 0, 0, time.Local), End: time.Date(2026, 8, 31, 6, 10, 0, 0, time.Local)},
	}

	layout, ok := LayoutTimeline(nil, events, nil, now)
	require.True(t, ok)

	e1 := findItem(t, layout, "e1")
	e2 := findItem(t, layout, "e2")
	assert.Equal(t, 0, e1.Level)
	assert.Equal(t, 1, e2.Level, "标签盖住下一条目的起点时要另起一层")
}
