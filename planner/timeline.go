package planner

import (
	"sort"
	"time"
	"unicode/utf8"

	"PlanifyGo/models"
)

const (
	// MinuteToPixelScale 分钟到横轴坐标的换算比例
	MinuteToPixelScale = 3.3
	// TimelineStartHour 时间轴窗口起点（当天 6 点）
	TimelineStartHour = 6
	// TimelineEndHour 时间轴窗口终点（次日凌晨 2 点，用 26 表示跨天）
	TimelineEndHour = 26
	// AutoPlacementGapMinutes 自动排布时语境切换插入的空隙分钟数
	AutoPlacementGapMinutes = 5

	labelCharWidth = 7
	labelPadding   = 16
	labelGap       = 10
)

// TimelineItem 时间轴上的一个条目：日历事件、任务或子任务
type TimelineItem struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Kind    string  `json:"kind"` // event / task / subtask
	Context string  `json:"context,omitempty"`
	TaskID  string  `json:"taskId,omitempty"`
	Offset  float64 `json:"offset"`
	Width   float64 `json:"width"`
	Level   int     `json:"level"`
	Manual  bool    `json:"manual"`

	// score 来自父任务，只用于自动排布的先后顺序
	score int
}

// TimelineLayout 一次完整布局的结果，每次重算整体替换，不做增量修改
type TimelineLayout struct {
	Items             []TimelineItem `json:"items"`
	CurrentTimeOffset float64        `json:"currentTimeOffset"`
}

type blockedInterval struct {
	start float64
	end   float64
}

// CurrentTimeOffset 计算当前时刻在窗口坐标系中的位置。
// 窗口起点之前且未过窗口终点的凌晨时段折算到"次日"，其余时段归零
func CurrentTimeOffset(now time.Time) float64 {
	h, m := now.Hour(), now.Minute()
	switch {
	case h >= TimelineStartHour:
		return float64((h-TimelineStartHour)*60+m) * MinuteToPixelScale
	case h < TimelineEndHour-24:
		return float64((h+24-TimelineStartHour)*60+m) * MinuteToPixelScale
	default:
		return 0
	}
}

// OffsetToWindowMinutes 横轴坐标换算回窗口内分钟数
func OffsetToWindowMinutes(offset float64) int {
	return int(offset/MinuteToPixelScale + 0.5)
}

// WindowMinutesToClock 窗口内分钟数换算为钟面时刻，跨天部分取模回 0~23 点
func WindowMinutesToClock(minutes int) (hour, minute int) {
	hour = (TimelineStartHour + minutes/60) % 24
	minute = minutes % 60
	return hour, minute
}

func eventWindowOffset(start time.Time) float64 {
	h, m := start.Hour(), start.Minute()
	if h < TimelineStartHour {
		h += 24
	}
	return float64((h-TimelineStartHour)*60+m) * MinuteToPixelScale
}

func overlaps(start, end float64, blocked []blockedInterval) (float64, bool) {
	for _, b := range blocked {
		if start < b.end && end > b.start {
			return b.end, true
		}
	}
	return 0, false
}

// flattenSchedulable 将计划任务展开为可排期条目：
// 有未完成且带时长后缀的子任务时逐个展开，子任务继承父任务的语境和分数；
// 否则任务本身带正时长时整体作为一个条目。两者都没有的任务不上轴
func flattenSchedulable(tasks []EnrichedTask) []TimelineItem {
	items := []TimelineItem{}
	for _, task := range tasks {
		subItems := []TimelineItem{}
		for _, item := range task.ChecklistItems {
			if item.IsChecked {
				continue
			}
			title, minutes, ok := ParseChecklistDuration(item.DisplayName)
			if !ok {
				continue
			}
			subItems = append(subItems, TimelineItem{
				ID:      item.ID,
				Title:   title,
				Kind:    "subtask",
				Context: task.Context,
				TaskID:  task.ID,
				Width:   float64(minutes) * MinuteToPixelScale,
				score:   task.Score,
			})
		}
		if len(subItems) > 0 {
			items = append(items, subItems...)
			continue
		}
		if task.EstTime > 0 {
			items = append(items, TimelineItem{
				ID:      task.ID,
				Title:   task.Title,
				Kind:    "task",
				Context: task.Context,
				TaskID:  task.ID,
				Width:   float64(task.EstTime) * MinuteToPixelScale,
				score:   task.Score,
			})
		}
	}
	return items
}

// LayoutTimeline 计算当日时间轴布局。
// 事件先占位并登记为阻塞区间，带手动覆盖的条目按覆盖位置固定并同样阻塞，
// 其余条目从当前时刻起贪心顺排，碰到阻塞区间就推到区间末尾重试。
// 没有任何条目和事件时返回 false，调用方据此渲染空态。
// overrides 的键是条目 ID，值是距窗口起点的分钟数
func LayoutTimeline(tasks []EnrichedTask, events []models.CalendarEvent, overrides map[string]int, now time.Time) (*TimelineLayout, bool) {
	schedulable := flattenSchedulable(tasks)
	if len(schedulable) == 0 && len(events) == 0 {
		return nil, false
	}

	placed := []TimelineItem{}
	blocked := []blockedInterval{}

	for _, event := range events {
		offset := eventWindowOffset(event.Start)
		width := event.DurationMinutes() * MinuteToPixelScale
		placed = append(placed, TimelineItem{
			ID:     event.ID,
			Title:  event.Summary,
			Kind:   "event",
			Offset: offset,
			Width:  width,
		})
		blocked = append(blocked, blockedInterval{start: offset, end: offset + width})
	}

	auto := []TimelineItem{}
	for _, item := range schedulable {
		minutes, ok := overrides[item.ID]
		if !ok {
			auto = append(auto, item)
			continue
		}
		item.Offset = float64(minutes) * MinuteToPixelScale
		item.Manual = true
		placed = append(placed, item)
		blocked = append(blocked, blockedInterval{start: item.Offset, end: item.Offset + item.Width})
	}

	sort.Slice(blocked, func(i, j int) bool { return blocked[i].start < blocked[j].start })

	// 自动条目按父任务分数降序排布，不依赖调用方传入的顺序。
	// 稳定排序保住同一任务下子任务的相对顺序
	sort.SliceStable(auto, func(i, j int) bool { return auto[i].score > auto[j].score })

	cursor := CurrentTimeOffset(now)
	lastContext := ""
	for _, item := range auto {
		start := cursor
		if lastContext != "" && item.Context != lastContext {
			start += AutoPlacementGapMinutes * MinuteToPixelScale
		}
		for {
			next, hit := overlaps(start, start+item.Width, blocked)
			if !hit {
				break
			}
			start = next
		}
		item.Offset = start
		placed = append(placed, item)
		cursor = start + item.Width
		lastContext = item.Context
	}

	sort.SliceStable(placed, func(i, j int) bool { return placed[i].Offset < placed[j].Offset })

	// 纵向分层避免标签重叠：取首个右端不越过本条目起点的层，否则新开一层
	levelEnds := []float64{}
	for i := range placed {
		level := -1
		for l, end := range levelEnds {
			if end <= placed[i].Offset {
				level = l
				break
			}
		}
		if level == -1 {
			level = len(levelEnds)
			levelEnds = append(levelEnds, 0)
		}
		labelWidth := float64(labelCharWidth*utf8.RuneCountInString(placed[i].Title) + labelPadding)
		levelEnds[level] = placed[i].Offset + labelWidth + labelGap
		placed[i].Level = level
	}

	return &TimelineLayout{Items: placed, CurrentTimeOffset: CurrentTimeOffset(now)}, true
}
