package planner

import (
	"math"
	"time"
)

const (
	dueTodayBoost      = 150 // 已到期或当天到期的任务直接拿最高加成
	boostHorizonDays   = 14
	scoreSwitchPenalty = 5
)

// CalculateScore 计算任务优先级分数：
//
//	score = urgency*10 + importance*8 + urgencyBoost - contextSwitchPenalty
//
// urgencyBoost 由截止日期决定：今天或更早 +150，1~14 天内为 round(100/天数)，
// 再远为 0。contextSwitchPenalty 在任务与 peers 中紧邻前一个任务语境不同时为 5。
// 相同输入（含 peers 顺序）必须得到完全相同的结果，now 只用于截断出"今天"
func CalculateScore(task EnrichedTask, peers []EnrichedTask, now time.Time) int {
	urgencyBoost := 0
	if task.DueDate != nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		diffDays := int(math.Ceil(task.DueDate.Sub(today).Hours() / 24))
		if diffDays <= 0 {
			urgencyBoost = dueTodayBoost
		} else if diffDays <= boostHorizonDays {
			urgencyBoost = int(math.Round(100 / float64(diffDays)))
		}
	}

	penalty := 0
	for i := range peers {
		if peers[i].ID == task.ID {
			if i > 0 && peers[i-1].Context != task.Context {
				penalty = scoreSwitchPenalty
			}
			break
		}
	}

	return task.Urgency*10 + task.Importance*8 + urgencyBoost - penalty
}
