package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"PlanifyGo/models"
)

func enrichedForScore(id string, context string, dueInDays *int, now time.Time) EnrichedTask {
	task := EnrichedTask{
		Task:           models.Task{ID: id},
		TaskProperties: TaskProperties{EstTime: 30, Urgency: 5, Importance: 5, Energy: "medium", Context: context},
	}
	if dueInDays != nil {
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		due := midnight.AddDate(0, 0, *dueInDays)
		task.DueDate = &due
	}
	return task
}

func TestCalculateScoreUrgencyBoost(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	base := 5*10 + 5*8

	cases := []struct {
		name      string
		dueInDays *int
		want      int
	}{
		{"no due date", nil, base},
		{"due today", intPtr(0), base + 150},
		{"overdue", intPtr(-3), base + 150},
		{"due in 7 days", intPtr(7), base + 14}, // round(100/7)
		{"due in 20 days", intPtr(20), base},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := enrichedForScore("t1", "work", tc.dueInDays, now)
			got := CalculateScore(task, []EnrichedTask{task}, now)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculateScoreContextSwitchPenalty(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	a := enrichedForScore("a", "work", nil, now)
	b := enrichedForScore("b", "home", nil, now)
	c := enrichedForScore("c", "home", nil, now)
	peers := []EnrichedTask{a, b, c}

	assert.Equal(t, 90, CalculateScore(a, peers, now))
	assert.Equal(t, 85, CalculateScore(b, peers, now), "前一个任务语境不同要扣 5 分")
	assert.Equal(t, 90, CalculateScore(c, peers, now))
}

func TestCalculateScoreIsPure(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	task := enrichedForScore("t1", "work", intPtr(3), now)
	peers := []EnrichedTask{enrichedForScore("t0", "home", nil, now), task}

	first := CalculateScore(task, peers, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CalculateScore(task, peers, now))
	}
}

func intPtr(v int) *int { return &v }
