package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PlanifyGo/models"
)

func TestProcessTasksPartition(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	rawTasks := []models.Task{
		{ID: "a", Body: "---\nEstTime: 30\nUrgency: 8\nImportance: 8\nContext: work\n---\n"},
		{ID: "b", Body: "还没补全属性的任务"},
		{ID: "c", Body: "---\nEstTime: 60\nUrgency: 2\nImportance: 2\nContext: home\n---\n"},
		{ID: "d", Body: ""},
	}

	result := ProcessTasks(rawTasks, now)

	// 每个输入任务恰好落入一类
	assert.Equal(t, len(rawTasks), len(result.EnrichedTasks)+len(result.ReviewTasks))
	require.Len(t, result.EnrichedTasks, 2)
	require.Len(t, result.ReviewTasks, 2)
	assert.Equal(t, "b", result.ReviewTasks[0].ID)
	assert.Equal(t, "d", result.ReviewTasks[1].ID)
}

func TestProcessTasksSortsByScoreDescending(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	rawTasks := []models.Task{
		{ID: "low", Body: "---\nEstTime: 30\nUrgency: 1\nImportance: 1\nContext: work\n---\n"},
		{ID: "high", Body: "---\nEstTime: 30\nUrgency: 9\nImportance: 9\nContext: work\n---\n"},
	}

	result := ProcessTasks(rawTasks, now)
	require.Len(t, result.EnrichedTasks, 2)
	assert.Equal(t, "high", result.EnrichedTasks[0].ID)
	assert.GreaterOrEqual(t, result.EnrichedTasks[0].Score, result.EnrichedTasks[1].Score)
}

func TestSelectCandidates(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	tasks := []EnrichedTask{
		{Task: models.Task{ID: "no-start"}, TaskProperties: TaskProperties{EstTime: 10, Urgency: 5, Importance: 5}},
		{Task: models.Task{ID: "none"}, TaskProperties: TaskProperties{EstTime: 10, Urgency: 5, Importance: 5, StartDate: "None"}},
		{Task: models.Task{ID: "past"}, TaskProperties: TaskProperties{EstTime: 10, Urgency: 5, Importance: 5, StartDate: "2026-08-30"}},
		{Task: models.Task{ID: "today"}, TaskProperties: TaskProperties{EstTime: 10, Urgency: 5, Importance: 5, StartDate: "2026-08-31"}},
		{Task: models.Task{ID: "future"}, TaskProperties: TaskProperties{EstTime: 10, Urgency: 5, Importance: 5, StartDate: "2026-09-05"}},
		{Task: models.Task{ID: "garbage"}, TaskProperties: TaskProperties{EstTime: 10, Urgency: 5, Importance: 5, StartDate: "下周"}},
	}

	candidates := SelectCandidates(tasks, now)

	ids := []string{}
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"no-start", "none", "past", "today"}, ids)
}
