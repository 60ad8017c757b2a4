package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PlanifyGo/models"
)

// fakeTaskStore 内存任务存储，只支撑计划生成用到的读路径
type fakeTaskStore struct {
	tasks []models.Task
}

func (f *fakeTaskStore) ListAllTasks(uid string) ([]models.Task, error) {
	return f.tasks, nil
}

func (f *fakeTaskStore) ListLists(uid string) ([]models.TaskList, error) { return nil, nil }
func (f *fakeTaskStore) GetListByName(uid, displayName string) (*models.TaskList, error) {
	return nil, nil
}
func (f *fakeTaskStore) CreateList(uid, displayName string) (*models.TaskList, error) {
	return nil, fmt.Errorf("只读存储")
}
func (f *fakeTaskStore) ListTasks(uid, listID string) ([]models.Task, error) { return nil, nil }
func (f *fakeTaskStore) GetTask(uid, listID, taskID string) (*models.Task, error) {
	return nil, fmt.Errorf("只读存储")
}
func (f *fakeTaskStore) CreateTask(uid, listID string, req *models.CreateTaskRequest) (*models.Task, error) {
	return nil, fmt.Errorf("只读存储")
}
func (f *fakeTaskStore) UpdateTask(uid, listID, taskID string, fields map[string]interface{}) error {
	return fmt.Errorf("只读存储")
}
func (f *fakeTaskStore) DeleteTask(uid, listID, taskID string) error { return fmt.Errorf("只读存储") }
func (f *fakeTaskStore) CreateChecklistItem(uid, taskID, displayName string) (*models.ChecklistItem, error) {
	return nil, fmt.Errorf("只读存储")
}
func (f *fakeTaskStore) UpdateChecklistItem(uid, taskID, itemID string, fields map[string]interface{}) error {
	return fmt.Errorf("只读存储")
}
func (f *fakeTaskStore) DeleteChecklistItem(uid, taskID, itemID string) error {
	return fmt.Errorf("只读存储")
}
func (f *fakeTaskStore) ReplaceChecklistItems(uid, taskID string, displayNames []string) error {
	return fmt.Errorf("只读存储")
}

func storedTask(id, listName, context string, urgency, importance int) models.Task {
	return models.Task{
		ID:       id,
		Title:    id,
		ListName: listName,
		Body: fmt.Sprintf("---\nEstTime: 30\nUrgency: %d\nImportance: %d\nContext: %s\n---\n",
			urgency, importance, context),
	}
}

// 候选顺序必须来自全局分数降序的补全结果。
// 计划清单里的低分任务不能把自己所在语境组顶到前面，
// 也不能排在同组高分任务之前
func TestGeneratePlanOrdersCandidatesByGlobalScore(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	store := &fakeTaskStore{tasks: []models.Task{
		storedTask("p", PlanListName, "work", 1, 1), // 18 分
		storedTask("a", "Inbox", "work", 9, 9),      // 162 分
		storedTask("h", "Inbox", "home", 8, 8),      // 139 分
	}}
	service := NewPlannerService(store, nil, nil, nil)

	result, err := service.GeneratePlan("u1", 300, now)
	require.NoError(t, err)

	ids := []string{}
	for _, task := range result.Plan {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{"a", "p", "h"}, ids)
}

func TestFetchSnapshotPartitionsByList(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	store := &fakeTaskStore{tasks: []models.Task{
		storedTask("p", PlanListName, "work", 5, 5),
		storedTask("a", "Inbox", "work", 5, 5),
		{ID: "r", Title: "r", ListName: "Inbox", Body: "还没补全"},
	}}
	service := NewPlannerService(store, nil, nil, nil)

	snapshot, err := service.FetchSnapshot("u1", now)
	require.NoError(t, err)
	require.Len(t, snapshot.TodaysPlan, 1)
	require.Len(t, snapshot.AvailableTasks, 1)
	require.Len(t, snapshot.NeedsReviewTasks, 1)
	assert.Equal(t, "p", snapshot.TodaysPlan[0].ID)
	assert.Equal(t, "a", snapshot.AvailableTasks[0].ID)
	assert.Equal(t, "r", snapshot.NeedsReviewTasks[0].ID)
}
