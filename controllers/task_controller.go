package controllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"PlanifyGo/config"
	"PlanifyGo/models"
	"PlanifyGo/planner"
	"PlanifyGo/services"
)

type TaskController struct {
	store   services.TaskStore
	service *services.PlannerService
}

func NewTaskController(store services.TaskStore, service *services.PlannerService) *TaskController {
	return &TaskController{store: store, service: service}
}

// GetLists 获取用户的全部任务清单
func (tc *TaskController) GetLists(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	lists, err := tc.store.ListLists(uid.(string))
	if err != nil {
		config.Logger.Errorw("获取清单失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取清单失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lists": lists})
}

// GetTasks 获取任务快照，支持语境过滤和排序
func (tc *TaskController) GetTasks(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	snapshot, err := tc.service.FetchSnapshot(uid.(string), time.Now())
	if err != nil {
		config.Logger.Errorw("获取任务快照失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取任务失败"})
		return
	}

	snapshot.AvailableTasks = filterAndSortTasks(
		snapshot.AvailableTasks,
		c.Query("context"),
		c.DefaultQuery("sort", "score"),
		c.DefaultQuery("order", "desc"),
	)

	c.JSON(http.StatusOK, snapshot)
}

// filterAndSortTasks 按语境过滤，再按分数或截止日期排序
func filterAndSortTasks(tasks []planner.EnrichedTask, context, sortBy, order string) []planner.EnrichedTask {
	filtered := tasks
	if context != "" && context != "all" {
		filtered = []planner.EnrichedTask{}
		for _, task := range tasks {
			if task.Context == context {
				filtered = append(filtered, task)
			}
		}
	}

	asc := order == "asc"
	switch sortBy {
	case "due_date":
		sort.SliceStable(filtered, func(i, j int) bool {
			di, dj := filtered[i].DueDate, filtered[j].DueDate
			// 没有截止日期的排最后
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			if asc {
				return di.Before(*dj)
			}
			return dj.Before(*di)
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			if asc {
				return filtered[i].Score < filtered[j].Score
			}
			return filtered[i].Score > filtered[j].Score
		})
	}
	return filtered
}

// CreateTask 在指定清单下创建任务
func (tc *TaskController) CreateTask(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	task, err := tc.store.CreateTask(uid.(string), c.Param("listId"), &req)
	if err != nil {
		config.Logger.Errorw("创建任务失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建任务失败"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask 部分更新任务
func (tc *TaskController) UpdateTask(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	if err := tc.store.UpdateTask(uid.(string), c.Param("listId"), c.Param("taskId"), req.Fields()); err != nil {
		config.Logger.Errorw("更新任务失败", "error", err, "uid", uid, "taskId", c.Param("taskId"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新任务失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

// DeleteTask 删除任务及其子任务
func (tc *TaskController) DeleteTask(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	if err := tc.store.DeleteTask(uid.(string), c.Param("listId"), c.Param("taskId")); err != nil {
		config.Logger.Errorw("删除任务失败", "error", err, "uid", uid, "taskId", c.Param("taskId"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除任务失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// CompleteTask 标记任务完成并写入分析记录
func (tc *TaskController) CompleteTask(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	if err := tc.service.CompleteTask(uid.(string), c.Param("listId"), c.Param("taskId")); err != nil {
		config.Logger.Errorw("完成任务失败", "error", err, "uid", uid, "taskId", c.Param("taskId"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "完成任务失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "任务已完成"})
}

// CreateChecklistItem 创建子任务
func (tc *TaskController) CreateChecklistItem(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	var req models.CreateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	item, err := tc.store.CreateChecklistItem(uid.(string), c.Param("taskId"), req.DisplayName)
	if err != nil {
		config.Logger.Errorw("创建子任务失败", "error", err, "uid", uid, "taskId", c.Param("taskId"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建子任务失败"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateChecklistItem 部分更新子任务
func (tc *TaskController) UpdateChecklistItem(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	var req models.UpdateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	if err := tc.store.UpdateChecklistItem(uid.(string), c.Param("taskId"), c.Param("itemId"), req.Fields()); err != nil {
		config.Logger.Errorw("更新子任务失败", "error", err, "uid", uid, "itemId", c.Param("itemId"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新子任务失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

// DeleteChecklistItem 删除子任务
func (tc *TaskController) DeleteChecklistItem(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	if err := tc.store.DeleteChecklistItem(uid.(string), c.Param("taskId"), c.Param("itemId")); err != nil {
		config.Logger.Errorw("删除子任务失败", "error", err, "uid", uid, "itemId", c.Param("itemId"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除子任务失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
