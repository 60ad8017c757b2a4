package services

import (
	"context"
	"fmt"
	"time"

	"PlanifyGo/config"
	"PlanifyGo/models"
	"PlanifyGo/planner"
)

// PlanListName 当日计划专用清单名，导出时不存在则自动创建
const PlanListName = "Today's Plan"

// PlannerService 计划编排服务：拉取快照、生成计划、AI 补全、导出和时间轴
type PlannerService struct {
	store     TaskStore
	log       *CompletedTaskLog
	estimates *EstimateService
	overrides *TimelineOverrideStore
}

func NewPlannerService(store TaskStore, log *CompletedTaskLog, estimates *EstimateService, overrides *TimelineOverrideStore) *PlannerService {
	return &PlannerService{
		store:     store,
		log:       log,
		estimates: estimates,
		overrides: overrides,
	}
}

// Snapshot 任务快照三分区：当日计划、可规划任务、待确认任务
type Snapshot struct {
	TodaysPlan       []planner.EnrichedTask `json:"todaysPlan"`
	AvailableTasks   []planner.EnrichedTask `json:"availableTasks"`
	NeedsReviewTasks []models.Task          `json:"needsReviewTasks"`
}

// processAll 拉取用户全部未完成任务并做补全分类，
// 返回的 EnrichedTasks 保持全局分数降序
func (s *PlannerService) processAll(uid string, now time.Time) (planner.ProcessResult, error) {
	rawTasks, err := s.store.ListAllTasks(uid)
	if err != nil {
		return planner.ProcessResult{}, err
	}
	return planner.ProcessTasks(rawTasks, now), nil
}

// FetchSnapshot 拉取用户全部未完成任务并按补全状态和所属清单分区
func (s *PlannerService) FetchSnapshot(uid string, now time.Time) (*Snapshot, error) {
	result, err := s.processAll(uid, now)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		TodaysPlan:       []planner.EnrichedTask{},
		AvailableTasks:   []planner.EnrichedTask{},
		NeedsReviewTasks: result.ReviewTasks,
	}
	for _, task := range result.EnrichedTasks {
		if task.ListName == PlanListName {
			snapshot.TodaysPlan = append(snapshot.TodaysPlan, task)
		} else {
			snapshot.AvailableTasks = append(snapshot.AvailableTasks, task)
		}
	}
	return snapshot, nil
}

// GeneratePlan 候选筛选加优化排序，输入预算为分钟数。
// 候选必须取自全局分数降序的补全结果，分组排名和组内顺序都依赖它，
// 不能用清单分区重新拼接
func (s *PlannerService) GeneratePlan(uid string, timeBudget int, now time.Time) (*planner.PlanResult, error) {
	processed, err := s.processAll(uid, now)
	if err != nil {
		return nil, err
	}

	candidates := planner.SelectCandidates(processed.EnrichedTasks, now)
	result := planner.GenerateOptimizedPlan(candidates, timeBudget)
	return &result, nil
}

// MapImportance 重要度映射到存储优先级
func MapImportance(importance int) string {
	switch {
	case importance <= 3:
		return "low"
	case importance <= 7:
		return "normal"
	default:
		return "high"
	}
}

// ExportPlan 把生成的计划批量搬入当日计划清单。
// 逐个任务执行"在计划清单创建、从原清单删除"，失败的记入明细，
// 已成功的不回滚
func (s *PlannerService) ExportPlan(uid string, timeBudget int, now time.Time) (*models.ExportPlanResponse, error) {
	result, err := s.GeneratePlan(uid, timeBudget, now)
	if err != nil {
		return nil, err
	}
	if len(result.Plan) == 0 {
		return nil, fmt.Errorf("没有可导出的计划")
	}

	planList, err := s.store.GetListByName(uid, PlanListName)
	if err != nil {
		return nil, err
	}
	if planList == nil {
		planList, err = s.store.CreateList(uid, PlanListName)
		if err != nil {
			return nil, err
		}
	}

	response := &models.ExportPlanResponse{Failures: []models.ExportFailure{}}
	for _, task := range result.Plan {
		if task.ListID == planList.ID {
			continue
		}
		if err := s.moveTaskToPlan(uid, planList.ID, task); err != nil {
			config.Logger.Errorw("导出任务失败",
				"error", err,
				"taskId", task.ID,
				"title", task.Title,
			)
			response.Failed++
			response.Failures = append(response.Failures, models.ExportFailure{
				TaskID: task.ID,
				Title:  task.Title,
				Error:  err.Error(),
			})
			continue
		}
		response.Moved++
	}
	return response, nil
}

func (s *PlannerService) moveTaskToPlan(uid, planListID string, task planner.EnrichedTask) error {
	created, err := s.store.CreateTask(uid, planListID, &models.CreateTaskRequest{
		Title:    task.Title,
		Body:     task.Body,
		DueDate:  task.DueDate,
		TimeZone: task.TimeZone,
	})
	if err != nil {
		return err
	}

	// 导出时把重要度落成存储优先级
	if err := s.store.UpdateTask(uid, planListID, created.ID, map[string]interface{}{
		"priority": MapImportance(task.Importance),
	}); err != nil {
		return err
	}

	// 子任务跟随任务一起搬
	if len(task.ChecklistItems) > 0 {
		names := make([]string, 0, len(task.ChecklistItems))
		for _, item := range task.ChecklistItems {
			names = append(names, item.DisplayName)
		}
		if err := s.store.ReplaceChecklistItems(uid, created.ID, names); err != nil {
			return err
		}
	}

	return s.store.DeleteTask(uid, task.ListID, task.ID)
}

// EnrichTask 对单个任务做 AI 补全并写回：
// 属性块序列化进任务正文，AI 给出的子任务整体替换原有清单项
func (s *PlannerService) EnrichTask(ctx context.Context, uid, listID, taskID string) (*EstimateResult, error) {
	task, err := s.store.GetTask(uid, listID, taskID)
	if err != nil {
		return nil, err
	}

	estimate, err := s.estimates.Estimate(ctx, task)
	if err != nil {
		return nil, err
	}

	props := planner.TaskProperties{
		EstTime:    estimate.EstTime,
		Urgency:    estimate.Urgency,
		Importance: estimate.Importance,
		Energy:     estimate.Energy,
		Context:    estimate.Context,
		StartDate:  estimate.StartDate,
	}
	body := planner.SerializeProperties(props, task.Description())
	if err := s.store.UpdateTask(uid, listID, taskID, map[string]interface{}{"body": body}); err != nil {
		return nil, err
	}

	if len(estimate.Subtasks) > 0 {
		names := make([]string, 0, len(estimate.Subtasks))
		for _, sub := range estimate.Subtasks {
			names = append(names, planner.FormatChecklistItem(sub.Title, sub.EstTime))
		}
		if err := s.store.ReplaceChecklistItems(uid, taskID, names); err != nil {
			return nil, err
		}
	}

	return estimate, nil
}

// EnrichAll 批量补全全部待确认任务。每个任务独立成败，汇总上报
func (s *PlannerService) EnrichAll(ctx context.Context, uid string, now time.Time) (*models.EnrichBatchResponse, error) {
	snapshot, err := s.FetchSnapshot(uid, now)
	if err != nil {
		return nil, err
	}

	response := &models.EnrichBatchResponse{
		Total:  len(snapshot.NeedsReviewTasks),
		Errors: []string{},
	}
	for _, task := range snapshot.NeedsReviewTasks {
		if _, err := s.EnrichTask(ctx, uid, task.ListID, task.ID); err != nil {
			response.Failed++
			response.Errors = append(response.Errors, fmt.Sprintf("%s: %v", task.Title, err))
			continue
		}
		response.Succeeded++
	}
	return response, nil
}

// CompleteTask 标记任务完成并追加分析记录，记录失败不阻断完成
func (s *PlannerService) CompleteTask(uid, listID, taskID string) error {
	task, err := s.store.GetTask(uid, listID, taskID)
	if err != nil {
		return err
	}

	if err := s.store.UpdateTask(uid, listID, taskID, map[string]interface{}{"is_completed": true}); err != nil {
		return err
	}

	s.log.AppendQuietly(uid, task)
	return nil
}

// BuildTimeline 用当日计划、日历事件和手动覆盖计算时间轴布局。
// 没有可排内容时返回 (nil, false)
func (s *PlannerService) BuildTimeline(ctx context.Context, uid string, events []models.CalendarEvent, now time.Time) (*planner.TimelineLayout, bool, error) {
	snapshot, err := s.FetchSnapshot(uid, now)
	if err != nil {
		return nil, false, err
	}

	overrides, err := s.overrides.Get(ctx, uid, now)
	if err != nil {
		return nil, false, err
	}

	layout, ok := planner.LayoutTimeline(snapshot.TodaysPlan, events, overrides, now)
	return layout, ok, nil
}

// MoveTimelineItem 提交拖拽：落点坐标换算回窗口分钟数并记为覆盖，
// 然后重算布局返回
func (s *PlannerService) MoveTimelineItem(ctx context.Context, uid, itemID string, offset float64, events []models.CalendarEvent, now time.Time) (*planner.TimelineLayout, bool, error) {
	minutes := planner.OffsetToWindowMinutes(offset)
	if minutes < 0 {
		minutes = 0
	}
	if err := s.overrides.Set(ctx, uid, now, itemID, minutes); err != nil {
		return nil, false, err
	}
	return s.BuildTimeline(ctx, uid, events, now)
}
