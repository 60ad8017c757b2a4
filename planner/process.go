package planner

import (
	"sort"
	"time"

	"PlanifyGo/models"
)

// ProcessTasks 将原始任务严格二分为"已补全"和"待确认"两类：
// 属性块解析成功的构建为 EnrichedTask 并评分，失败的原样归入待确认。
// 评分以解析顺序的完整补全集作为 peers，结果按分数降序稳定排序
func ProcessTasks(rawTasks []models.Task, now time.Time) ProcessResult {
	enriched := []EnrichedTask{}
	review := []models.Task{}

	for _, task := range rawTasks {
		if props, ok := ParseTaskProperties(task.Body); ok {
			enriched = append(enriched, EnrichedTask{Task: task, TaskProperties: *props})
		} else {
			review = append(review, task)
		}
	}

	for i := range enriched {
		enriched[i].Score = CalculateScore(enriched[i], enriched, now)
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].Score > enriched[j].Score
	})

	return ProcessResult{EnrichedTasks: enriched, ReviewTasks: review}
}

// SelectCandidates 候选筛选：没有开始日期、或开始日期不晚于今天（只比日期）
// 的任务才有资格进入当日计划。无法解析的开始日期视为未到期，任务被排除
func SelectCandidates(tasks []EnrichedTask, now time.Time) []EnrichedTask {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	candidates := []EnrichedTask{}
	for _, task := range tasks {
		if task.StartDate != "" && task.StartDate != "None" {
			startDate, err := time.ParseInLocation("2006-01-02", task.StartDate, now.Location())
			if err != nil || startDate.After(today) {
				continue
			}
		}
		candidates = append(candidates, task)
	}
	return candidates
}
