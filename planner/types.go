// Package planner 实现计划引擎核心：任务属性解析、优先级评分、
// 候选排序、负载校验和时间轴布局。
// 所有函数都是纯函数，基于内存快照计算，可在任何状态变化后安全重跑。
package planner

import (
	"PlanifyGo/models"
)

// TaskProperties 任务属性块解析结果。
// EstTime、Urgency、Importance 三项齐全才算补全成功
type TaskProperties struct {
	EstTime        int    `json:"estTime"`
	Urgency        int    `json:"urgency"`
	Importance     int    `json:"importance"`
	Energy         string `json:"energy"`
	Context        string `json:"context"`
	StartDate      string `json:"startDate,omitempty"`
	Sequence       int    `json:"sequence,omitempty"`
	ParentTaskID   string `json:"parentTaskId,omitempty"`
	SuggestedStart string `json:"suggestedStart,omitempty"`
}

// EnrichedTask 已补全属性的任务。
// 由 ProcessTasks 一次性构建，下游不再通过字段探测推断任务状态
type EnrichedTask struct {
	models.Task
	TaskProperties
	Score int `json:"score"`
}

// ProcessResult 任务分类结果。每个输入任务恰好落入其中一类
type ProcessResult struct {
	EnrichedTasks []EnrichedTask `json:"enrichedTasks"`
	ReviewTasks   []models.Task  `json:"reviewTasks"`
}

// EnergyLoad 各精力等级的计划分钟数
type EnergyLoad struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// PlannedDayMeta 当日计划的负载元数据，每次生成计划时重新计算
type PlannedDayMeta struct {
	TotalMin   int        `json:"totalMin"`
	EnergyLoad EnergyLoad `json:"energyLoad"`
	Warnings   []string   `json:"warnings"`
}

// PlanResult 计划生成结果：排序后的任务列表加负载元数据
type PlanResult struct {
	Plan []EnrichedTask `json:"plan"`
	Meta PlannedDayMeta `json:"meta"`
}
