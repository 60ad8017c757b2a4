package planner

import (
	"sort"
)

// ContextGroup 同一语境下的任务组，组内保持输入相对顺序
type ContextGroup struct {
	Context string
	Tasks   []EnrichedTask
}

// GroupTasksByContext 按语境分组，组的顺序为语境首次出现的顺序。
// 语境为空的任务归入 "other"
func GroupTasksByContext(tasks []EnrichedTask) []ContextGroup {
	index := map[string]int{}
	groups := []ContextGroup{}
	for _, task := range tasks {
		context := task.Context
		if context == "" {
			context = "other"
		}
		i, ok := index[context]
		if !ok {
			i = len(groups)
			index[context] = i
			groups = append(groups, ContextGroup{Context: context})
		}
		groups[i].Tasks = append(groups[i].Tasks, task)
	}
	return groups
}

// OptimizeTaskOrder 在时间预算内贪心装入任务组：
// 组按首个成员分数降序排列；整组装得下就全取，装不下则只取组内
// 单个时长仍在剩余预算内的任务。部分装入后继续评估后面的组，
// 低分组里的小任务仍有机会填进剩余预算。这是既定策略，不要改成硬停
func OptimizeTaskOrder(tasks []EnrichedTask, timeBudget int) []EnrichedTask {
	groups := GroupTasksByContext(tasks)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Tasks[0].Score > groups[j].Tasks[0].Score
	})

	plan := []EnrichedTask{}
	remaining := timeBudget

	for _, group := range groups {
		groupTime := 0
		for _, task := range group.Tasks {
			groupTime += task.EstTime
		}

		if groupTime <= remaining {
			plan = append(plan, group.Tasks...)
			remaining -= groupTime
			continue
		}

		// 部分装入：逐个对比组评估开始时的剩余预算，跳过装不下的大任务
		partialTime := 0
		for _, task := range group.Tasks {
			if task.EstTime <= remaining {
				plan = append(plan, task)
				partialTime += task.EstTime
			}
		}
		remaining -= partialTime
	}

	return plan
}

// BuildDependencyGraph 从 parentTaskId 构建父任务到子任务的邻接表
func BuildDependencyGraph(tasks []EnrichedTask) map[string][]string {
	graph := map[string][]string{}
	for _, task := range tasks {
		if task.ParentTaskID != "" {
			graph[task.ParentTaskID] = append(graph[task.ParentTaskID], task.ID)
		}
	}
	return graph
}

// TopologicalSort 对计划做依赖排序：深度优先后序输出，
// 子任务（前置依赖）先于父任务出现。已访问的节点直接跳过，
// 畸形的环只会让该分支提前结束而不会死循环
func TopologicalSort(tasks []EnrichedTask, dependencies map[string][]string) []EnrichedTask {
	byID := make(map[string]EnrichedTask, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}

	isChild := map[string]bool{}
	for _, children := range dependencies {
		for _, id := range children {
			isChild[id] = true
		}
	}

	visited := map[string]bool{}
	result := make([]EnrichedTask, 0, len(tasks))

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, dep := range dependencies[id] {
			visit(dep)
		}
		if task, ok := byID[id]; ok {
			result = append(result, task)
		}
	}

	for _, task := range tasks {
		if !isChild[task.ID] {
			visit(task.ID)
		}
	}
	// 父任务不在计划里的孤儿子任务也不能丢
	for _, task := range tasks {
		visit(task.ID)
	}

	return result
}

// GenerateOptimizedPlan 计划生成入口：排序装箱、依赖排序、负载校验三步走
func GenerateOptimizedPlan(candidates []EnrichedTask, timeBudget int) PlanResult {
	optimized := OptimizeTaskOrder(candidates, timeBudget)

	dependencies := BuildDependencyGraph(optimized)
	if len(dependencies) > 0 {
		optimized = TopologicalSort(optimized, dependencies)
	}

	meta := CalculatePlannedDayMeta(optimized, timeBudget)

	return PlanResult{Plan: optimized, Meta: meta}
}
