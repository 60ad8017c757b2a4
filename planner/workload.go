package planner

import (
	"fmt"
	"math"
)

const (
	// ContextSwitchCostMinutes 相邻任务语境切换一次的固定时间代价
	ContextSwitchCostMinutes = 3
	// OverloadThreshold 计划总时长超出预算该比例才告警
	OverloadThreshold = 1.15
	// HighEnergyLimitPercent 高精力任务占预算的建议上限
	HighEnergyLimitPercent = 40
	// MaxContextSwitchesPerDay 每日语境切换次数建议上限
	MaxContextSwitchesPerDay = 8
)

// CalculateContextSwitchCost 统计相邻任务语境切换的累计代价（分钟）。
// 只用于阈值判断，不计入计划总时长
func CalculateContextSwitchCost(plan []EnrichedTask) int {
	totalCost := 0
	prevContext := ""
	for _, task := range plan {
		context := task.Context
		if context == "" {
			context = "other"
		}
		if prevContext != "" && context != prevContext {
			totalCost += ContextSwitchCostMinutes
		}
		prevContext = context
	}
	return totalCost
}

// CalculatePlannedDayMeta 计算当日计划的负载元数据并产出告警。
// 三条告警独立判断，顺序固定：超预算、高精力超限、切换过多。
// 告警只是建议，不阻断计划
func CalculatePlannedDayMeta(plan []EnrichedTask, timeBudget int) PlannedDayMeta {
	totalMin := 0
	energyLoad := EnergyLoad{}
	for _, task := range plan {
		totalMin += task.EstTime
		switch task.Energy {
		case "low":
			energyLoad.Low += task.EstTime
		case "medium":
			energyLoad.Medium += task.EstTime
		case "high":
			energyLoad.High += task.EstTime
		}
	}

	warnings := []string{}
	if timeBudget > 0 && float64(totalMin) > float64(timeBudget)*OverloadThreshold {
		overagePercent := int(math.Round((float64(totalMin)/float64(timeBudget) - 1) * 100))
		warnings = append(warnings, fmt.Sprintf("Planned time exceeds budget by %d%%", overagePercent))
	}
	if float64(energyLoad.High) > float64(timeBudget)*HighEnergyLimitPercent/100 {
		warnings = append(warnings, "High-energy tasks exceed recommended limit")
	}
	if CalculateContextSwitchCost(plan) > MaxContextSwitchesPerDay*ContextSwitchCostMinutes {
		warnings = append(warnings, "Too many context switches may reduce productivity")
	}

	return PlannedDayMeta{TotalMin: totalMin, EnergyLoad: energyLoad, Warnings: warnings}
}
