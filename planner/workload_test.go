package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateContextSwitchCost(t *testing.T) {
	plan := []EnrichedTask{
		planTask("a", "work", 30, 0),
		planTask("b", "work", 30, 0),
		planTask("c", "home", 30, 0),
		planTask("d", "", 30, 0), // 空语境按 "other" 处理
		planTask("e", "other", 30, 0),
	}

	// work→home、home→other 各一次切换，other→other 不算
	assert.Equal(t, 2*ContextSwitchCostMinutes, CalculateContextSwitchCost(plan))
}

func TestWorkloadBudgetWarning(t *testing.T) {
	// 120 / 100 超出 15% 阈值，告警给出四舍五入后的超出百分比
	meta := CalculatePlannedDayMeta([]EnrichedTask{planTask("a", "work", 120, 0)}, 100)
	require.Len(t, meta.Warnings, 1)
	assert.Equal(t, "Planned time exceeds budget by 20%", meta.Warnings[0])

	// 110 / 100 没过阈值，不告警
	meta = CalculatePlannedDayMeta([]EnrichedTask{planTask("a", "work", 110, 0)}, 100)
	assert.Empty(t, meta.Warnings)
}

func TestWorkloadHighEnergyWarning(t *testing.T) {
	high := planTask("a", "work", 50, 0)
	high.Energy = "high"

	meta := CalculatePlannedDayMeta([]EnrichedTask{high}, 100)
	require.Len(t, meta.Warnings, 1)
	assert.Equal(t, "High-energy tasks exceed recommended limit", meta.Warnings[0])
	assert.Equal(t, EnergyLoad{High: 50}, meta.EnergyLoad)
}

func TestWorkloadContextSwitchWarning(t *testing.T) {
	plan := []EnrichedTask{}
	contexts := []string{"a", "b"}
	for i := 0; i < 18; i++ {
		plan = append(plan, planTask(string(rune('a'+i)), contexts[i%2], 5, 0))
	}

	meta := CalculatePlannedDayMeta(plan, 600)
	require.Len(t, meta.Warnings, 1)
	assert.Equal(t, "Too many context switches may reduce productivity", meta.Warnings[0])
}

func TestWorkloadZeroBudgetSkipsBudgetWarning(t *testing.T) {
	meta := CalculatePlannedDayMeta([]EnrichedTask{planTask("a", "work", 30, 0)}, 0)
	assert.Empty(t, meta.Warnings)
	assert.Equal(t, 30, meta.TotalMin)
}
