package planner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	propertiesBlockRe = regexp.MustCompile(`(?s)---(.*?)---`)
	keyValueRe        = regexp.MustCompile(`(?i)(EstTime|Urgency|Importance|Energy|Context|StartDate|sequence|parentTaskId|suggestedStart):\s*(\S+)`)
	checklistSuffixRe = regexp.MustCompile(`^(.*) \((\d+)\s*min\)$`)
)

// ParseTaskProperties 从任务正文中解析属性块。
// 只有 EstTime、Urgency、Importance 三项都存在且非零才视为补全成功，
// 否则返回 false，任务留待人工确认。正文没有属性块时同样返回 false
func ParseTaskProperties(body string) (*TaskProperties, bool) {
	blockMatch := propertiesBlockRe.FindStringSubmatch(body)
	if blockMatch == nil {
		return nil, false
	}

	props := TaskProperties{}
	for _, kv := range keyValueRe.FindAllStringSubmatch(blockMatch[1], -1) {
		key := strings.ToLower(kv[1])
		value := kv[2]
		switch key {
		case "esttime":
			props.EstTime, _ = strconv.Atoi(value)
		case "urgency":
			props.Urgency, _ = strconv.Atoi(value)
		case "importance":
			props.Importance, _ = strconv.Atoi(value)
		case "sequence":
			props.Sequence, _ = strconv.Atoi(value)
		case "energy":
			props.Energy = value
		case "context":
			props.Context = value
		case "startdate":
			props.StartDate = value
		case "parenttaskid":
			props.ParentTaskID = value
		case "suggestedstart":
			props.SuggestedStart = value
		}
	}

	if props.EstTime == 0 || props.Urgency == 0 || props.Importance == 0 {
		return nil, false
	}

	if props.Energy == "" {
		props.Energy = "medium"
	}
	if props.Context == "" {
		props.Context = "none"
	}
	return &props, true
}

// SerializeProperties 将属性序列化为属性块并拼接描述，
// 输出必须能被 ParseTaskProperties 原样解析回来
func SerializeProperties(props TaskProperties, description string) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "EstTime: %d\n", props.EstTime)
	fmt.Fprintf(&b, "Urgency: %d\n", props.Urgency)
	fmt.Fprintf(&b, "Importance: %d\n", props.Importance)
	fmt.Fprintf(&b, "Energy: %s\n", props.Energy)
	fmt.Fprintf(&b, "Context: %s\n", props.Context)
	startDate := props.StartDate
	if startDate == "" {
		startDate = "None"
	}
	fmt.Fprintf(&b, "StartDate: %s\n", startDate)
	if props.Sequence != 0 {
		fmt.Fprintf(&b, "sequence: %d\n", props.Sequence)
	}
	if props.ParentTaskID != "" {
		fmt.Fprintf(&b, "parentTaskId: %s\n", props.ParentTaskID)
	}
	if props.SuggestedStart != "" {
		fmt.Fprintf(&b, "suggestedStart: %s\n", props.SuggestedStart)
	}
	b.WriteString("---\n")
	b.WriteString(description)
	return b.String()
}

// ParseChecklistDuration 解析子任务名称末尾的时长后缀 "<title> (<N> min)"。
// 没有合法后缀时返回 false，对应子任务不参与排期
func ParseChecklistDuration(displayName string) (title string, minutes int, ok bool) {
	m := checklistSuffixRe.FindStringSubmatch(displayName)
	if m == nil {
		return "", 0, false
	}
	minutes, err := strconv.Atoi(m[2])
	if err != nil || minutes <= 0 {
		return "", 0, false
	}
	return strings.TrimSpace(m[1]), minutes, true
}

// FormatChecklistItem 生成带时长后缀的子任务名称，与 ParseChecklistDuration 互逆
func FormatChecklistItem(title string, minutes int) string {
	return fmt.Sprintf("%s (%d min)", title, minutes)
}
