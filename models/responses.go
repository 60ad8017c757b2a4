package models

// ExportFailure 单条导出失败详情
type ExportFailure struct {
	TaskID string `json:"taskId"`
	Title  string `json:"title"`
	Error  string `json:"error"`
}

// ExportPlanResponse 计划导出响应结构体。
// 逐条执行，成功的不回滚，失败的汇总上报
type ExportPlanResponse struct {
	Moved    int             `json:"moved"`
	Failed   int             `json:"failed"`
	Failures []ExportFailure `json:"failures,omitempty"`
}

// EnrichBatchResponse 批量补全响应结构体
type EnrichBatchResponse struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// CalendarEventsResponse 日历事件响应结构体，附带推算出的可用时间
type CalendarEventsResponse struct {
	Events     []CalendarEvent `json:"events"`
	TimeBudget int             `json:"timeBudget"`
}
