package models

import (
	"fmt"
	"time"
)

// CreateTaskRequest 创建任务请求结构体
type CreateTaskRequest struct {
	Title    string     `json:"title" binding:"required"`
	Body     string     `json:"body"`
	DueDate  *time.Time `json:"dueDate"`
	TimeZone string     `json:"timeZone"`
}

// ConvertToUTC 时区转换
func (r *CreateTaskRequest) ConvertToUTC() {
	if r.DueDate != nil {
		utcTime := r.DueDate.UTC()
		r.DueDate = &utcTime
	}
}

// UpdateTaskRequest 部分更新任务请求结构体，nil 字段不更新
type UpdateTaskRequest struct {
	Title   *string    `json:"title"`
	Body    *string    `json:"body"`
	DueDate *time.Time `json:"dueDate"`
}

// Fields 转换为部分更新字段表
func (r *UpdateTaskRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Body != nil {
		fields["body"] = *r.Body
	}
	if r.DueDate != nil {
		utcTime := r.DueDate.UTC()
		fields["due_date"] = &utcTime
	}
	return fields
}

// CreateChecklistItemRequest 创建子任务请求结构体
type CreateChecklistItemRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
}

// UpdateChecklistItemRequest 部分更新子任务请求结构体
type UpdateChecklistItemRequest struct {
	DisplayName *string `json:"displayName"`
	IsChecked   *bool   `json:"isChecked"`
}

// Fields 转换为部分更新字段表
func (r *UpdateChecklistItemRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.DisplayName != nil {
		fields["display_name"] = *r.DisplayName
	}
	if r.IsChecked != nil {
		fields["is_checked"] = *r.IsChecked
	}
	return fields
}

// GeneratePlanRequest 生成计划请求结构体。
// TimeBudget 为 0 时使用日历推算的可用时间
type GeneratePlanRequest struct {
	TimeBudget int `json:"timeBudget"`
}

// Validate 校验时间预算
func (r *GeneratePlanRequest) Validate() error {
	if r.TimeBudget < 0 {
		return fmt.Errorf("timeBudget 不能为负数")
	}
	return nil
}

// MoveTimelineItemRequest 时间轴拖拽请求结构体，Offset 为拖放位置（像素）。
// 拖到窗口起点时 Offset 为 0，因此不能加 required 校验
type MoveTimelineItemRequest struct {
	Offset float64 `json:"offset"`
}
