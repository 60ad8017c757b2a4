package models

import "time"

// ChecklistItem 子任务（清单项）模型。DisplayName 末尾可携带 "(N min)" 时长后缀
type ChecklistItem struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	DisplayName  string    `gorm:"type:varchar(200)" json:"displayName"`
	IsChecked    bool      `gorm:"default:false" json:"isChecked"`
	TaskID       string    `gorm:"type:varchar(50);index:idx_checklist_task" json:"task_id"`
	LastModified time.Time `json:"lastModified"`
}
