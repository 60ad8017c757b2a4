package models

import "time"

// CompletedTask 已完成任务的分析记录，只追加不修改。
// 未补全属性的任务对应字段为空
type CompletedTask struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID      string    `gorm:"type:varchar(50)" json:"taskId"`
	UserID      string    `gorm:"type:varchar(50);index:idx_completed_user" json:"user_id"`
	CompletedAt time.Time `json:"completedAt"`
	Title       string    `gorm:"type:varchar(200)" json:"title"`
	EstTime     *int      `json:"estTime"`
	Urgency     *int      `json:"urgency"`
	Importance  *int      `json:"importance"`
	Context     *string   `gorm:"type:varchar(50)" json:"context"`
	ListName    string    `gorm:"type:varchar(100)" json:"listName"`
	Energy      *string   `gorm:"type:varchar(10)" json:"energy"`
}

// 表名
func (CompletedTask) TableName() string {
	return "completed_tasks"
}
