package models

import "time"

// TaskList 任务清单模型。一个任务在同一时刻只属于一个清单
type TaskList struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	DisplayName  string    `gorm:"type:varchar(100)" json:"displayName"`
	UserID       string    `gorm:"type:varchar(50);index:idx_lists_user" json:"user_id"`
	LastModified time.Time `json:"lastModified"`
}
