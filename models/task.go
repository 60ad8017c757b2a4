package models

import (
	"strings"
	"time"
)

// Task 任务模型。Body 中可携带 "---" 包裹的属性块，属性块之后是任务描述
type Task struct {
	ID           string     `gorm:"type:varchar(50);primary_key" json:"id"`
	Title        string     `gorm:"type:varchar(200)" json:"title"`
	Body         string     `gorm:"type:text" json:"body"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	TimeZone     string     `gorm:"type:varchar(50)" json:"timeZone,omitempty"`
	IsCompleted  bool       `gorm:"default:false" json:"isCompleted"`
	Priority     string     `gorm:"type:varchar(10)" json:"priority"` // low, normal, high
	ListID       string     `gorm:"type:varchar(50);index:idx_tasks_list" json:"listId"`
	UserID       string     `gorm:"type:varchar(50);index:idx_tasks_user" json:"user_id"`
	LastModified time.Time  `json:"lastModified"`

	ChecklistItems []ChecklistItem `gorm:"foreignKey:TaskID" json:"checklistItems"`

	// ListName 来自所属清单，不落库
	ListName string `gorm:"-" json:"listName"`
}

// Description 返回属性块之后的可读描述部分
func (t *Task) Description() string {
	return DescriptionOf(t.Body)
}

// DescriptionOf 截取属性块闭合标记之后的内容。
// 以最前面的一对 "---" 为属性块边界，描述里再出现 "---" 不会被截断；
// 找不到成对标记时整个正文都是描述
func DescriptionOf(body string) string {
	if start := strings.Index(body, "---"); start >= 0 {
		rest := body[start+3:]
		if end := strings.Index(rest, "---"); end >= 0 {
			return strings.TrimSpace(rest[end+3:])
		}
	}
	return strings.TrimSpace(body)
}
