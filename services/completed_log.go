package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"PlanifyGo/config"
	"PlanifyGo/models"
	"PlanifyGo/planner"
)

// CompletedTaskLog 已完成任务的只追加分析日志
type CompletedTaskLog struct {
	db *gorm.DB
}

func NewCompletedTaskLog(db *gorm.DB) *CompletedTaskLog {
	return &CompletedTaskLog{db: db}
}

// Append 追加一条完成记录。属性块解析失败时属性列留空，照样记录
func (l *CompletedTaskLog) Append(uid string, task *models.Task) error {
	record := models.CompletedTask{
		TaskID:      task.ID,
		UserID:      uid,
		CompletedAt: time.Now().UTC(),
		Title:       task.Title,
		ListName:    task.ListName,
	}

	if props, ok := planner.ParseTaskProperties(task.Body); ok {
		record.EstTime = &props.EstTime
		record.Urgency = &props.Urgency
		record.Importance = &props.Importance
		record.Context = &props.Context
		record.Energy = &props.Energy
	}

	if err := l.db.Create(&record).Error; err != nil {
		return fmt.Errorf("写入完成记录失败: %w", err)
	}
	return nil
}

// AppendQuietly 记录失败只打告警，不影响任务完成流程
func (l *CompletedTaskLog) AppendQuietly(uid string, task *models.Task) {
	if err := l.Append(uid, task); err != nil {
		config.Logger.Warnw("完成记录写入失败",
			"error", err,
			"taskId", task.ID,
			"uid", uid,
		)
	}
}
