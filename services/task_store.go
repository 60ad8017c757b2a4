package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"PlanifyGo/models"
	"PlanifyGo/utils"
)

// TaskStore 任务存储接口。调用失败直接向上返回，不做重试
type TaskStore interface {
	ListLists(uid string) ([]models.TaskList, error)
	GetListByName(uid, displayName string) (*models.TaskList, error)
	CreateList(uid, displayName string) (*models.TaskList, error)
	ListTasks(uid, listID string) ([]models.Task, error)
	ListAllTasks(uid string) ([]models.Task, error)
	GetTask(uid, listID, taskID string) (*models.Task, error)
	CreateTask(uid, listID string, req *models.CreateTaskRequest) (*models.Task, error)
	UpdateTask(uid, listID, taskID string, fields map[string]interface{}) error
	DeleteTask(uid, listID, taskID string) error
	CreateChecklistItem(uid, taskID, displayName string) (*models.ChecklistItem, error)
	UpdateChecklistItem(uid, taskID, itemID string, fields map[string]interface{}) error
	DeleteChecklistItem(uid, taskID, itemID string) error
	ReplaceChecklistItems(uid, taskID string, displayNames []string) error
}

// GormTaskStore TaskStore 的 MySQL 实现
type GormTaskStore struct {
	db *gorm.DB
}

func NewGormTaskStore(db *gorm.DB) *GormTaskStore {
	return &GormTaskStore{db: db}
}

func (s *GormTaskStore) ListLists(uid string) ([]models.TaskList, error) {
	var lists []models.TaskList
	if err := s.db.Where("user_id = ?", uid).Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("获取清单失败: %w", err)
	}
	return lists, nil
}

func (s *GormTaskStore) GetListByName(uid, displayName string) (*models.TaskList, error) {
	var list models.TaskList
	err := s.db.Where("user_id = ? AND display_name = ?", uid, displayName).First(&list).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询清单失败: %w", err)
	}
	return &list, nil
}

func (s *GormTaskStore) CreateList(uid, displayName string) (*models.TaskList, error) {
	list := models.TaskList{
		ID:           utils.GenerateID(),
		DisplayName:  displayName,
		UserID:       uid,
		LastModified: time.Now().UTC(),
	}
	if err := s.db.Create(&list).Error; err != nil {
		return nil, fmt.Errorf("创建清单失败: %w", err)
	}
	return &list, nil
}

// ListTasks 获取指定清单下的未完成任务，预加载子任务并带上清单名
func (s *GormTaskStore) ListTasks(uid, listID string) ([]models.Task, error) {
	var list models.TaskList
	if err := s.db.Where("id = ? AND user_id = ?", listID, uid).First(&list).Error; err != nil {
		return nil, fmt.Errorf("清单不存在: %w", err)
	}

	var tasks []models.Task
	err := s.db.Preload("ChecklistItems").
		Where("list_id = ? AND user_id = ? AND is_completed = ?", listID, uid, false).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("获取任务失败: %w", err)
	}
	for i := range tasks {
		tasks[i].ListName = list.DisplayName
	}
	return tasks, nil
}

// ListAllTasks 获取用户全部清单下的未完成任务
func (s *GormTaskStore) ListAllTasks(uid string) ([]models.Task, error) {
	lists, err := s.ListLists(uid)
	if err != nil {
		return nil, err
	}

	all := []models.Task{}
	for _, list := range lists {
		tasks, err := s.ListTasks(uid, list.ID)
		if err != nil {
			return nil, err
		}
		all = append(all, tasks...)
	}
	return all, nil
}

func (s *GormTaskStore) GetTask(uid, listID, taskID string) (*models.Task, error) {
	var task models.Task
	err := s.db.Preload("ChecklistItems").
		Where("id = ? AND list_id = ? AND user_id = ?", taskID, listID, uid).
		First(&task).Error
	if err != nil {
		return nil, fmt.Errorf("任务不存在: %w", err)
	}
	return &task, nil
}

func (s *GormTaskStore) CreateTask(uid, listID string, req *models.CreateTaskRequest) (*models.Task, error) {
	req.ConvertToUTC()
	task := models.Task{
		ID:           utils.GenerateID(),
		Title:        req.Title,
		Body:         req.Body,
		DueDate:      req.DueDate,
		TimeZone:     req.TimeZone,
		Priority:     "normal",
		ListID:       listID,
		UserID:       uid,
		LastModified: time.Now().UTC(),
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("创建任务失败: %w", err)
	}
	return &task, nil
}

func (s *GormTaskStore) UpdateTask(uid, listID, taskID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	fields["last_modified"] = time.Now().UTC()
	result := s.db.Model(&models.Task{}).
		Where("id = ? AND list_id = ? AND user_id = ?", taskID, listID, uid).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("更新任务失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("任务不存在")
	}
	return nil
}

func (s *GormTaskStore) DeleteTask(uid, listID, taskID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND list_id = ? AND user_id = ?", taskID, listID, uid).
			Delete(&models.Task{})
		if result.Error != nil {
			return fmt.Errorf("删除任务失败: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("任务不存在")
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&models.ChecklistItem{}).Error; err != nil {
			return fmt.Errorf("删除子任务失败: %w", err)
		}
		return nil
	})
}

func (s *GormTaskStore) CreateChecklistItem(uid, taskID, displayName string) (*models.ChecklistItem, error) {
	if err := s.checkTaskOwner(uid, taskID); err != nil {
		return nil, err
	}
	item := models.ChecklistItem{
		ID:           utils.GenerateID(),
		DisplayName:  displayName,
		TaskID:       taskID,
		LastModified: time.Now().UTC(),
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("创建子任务失败: %w", err)
	}
	return &item, nil
}

func (s *GormTaskStore) UpdateChecklistItem(uid, taskID, itemID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := s.checkTaskOwner(uid, taskID); err != nil {
		return err
	}
	fields["last_modified"] = time.Now().UTC()
	result := s.db.Model(&models.ChecklistItem{}).
		Where("id = ? AND task_id = ?", itemID, taskID).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("更新子任务失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("子任务不存在")
	}
	return nil
}

func (s *GormTaskStore) DeleteChecklistItem(uid, taskID, itemID string) error {
	if err := s.checkTaskOwner(uid, taskID); err != nil {
		return err
	}
	result := s.db.Where("id = ? AND task_id = ?", itemID, taskID).Delete(&models.ChecklistItem{})
	if result.Error != nil {
		return fmt.Errorf("删除子任务失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("子任务不存在")
	}
	return nil
}

// ReplaceChecklistItems 整体替换任务的子任务，用于 AI 补全写回
func (s *GormTaskStore) ReplaceChecklistItems(uid, taskID string, displayNames []string) error {
	if err := s.checkTaskOwner(uid, taskID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.ChecklistItem{}).Error; err != nil {
			return fmt.Errorf("清理旧子任务失败: %w", err)
		}
		for _, name := range displayNames {
			item := models.ChecklistItem{
				ID:           utils.GenerateID(),
				DisplayName:  name,
				TaskID:       taskID,
				LastModified: time.Now().UTC(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("写入子任务失败: %w", err)
			}
		}
		return nil
	})
}

func (s *GormTaskStore) checkTaskOwner(uid, taskID string) error {
	var count int64
	if err := s.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, uid).
		Count(&count).Error; err != nil {
		return fmt.Errorf("校验任务归属失败: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("任务不存在")
	}
	return nil
}
