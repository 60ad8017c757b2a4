package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"PlanifyGo/config"
)

// TimelineOverrideStore 管理用户手动拖拽产生的时间轴覆盖位置。
// 按用户和日期存成 Redis 哈希：timeline:{uid}:{YYYY-MM-DD}，
// 字段是条目 ID，值是距窗口起点的分钟数
type TimelineOverrideStore struct {
	client *redis.Client
}

func NewTimelineOverrideStore(client *redis.Client) *TimelineOverrideStore {
	return &TimelineOverrideStore{client: client}
}

func overrideKey(uid string, day time.Time) string {
	return fmt.Sprintf("timeline:%s:%s", uid, day.Format("2006-01-02"))
}

// Get 读取当天全部覆盖位置
func (s *TimelineOverrideStore) Get(ctx context.Context, uid string, day time.Time) (map[string]int, error) {
	raw, err := s.client.HGetAll(ctx, overrideKey(uid, day)).Result()
	if err != nil {
		return nil, fmt.Errorf("读取时间轴覆盖失败: %w", err)
	}

	overrides := make(map[string]int, len(raw))
	for itemID, value := range raw {
		minutes, err := strconv.Atoi(value)
		if err != nil {
			config.Logger.Warnw("忽略损坏的时间轴覆盖", "itemId", itemID, "value", value)
			continue
		}
		overrides[itemID] = minutes
	}
	return overrides, nil
}

// Set 记录一个条目的覆盖位置，随键设置两天过期兜底
func (s *TimelineOverrideStore) Set(ctx context.Context, uid string, day time.Time, itemID string, minutes int) error {
	key := overrideKey(uid, day)
	if err := s.client.HSet(ctx, key, itemID, minutes).Err(); err != nil {
		return fmt.Errorf("写入时间轴覆盖失败: %w", err)
	}
	if err := s.client.Expire(ctx, key, 48*time.Hour).Err(); err != nil {
		return fmt.Errorf("设置覆盖过期时间失败: %w", err)
	}
	return nil
}

// Clear 清空用户当天的覆盖
func (s *TimelineOverrideStore) Clear(ctx context.Context, uid string, day time.Time) error {
	if err := s.client.Del(ctx, overrideKey(uid, day)).Err(); err != nil {
		return fmt.Errorf("清空时间轴覆盖失败: %w", err)
	}
	return nil
}

// CleanupExpired 删除非今天的覆盖键，由每日定时任务调用
func (s *TimelineOverrideStore) CleanupExpired(ctx context.Context, now time.Time) error {
	today := now.Format("2006-01-02")
	var cursor uint64
	removed := 0
	for {
		keys, next, err := s.client.Scan(ctx, cursor, "timeline:*", 200).Result()
		if err != nil {
			return fmt.Errorf("扫描时间轴覆盖键失败: %w", err)
		}
		for _, key := range keys {
			// 键尾部是日期
			if len(key) < len(today) || key[len(key)-len(today):] == today {
				continue
			}
			if err := s.client.Del(ctx, key).Err(); err != nil {
				return fmt.Errorf("删除过期覆盖键失败: %w", err)
			}
			removed++
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if removed > 0 {
		config.Logger.Infow("清理过期时间轴覆盖", "removed", removed)
	}
	return nil
}
