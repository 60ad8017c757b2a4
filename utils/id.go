package utils

import (
	"github.com/google/uuid"

	"PlanifyGo/config"
)

func GenerateID() string {
	id := uuid.New().String()
	config.Logger.Debugw("生成新ID", "id", id)
	return id
}
