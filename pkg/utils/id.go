package utils

import "github.com/google/uuid"

// NewID 随机 ID（用户）
func NewID() string { return uuid.NewString() }

// NewOrderedID 按时间递增的 ID（条目按 id 排序即插入顺序）
func NewOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
