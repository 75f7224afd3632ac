package domain

import (
	"context"
	"time"
)

// Item 已保存的待办，只属于一个用户
type Item struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Text      string    `gorm:"type:text" json:"text"`
	AuthorID  string    `gorm:"column:author_id;size:36;index;not null" json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Item) TableName() string { return "todo" }

type ItemRepository interface {
	Create(ctx context.Context, it *Item) error
	CreateBatch(ctx context.Context, items []Item) error
	FindByID(ctx context.Context, id string) (*Item, error)
	// ListByOwner 按 id 升序（即插入顺序）
	ListByOwner(ctx context.Context, ownerID string) ([]Item, error)
	// Delete id 不存在时不报错
	Delete(ctx context.Context, id string) error
	DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error)
}
