package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-gin-gorm-todo/internal/domain"
	"go-gin-gorm-todo/pkg/utils"
)

var _ domain.ItemRepository = (*ItemRepo)(nil)

type ItemRepo struct{ db *gorm.DB }

func NewItemRepo(db *gorm.DB) *ItemRepo { return &ItemRepo{db: db} }

func (r *ItemRepo) Create(ctx context.Context, it *domain.Item) error {
	if it.ID == "" {
		it.ID = utils.NewOrderedID()
	}
	return r.db.WithContext(ctx).Create(it).Error
}

// CreateBatch 一条 INSERT 写入（超过 CreateBatchSize 时分批）
func (r *ItemRepo) CreateBatch(ctx context.Context, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = utils.NewOrderedID()
		}
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *ItemRepo) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	var it domain.Item
	err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ItemRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	items := []domain.Item{}
	err := r.db.WithContext(ctx).
		Where("author_id = ?", ownerID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Item{}).Error
}

func (r *ItemRepo) DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("author_id = ?", ownerID).Delete(&domain.Item{})
	return res.RowsAffected, res.Error
}
