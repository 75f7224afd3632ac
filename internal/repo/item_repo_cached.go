package repo

import (
	"context"

	"go.uber.org/zap"

	"go-gin-gorm-todo/internal/core/cache"
	"go-gin-gorm-todo/internal/domain"
)

var _ domain.ItemRepository = (*CachedItemRepo)(nil)

// CachedItemRepo 按用户缓存 ListByOwner；写操作后删对应 key
type CachedItemRepo struct {
	next  domain.ItemRepository
	cache *cache.Cache
	log   *zap.Logger
}

func NewCachedItemRepo(next domain.ItemRepository, c *cache.Cache, l *zap.Logger) *CachedItemRepo {
	if l == nil {
		l = zap.NewNop()
	}
	return &CachedItemRepo{next: next, cache: c, log: l}
}

func ownerKey(ownerID string) string { return "todo:items:" + ownerID }

func (r *CachedItemRepo) invalidate(ctx context.Context, ownerIDs ...string) {
	keys := make([]string, 0, len(ownerIDs))
	seen := map[string]struct{}{}
	for _, id := range ownerIDs {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, ownerKey(id))
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		// 失效失败最多读到 TTL 内的旧数据
		r.log.Warn("item cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (r *CachedItemRepo) Create(ctx context.Context, it *domain.Item) error {
	if err := r.next.Create(ctx, it); err != nil {
		return err
	}
	r.invalidate(ctx, it.AuthorID)
	return nil
}

func (r *CachedItemRepo) CreateBatch(ctx context.Context, items []domain.Item) error {
	if err := r.next.CreateBatch(ctx, items); err != nil {
		return err
	}
	owners := make([]string, 0, len(items))
	for _, it := range items {
		owners = append(owners, it.AuthorID)
	}
	r.invalidate(ctx, owners...)
	return nil
}

func (r *CachedItemRepo) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	return r.next.FindByID(ctx, id)
}

func (r *CachedItemRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	items, err := cache.GetOrLoadJSON(r.cache, ctx, ownerKey(ownerID), r.cache.TTL,
		func(ctx context.Context) (*[]domain.Item, error) {
			list, e := r.next.ListByOwner(ctx, ownerID)
			if e != nil {
				return nil, e
			}
			return &list, nil
		})
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []domain.Item{}, nil
	}
	return *items, nil
}

// Delete 需要先查出归属才能精确失效
func (r *CachedItemRepo) Delete(ctx context.Context, id string) error {
	it, err := r.next.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	if it != nil {
		r.invalidate(ctx, it.AuthorID)
	}
	return nil
}

func (r *CachedItemRepo) DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error) {
	n, err := r.next.DeleteAllByOwner(ctx, ownerID)
	if err != nil {
		return n, err
	}
	r.invalidate(ctx, ownerID)
	return n, nil
}
