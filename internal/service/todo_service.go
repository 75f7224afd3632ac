package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-gin-gorm-todo/internal/domain"
	"go-gin-gorm-todo/internal/feature/staging"
)

// Board 首页视图：共享暂存区 + 当前用户已保存的条目
type Board struct {
	Staged []string      `json:"staged"`
	Saved  []domain.Item `json:"saved"`
}

type TodoOptions struct {
	// StrictOwnership 删除单条已保存条目时校验归属
	StrictOwnership bool
}

// TodoService 暂存区与条目存储之间的流转；uid 为空表示匿名
type TodoService struct {
	staged *staging.Buffer
	items  domain.ItemRepository
	opts   TodoOptions
	log    *zap.Logger
}

func NewTodoService(staged *staging.Buffer, items domain.ItemRepository, opts TodoOptions, l *zap.Logger) *TodoService {
	if l == nil {
		l = zap.NewNop()
	}
	return &TodoService{staged: staged, items: items, opts: opts, log: l}
}

// Stage 追加到共享暂存区；空白文本视为缺少必填项
func (s *TodoService) Stage(text string) error {
	if err := domain.Require([2]string{"text", text}); err != nil {
		return err
	}
	s.staged.Append(text)
	return nil
}

func (s *TodoService) Unstage(index int) error {
	return s.staged.RemoveAt(index)
}

func (s *TodoService) Board(ctx context.Context, uid string) (Board, error) {
	b := Board{Staged: s.staged.Snapshot(), Saved: []domain.Item{}}
	if uid == "" {
		return b, nil
	}
	saved, err := s.items.ListByOwner(ctx, uid)
	if err != nil {
		return b, fmt.Errorf("list items: %w", err)
	}
	b.Saved = saved
	return b, nil
}

// SaveList 把暂存区每条文本存成 uid 名下的新条目，然后清空暂存区。
// 写库与清空不是一个原子操作：两步之间其他访客追加的内容会被一起清掉。
func (s *TodoService) SaveList(ctx context.Context, uid string) (int, error) {
	if uid == "" {
		return 0, domain.ErrAuthRequired
	}
	texts := s.staged.Snapshot()
	if len(texts) == 0 {
		return 0, domain.ErrEmptyList
	}
	items := make([]domain.Item, 0, len(texts))
	for _, t := range texts {
		items = append(items, domain.Item{Text: t, AuthorID: uid})
	}
	if err := s.items.CreateBatch(ctx, items); err != nil {
		return 0, fmt.Errorf("save items: %w", err)
	}
	s.staged.Clear()
	s.log.Info("staged list saved", zap.String("uid", uid), zap.Int("count", len(items)))
	return len(items), nil
}

// NewList 清空暂存区；已登录时同时删掉该用户全部已保存条目
func (s *TodoService) NewList(ctx context.Context, uid string) error {
	s.staged.Clear()
	if uid == "" {
		return nil
	}
	n, err := s.items.DeleteAllByOwner(ctx, uid)
	if err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	s.log.Info("list reset", zap.String("uid", uid), zap.Int64("deleted", n))
	return nil
}

// DeleteSaved 默认不校验归属（任何知道 id 的调用方都能删）；
// StrictOwnership 打开后只有条目所有者可删
func (s *TodoService) DeleteSaved(ctx context.Context, uid, itemID string) error {
	if itemID == "" {
		return domain.ErrValidation
	}
	if s.opts.StrictOwnership {
		it, err := s.items.FindByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("find item: %w", err)
		}
		if it == nil {
			return nil
		}
		if uid == "" {
			return domain.ErrAuthRequired
		}
		if it.AuthorID != uid {
			return domain.ErrForbidden
		}
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
