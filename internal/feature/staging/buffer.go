// Package staging 暂存区：进程内唯一、不区分用户的有序待办列表。
//
// 所有访客（无论是否登录）读写同一个序列，互相可见、可删、可清空；
// 这里的锁只保证单次调用的内存安全，不提供会话隔离。进程重启即丢失。
package staging

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"go-gin-gorm-todo/internal/domain"
)

var stagedItems = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "todo_staged_items",
	Help: "Number of entries in the shared staging buffer",
})

func init() { prometheus.MustRegister(stagedItems) }

type Buffer struct {
	mu    sync.Mutex
	items []string
}

func New() *Buffer { return &Buffer{} }

// Append 追加到末尾；不去重、不限长
func (b *Buffer) Append(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, text)
	stagedItems.Set(float64(len(b.items)))
}

// RemoveAt 按位置删除，后面的元素前移；越界时返回 ErrOutOfRange 且不改动
func (b *Buffer) RemoveAt(index int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.items) {
		return domain.ErrOutOfRange
	}
	b.items = append(b.items[:index], b.items[index+1:]...)
	stagedItems.Set(float64(len(b.items)))
	return nil
}

func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = nil
	stagedItems.Set(0)
}

// Snapshot 当前内容的拷贝
func (b *Buffer) Snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}
