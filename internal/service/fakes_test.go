package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"go-gin-gorm-todo/internal/domain"
)

// fakeUsers 内存版 UserRepository；err 非空时所有调用都失败
type fakeUsers struct {
	mu    sync.Mutex
	byID  map[string]*domain.User
	seq   int
	err   error
	calls int
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[string]*domain.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	for _, e := range f.byID {
		if e.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	f.seq++
	u.ID = "u" + strconv.Itoa(f.seq)
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

// fakeItems 内存版 ItemRepository，保持插入顺序
type fakeItems struct {
	mu      sync.Mutex
	rows    []domain.Item
	seq     int
	err     error
	touched int
}

func (f *fakeItems) Create(ctx context.Context, it *domain.Item) error {
	items := []domain.Item{*it}
	if err := f.CreateBatch(ctx, items); err != nil {
		return err
	}
	*it = items[0]
	return nil
}

func (f *fakeItems) CreateBatch(_ context.Context, items []domain.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched++
	if f.err != nil {
		return f.err
	}
	for i := range items {
		f.seq++
		items[i].ID = "i" + strconv.Itoa(f.seq)
		f.rows = append(f.rows, items[i])
	}
	return nil
}

func (f *fakeItems) FindByID(_ context.Context, id string) (*domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched++
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.rows {
		if r.ID == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeItems) ListByOwner(_ context.Context, ownerID string) ([]domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched++
	if f.err != nil {
		return nil, f.err
	}
	out := []domain.Item{}
	for _, r := range f.rows {
		if r.AuthorID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeItems) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched++
	if f.err != nil {
		return f.err
	}
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeItems) DeleteAllByOwner(_ context.Context, ownerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched++
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.AuthorID == ownerID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return n, nil
}

// plainHasher 测试用：digest = "h:" + password
type plainHasher struct{ err error }

func (h plainHasher) Hash(pw string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "h:" + pw, nil
}

func (plainHasher) Verify(digest, pw string) bool { return digest == "h:"+pw }

var errStore = errors.New("store down")
