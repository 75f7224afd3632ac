package staging

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-todo/internal/domain"
)

func TestBuffer_AppendKeepsOrder(t *testing.T) {
	b := New()
	b.Append("buy milk")
	b.Append("call mom")
	b.Append("buy milk")

	assert.Equal(t, []string{"buy milk", "call mom", "buy milk"}, b.Snapshot())
	assert.Equal(t, 3, b.Len())
}

func TestBuffer_RemoveAt(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		want    []string
		wantErr error
	}{
		{name: "first", index: 0, want: []string{"b", "c"}},
		{name: "middle shifts tail", index: 1, want: []string{"a", "c"}},
		{name: "last", index: 2, want: []string{"a", "b"}},
		{name: "negative", index: -1, want: []string{"a", "b", "c"}, wantErr: domain.ErrOutOfRange},
		{name: "equal to length", index: 3, want: []string{"a", "b", "c"}, wantErr: domain.ErrOutOfRange},
		{name: "far out", index: 99, want: []string{"a", "b", "c"}, wantErr: domain.ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			for _, s := range []string{"a", "b", "c"} {
				b.Append(s)
			}
			err := b.RemoveAt(tt.index)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, b.Snapshot())
		})
	}
}

func TestBuffer_RemoveAtOnEmpty(t *testing.T) {
	b := New()
	require.ErrorIs(t, b.RemoveAt(0), domain.ErrOutOfRange)
	assert.Empty(t, b.Snapshot())
}

func TestBuffer_Clear(t *testing.T) {
	b := New()
	b.Append("x")
	b.Clear()
	assert.Empty(t, b.Snapshot())
	assert.Equal(t, 0, b.Len())

	b.Clear()
	assert.Equal(t, 0, b.Len())
}

func TestBuffer_SnapshotIsCopy(t *testing.T) {
	b := New()
	b.Append("x")
	snap := b.Snapshot()
	snap[0] = "changed"
	assert.Equal(t, []string{"x"}, b.Snapshot())
}

func TestBuffer_ConcurrentAppend(t *testing.T) {
	b := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Append("t")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, b.Len())
}
