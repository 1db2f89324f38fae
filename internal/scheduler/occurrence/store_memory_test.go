package occurrence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regimen/pkg/platform/sentinel"
)

func TestInMemoryClaim(t *testing.T) {
	ctx := context.Background()
	occurredAt := time.Date(2025, time.June, 8, 23, 59, 0, 0, time.UTC).Unix()

	t.Run("first claim wins, second is rejected", func(t *testing.T) {
		store := NewInMemory()
		require.NoError(t, store.Claim(ctx, "gym", occurredAt))
		assert.ErrorIs(t, store.Claim(ctx, "gym", occurredAt), sentinel.ErrAlreadyClaimed)
	})

	t.Run("different routines share an instant", func(t *testing.T) {
		store := NewInMemory()
		require.NoError(t, store.Claim(ctx, "gym", occurredAt))
		require.NoError(t, store.Claim(ctx, "socials", occurredAt))
	})

	t.Run("different instants of one routine are independent", func(t *testing.T) {
		store := NewInMemory()
		require.NoError(t, store.Claim(ctx, "food", occurredAt))
		require.NoError(t, store.Claim(ctx, "food", occurredAt+86400))
	})

	t.Run("exactly one of many concurrent claimants succeeds", func(t *testing.T) {
		store := NewInMemory()

		const n = 50
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := store.Claim(ctx, "gym", occurredAt); err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, wins)
	})
}
