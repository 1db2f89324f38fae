package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNowReturnsInjectedTime(t *testing.T) {
	pinned := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)
	ctx := WithTime(context.Background(), pinned)

	assert.Equal(t, pinned, Now(ctx))
}

func TestNowFallsBackToWallClock(t *testing.T) {
	before := time.Now()
	got := Now(context.Background())
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestInnerInjectionWins(t *testing.T) {
	outer := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)
	inner := outer.Add(time.Hour)

	ctx := WithTime(WithTime(context.Background(), outer), inner)
	assert.Equal(t, inner, Now(ctx))
}
