package cache

import (
	"context"
	"testing"
	"time"

	"github.com/ecuDickens/project-orders-backend/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryProductCache(t *testing.T) {
	ctx := context.Background()
	product, err := catalog.NewProduct("widget-1", catalog.ProductTypeOneTime, 30000)
	require.NoError(t, err)

	t.Run("set then get", func(t *testing.T) {
		c := NewInMemoryProductCache(time.Minute)
		c.Set(ctx, product)

		got, ok := c.Get(ctx, "widget-1")
		require.True(t, ok)
		assert.Equal(t, "widget-1", got.SKU)
		assert.Equal(t, int64(30000), got.ListPrice)
	})

	t.Run("miss on unknown sku", func(t *testing.T) {
		c := NewInMemoryProductCache(time.Minute)
		_, ok := c.Get(ctx, "missing")
		assert.False(t, ok)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		c := NewInMemoryProductCache(time.Millisecond)
		c.Set(ctx, product)
		time.Sleep(5 * time.Millisecond)

		_, ok := c.Get(ctx, "widget-1")
		assert.False(t, ok)
	})

	t.Run("invalidate removes entry", func(t *testing.T) {
		c := NewInMemoryProductCache(time.Minute)
		c.Set(ctx, product)
		c.Invalidate(ctx, "widget-1")

		_, ok := c.Get(ctx, "widget-1")
		assert.False(t, ok)
	})

	t.Run("returned product is a copy", func(t *testing.T) {
		c := NewInMemoryProductCache(time.Minute)
		c.Set(ctx, product)

		got, ok := c.Get(ctx, "widget-1")
		require.True(t, ok)
		got.ListPrice = 1

		again, ok := c.Get(ctx, "widget-1")
		require.True(t, ok)
		assert.Equal(t, int64(30000), again.ListPrice)
	})
}
