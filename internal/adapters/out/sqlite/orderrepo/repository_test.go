package orderrepo_test

import (
	"testing"

	"checkout/internal/adapters/out/sqlite/orderrepo"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRepo(t *testing.T) *orderrepo.SqliteOrderRepository {
	t.Helper()
	repo, err := orderrepo.Open(t.Context(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func processingOrder(t *testing.T) *order.Order {
	t.Helper()
	email, _ := kernel.NewEmail("anna@example.ch")
	country, _ := kernel.NewCountry("CH")
	item, _ := order.NewItem(decimal.NewFromInt(10), 2)
	o, err := order.NewOrder(kernel.NewUUID(), email, []order.Item{item}, country)
	require.NoError(t, err)
	require.NoError(t, o.Start())
	return o
}

func TestSqliteOrderRepository_Save(t *testing.T) {
	t.Run("should store id, total and status", func(t *testing.T) {
		repo := openRepo(t)
		o := processingOrder(t)

		require.NoError(t, repo.Save(t.Context(), o, decimal.RequireFromString("19.6")))

		records, err := repo.ListProcessed(t.Context(), 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.True(t, records[0].ID.IsEqual(o.ID()))
		assert.Equal(t, order.Processing, records[0].Status)
		assert.True(t, records[0].Total.Equal(decimal.RequireFromString("19.6")), records[0].Total.String())
		assert.Empty(t, records[0].Email)
	})

	t.Run("should reject unconstructed orders", func(t *testing.T) {
		repo := openRepo(t)

		err := repo.Save(t.Context(), nil, decimal.Zero)

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

func TestSqliteOrderRepository_ListProcessed(t *testing.T) {
	repo := openRepo(t)
	first := processingOrder(t)
	second := processingOrder(t)
	third := processingOrder(t)
	for _, o := range []*order.Order{first, second, third} {
		require.NoError(t, repo.Save(t.Context(), o, decimal.NewFromInt(20)))
	}

	t.Run("should list newest first", func(t *testing.T) {
		records, err := repo.ListProcessed(t.Context(), 10)

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.True(t, records[0].ID.IsEqual(third.ID()))
		assert.True(t, records[2].ID.IsEqual(first.ID()))
	})

	t.Run("should honour the limit", func(t *testing.T) {
		records, err := repo.ListProcessed(t.Context(), 2)

		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}
