package cartstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/groveshop/storefront/internal/adapter/cartstore"
	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenKV struct {
	err error
}

func (kv brokenKV) Get(context.Context, string) (string, error) {
	return "", kv.err
}

func (kv brokenKV) Set(context.Context, string, string) error {
	return kv.err
}

func (kv brokenKV) Del(context.Context, ...string) error {
	return kv.err
}

func sampleCart() domain.Cart {
	c := domain.NewCart()
	c = c.AddItem("Sourdough Loaf", 6.50, "/img/sourdough.webp")
	c = c.AddItem("Croissant", 3.25, "/img/croissant.webp")
	c = c.SetQuantity("Croissant", 4)
	return c
}

func TestRepositorySaveLoad(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		repo := cartstore.NewRepository(cartstore.NewMemoryKV())
		cart := sampleCart()

		outcome := repo.Save(t.Context(), "sid", cart)
		require.Equal(t, domain.OutcomeStored, outcome)

		got := repo.Load(t.Context(), "sid")
		assert.Equal(t, cart, got)
	})

	t.Run("MissingRecordLoadsEmpty", func(t *testing.T) {
		repo := cartstore.NewRepository(cartstore.NewMemoryKV())

		got := repo.Load(t.Context(), "nobody")
		assert.True(t, got.Empty())
		assert.NotNil(t, got.Items)
	})

	t.Run("EmptyCartClearsRecord", func(t *testing.T) {
		kv := cartstore.NewMemoryKV()
		repo := cartstore.NewRepository(kv)

		require.Equal(t,
			domain.OutcomeStored, repo.Save(t.Context(), "sid", sampleCart()))

		empty := sampleCart().
			RemoveItem("Sourdough Loaf").
			RemoveItem("Croissant")
		outcome := repo.Save(t.Context(), "sid", empty)
		assert.Equal(t, domain.OutcomeSkippedEmpty, outcome)
		assert.True(t, repo.Load(t.Context(), "sid").Empty())
	})

	t.Run("ZeroQuantityEntriesCountAsEmpty", func(t *testing.T) {
		repo := cartstore.NewRepository(cartstore.NewMemoryKV())

		cart := domain.NewCart()
		cart = cart.AddItem("Croissant", 3.25, "img")
		cart = cart.SetQuantity("Croissant", 0)

		outcome := repo.Save(t.Context(), "sid", cart)
		assert.Equal(t, domain.OutcomeSkippedEmpty, outcome)
	})

	t.Run("WriteFailureReportedInOutcome", func(t *testing.T) {
		repo := cartstore.NewRepository(brokenKV{errors.New("conn reset")})

		outcome := repo.Save(t.Context(), "sid", sampleCart())
		assert.Equal(t, domain.OutcomeFailed, outcome)
	})

	t.Run("ReadFailureLoadsEmpty", func(t *testing.T) {
		repo := cartstore.NewRepository(brokenKV{errors.New("conn reset")})

		got := repo.Load(t.Context(), "sid")
		assert.True(t, got.Empty())
	})
}

func TestRepositoryLoadBrokenRecord(t *testing.T) {
	kv := cartstore.NewMemoryKV()
	repo := cartstore.NewRepository(kv)

	require.NoError(t, kv.Set(t.Context(), "cart:sid", "{not json"))

	got := repo.Load(t.Context(), "sid")
	assert.True(t, got.Empty())
}

func TestRepositoryArchiveOrder(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		repo := cartstore.NewRepository(cartstore.NewMemoryKV())
		cart := sampleCart()

		repo.ArchiveOrder(t.Context(), "sid", cart, "A1B2C3D4")

		snapshot, orderID := repo.LoadArchivedOrder(t.Context(), "sid")
		assert.Equal(t, cart, snapshot)
		assert.Equal(t, "A1B2C3D4", orderID)
	})

	t.Run("NothingArchived", func(t *testing.T) {
		repo := cartstore.NewRepository(cartstore.NewMemoryKV())

		snapshot, orderID := repo.LoadArchivedOrder(t.Context(), "sid")
		assert.True(t, snapshot.Empty())
		assert.Empty(t, orderID)
	})

	t.Run("SurvivesClear", func(t *testing.T) {
		repo := cartstore.NewRepository(cartstore.NewMemoryKV())
		cart := sampleCart()

		require.Equal(t,
			domain.OutcomeStored, repo.Save(t.Context(), "sid", cart))
		repo.ArchiveOrder(t.Context(), "sid", cart, "A1B2C3D4")
		repo.Clear(t.Context(), "sid")

		assert.True(t, repo.Load(t.Context(), "sid").Empty())
		snapshot, orderID := repo.LoadArchivedOrder(t.Context(), "sid")
		assert.Equal(t, cart, snapshot)
		assert.Equal(t, "A1B2C3D4", orderID)
	})
}
