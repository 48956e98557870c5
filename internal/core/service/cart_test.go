package service_test

import (
	"testing"

	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/groveshop/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCartServiceAddItem(t *testing.T) {
	store := new(MockCartStore)
	s := service.NewCartService(store)

	loaded := domain.NewCart()
	loaded = loaded.AddItem("Croissant", 3.25, "img")
	want := loaded.AddItem("Croissant", 3.25, "img")

	store.On("Load", t.Context(), "sid").Return(loaded)
	store.On("Save", t.Context(), "sid", want).Return(domain.OutcomeStored)

	got := s.AddItem(t.Context(), "sid", "Croissant", 3.25, "img")
	assert.Equal(t, want, got)
	store.AssertExpectations(t)
}

func TestCartServiceSaveFailureStillReturnsCart(t *testing.T) {
	store := new(MockCartStore)
	s := service.NewCartService(store)

	store.On("Load", t.Context(), "sid").Return(domain.NewCart())
	store.On("Save", t.Context(), "sid", mock.Anything).
		Return(domain.OutcomeFailed)

	got := s.AddItem(t.Context(), "sid", "Croissant", 3.25, "img")
	assert.Equal(t, 1, got.TotalQuantity)
}

func TestCartServiceSetQuantityToZeroSkipsStore(t *testing.T) {
	store := new(MockCartStore)
	s := service.NewCartService(store)

	loaded := domain.NewCart()
	loaded = loaded.AddItem("Croissant", 3.25, "img")
	want := loaded.SetQuantity("Croissant", 0)

	store.On("Load", t.Context(), "sid").Return(loaded)
	store.On("Save", t.Context(), "sid", want).
		Return(domain.OutcomeSkippedEmpty)

	got := s.SetQuantity(t.Context(), "sid", "Croissant", 0)
	assert.True(t, got.Empty())
	store.AssertExpectations(t)
}

func TestCartServiceClearCart(t *testing.T) {
	store := new(MockCartStore)
	s := service.NewCartService(store)

	store.On("Clear", t.Context(), "sid").Return()

	s.ClearCart(t.Context(), "sid")
	store.AssertExpectations(t)
}
