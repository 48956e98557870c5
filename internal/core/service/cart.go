package service

import (
	"context"
	"log/slog"

	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/groveshop/storefront/internal/core/port"
)

var _ port.CartKeeper = (*CartService)(nil)

// A CartService applies cart mutations and persists the result after every
// one of them. Persistence is fail-soft: a failed save is logged and the
// mutated cart is still returned, so the user keeps an authoritative cart
// for the rest of the page lifetime.
type CartService struct {
	store port.CartStore
}

func NewCartService(store port.CartStore) CartService {
	return CartService{store}
}

func (s CartService) ViewCart(
	ctx context.Context, sessionID string,
) domain.Cart {
	return s.store.Load(ctx, sessionID)
}

func (s CartService) AddItem(
	ctx context.Context, sessionID, name string,
	unitPrice float64, imageRef string,
) domain.Cart {
	const op = "CartService.AddItem"

	cart := s.store.Load(ctx, sessionID)
	cart = cart.AddItem(name, unitPrice, imageRef)
	s.persist(ctx, op, sessionID, cart)
	return cart
}

func (s CartService) SetQuantity(
	ctx context.Context, sessionID, name string, quantity int,
) domain.Cart {
	const op = "CartService.SetQuantity"

	cart := s.store.Load(ctx, sessionID)
	cart = cart.SetQuantity(name, quantity)
	s.persist(ctx, op, sessionID, cart)
	return cart
}

func (s CartService) RemoveItem(
	ctx context.Context, sessionID, name string,
) domain.Cart {
	const op = "CartService.RemoveItem"

	cart := s.store.Load(ctx, sessionID)
	cart = cart.RemoveItem(name)
	s.persist(ctx, op, sessionID, cart)
	return cart
}

func (s CartService) ClearCart(ctx context.Context, sessionID string) {
	s.store.Clear(ctx, sessionID)
}

func (s CartService) persist(
	ctx context.Context, op, sessionID string, cart domain.Cart,
) {
	outcome := s.store.Save(ctx, sessionID, cart)
	if outcome == domain.OutcomeFailed {
		slog.Warn("cart not persisted, in-memory state stays authoritative",
			"op", op, "outcome", outcome.String())
	}
}
