// Package cartstore persists the session cart in a key/value store with
// fail-soft semantics: a missing or broken record loads as an empty cart
// and a failed write is logged, never surfaced.
package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/groveshop/storefront/internal/core/port"
)

var ErrNotFound = errors.New("cartstore: key not found")

// A KV is the minimal key/value surface the repository needs. Get returns
// ErrNotFound for absent keys.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

const (
	cartKeyPrefix    = "cart:"
	oldCartKeyPrefix = "oldcart:"
	orderIDKeyPrefix = "orderId:"
)

func cartKey(sessionID string) string    { return cartKeyPrefix + sessionID }
func oldCartKey(sessionID string) string { return oldCartKeyPrefix + sessionID }
func orderIDKey(sessionID string) string { return orderIDKeyPrefix + sessionID }

// Wire shape of the persisted cart record.
type (
	cartRecord struct {
		Items      map[string]cartItemRecord `json:"items"`
		TotalQty   int                       `json:"totalQty"`
		TotalPrice float64                   `json:"totalPrice"`
	}

	cartItemRecord struct {
		Qty          int     `json:"qty"`
		PricePerUnit float64 `json:"pricePerUnit"`
		Price        float64 `json:"price"`
		ImageURL     string  `json:"imageUrl"`
	}
)

func toRecord(c domain.Cart) cartRecord {
	r := cartRecord{
		Items:      make(map[string]cartItemRecord, len(c.Items)),
		TotalQty:   c.TotalQuantity,
		TotalPrice: c.TotalPrice,
	}
	for name, item := range c.Items {
		r.Items[name] = cartItemRecord{
			Qty:          item.Quantity,
			PricePerUnit: item.UnitPrice,
			Price:        item.LineTotal,
			ImageURL:     item.ImageRef,
		}
	}
	return r
}

func toDomain(r cartRecord) domain.Cart {
	c := domain.NewCart()
	c.TotalQuantity = r.TotalQty
	c.TotalPrice = r.TotalPrice
	for name, item := range r.Items {
		c.Items[name] = domain.CartItem{
			Quantity:  item.Qty,
			UnitPrice: item.PricePerUnit,
			LineTotal: item.Price,
			ImageRef:  item.ImageURL,
		}
	}
	return c
}

var _ port.CartStore = (*Repository)(nil)

type Repository struct {
	kv KV
}

func NewRepository(kv KV) Repository {
	return Repository{kv}
}

// Load returns the persisted cart, or an empty cart when no record exists
// or the record does not parse. Parse errors never propagate.
func (r Repository) Load(
	ctx context.Context, sessionID string,
) domain.Cart {
	const op = "Repository.Load"

	raw, err := r.kv.Get(ctx, cartKey(sessionID))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Warn("failed to read cart record", "op", op, "err", err)
		}
		return domain.NewCart()
	}

	var rec cartRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		slog.Warn("broken cart record, starting empty", "op", op, "err", err)
		return domain.NewCart()
	}
	return toDomain(rec)
}

// Save writes the serialized cart. An empty cart clears the record instead
// of storing it. Failures are logged and reported in the outcome only.
func (r Repository) Save(
	ctx context.Context, sessionID string, cart domain.Cart,
) domain.StoreOutcome {
	const op = "Repository.Save"
	log := slog.With("op", op)

	if cart.TotalQuantity == 0 {
		if err := r.kv.Del(ctx, cartKey(sessionID)); err != nil {
			log.Error("failed to clear empty cart", "err", err)
			return domain.OutcomeFailed
		}
		return domain.OutcomeSkippedEmpty
	}

	b, err := json.Marshal(toRecord(cart))
	if err != nil {
		log.Error("failed to serialize cart", "err", err)
		return domain.OutcomeFailed
	}

	if err := r.kv.Set(ctx, cartKey(sessionID), string(b)); err != nil {
		log.Error("failed to store cart", "err", err)
		return domain.OutcomeFailed
	}
	return domain.OutcomeStored
}

func (r Repository) Clear(ctx context.Context, sessionID string) {
	const op = "Repository.Clear"

	if err := r.kv.Del(ctx, cartKey(sessionID)); err != nil {
		slog.Error("failed to clear cart", "op", op, "err", err)
	}
}

// ArchiveOrder stores the submitted snapshot and order id in the secondary
// slots read back by the success page. Fail-soft like Save.
func (r Repository) ArchiveOrder(
	ctx context.Context, sessionID string,
	snapshot domain.Cart, orderID string,
) {
	const op = "Repository.ArchiveOrder"
	log := slog.With("op", op)

	b, err := json.Marshal(toRecord(snapshot))
	if err != nil {
		log.Error("failed to serialize snapshot", "err", err)
		return
	}
	if err := r.kv.Set(ctx, oldCartKey(sessionID), string(b)); err != nil {
		log.Error("failed to archive snapshot", "err", err)
	}
	if err := r.kv.Set(ctx, orderIDKey(sessionID), orderID); err != nil {
		log.Error("failed to archive order id", "err", err)
	}
}

func (r Repository) LoadArchivedOrder(
	ctx context.Context, sessionID string,
) (domain.Cart, string) {
	const op = "Repository.LoadArchivedOrder"

	orderID, err := r.kv.Get(ctx, orderIDKey(sessionID))
	if err != nil && !errors.Is(err, ErrNotFound) {
		slog.Warn("failed to read archived order id", "op", op, "err", err)
	}

	raw, err := r.kv.Get(ctx, oldCartKey(sessionID))
	if err != nil {
		return domain.NewCart(), orderID
	}

	var rec cartRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return domain.NewCart(), orderID
	}
	return toDomain(rec), orderID
}
