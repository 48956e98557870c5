package port

import (
	"context"

	"github.com/groveshop/storefront/internal/core/domain"
)

// Inbound ports.

type CartKeeper interface {
	ViewCart(ctx context.Context, sessionID string) domain.Cart
	AddItem(ctx context.Context, sessionID, name string,
		unitPrice float64, imageRef string) domain.Cart
	SetQuantity(ctx context.Context, sessionID, name string,
		quantity int) domain.Cart
	RemoveItem(ctx context.Context, sessionID, name string) domain.Cart
	ClearCart(ctx context.Context, sessionID string)
}

type CheckoutPerformer interface {
	Checkout(ctx context.Context, sessionID string,
		form domain.CheckoutForm) (domain.OrderConfirmation, error)
	LastOrder(ctx context.Context, sessionID string) (domain.Cart, string)
}

type OrderTaker interface {
	TakeOrder(ctx context.Context, req domain.CheckoutRequest,
		clientIP string) (domain.OrderConfirmation, error)
}

// Outbound ports.

type CartStore interface {
	Load(ctx context.Context, sessionID string) domain.Cart
	Save(ctx context.Context, sessionID string,
		cart domain.Cart) domain.StoreOutcome
	Clear(ctx context.Context, sessionID string)
	ArchiveOrder(ctx context.Context, sessionID string,
		snapshot domain.Cart, orderID string)
	LoadArchivedOrder(ctx context.Context, sessionID string) (domain.Cart, string)
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context,
		req domain.CheckoutRequest) (domain.OrderConfirmation, error)
}

type CatalogProvider interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ReadProduct(ctx context.Context, name string) (domain.Product, error)
}

type OrderEventsProducer interface {
	ProduceOrderPlaced(ctx context.Context, o domain.PlacedOrder) error
}

type ChallengeVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}
