package httphandler

type (
	AddItemRequest struct {
		Name         string  `json:"name"`
		PricePerUnit float64 `json:"pricePerUnit"`
		ImageURL     string  `json:"imageUrl"`
	}

	SetQuantityRequest struct {
		Name string `json:"name"`
		Qty  int    `json:"qty"`
	}

	RemoveItemRequest struct {
		Name string `json:"name"`
	}

	CartItemResponse struct {
		Qty          int     `json:"qty"`
		PricePerUnit float64 `json:"pricePerUnit"`
		Price        float64 `json:"price"`
		ImageURL     string  `json:"imageUrl"`
	}

	CartResponse struct {
		Items      map[string]CartItemResponse `json:"items"`
		TotalQty   int                         `json:"totalQty"`
		TotalPrice float64                     `json:"totalPrice"`
	}

	ProductResponse struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		ImageURL    string  `json:"imageUrl"`
	}

	CheckoutRequest struct {
		Phone        string `json:"phone"`
		Email        string `json:"email"`
		Verification string `json:"verification"`
		Shipping     string `json:"shipping"`
		CFToken      string `json:"cf_token"`
	}

	CheckoutAccepted struct {
		OrderID  string `json:"orderId"`
		Redirect string `json:"redirect"`
	}

	CheckoutRefused struct {
		Detail         string `json:"detail"`
		ResetChallenge bool   `json:"resetChallenge"`
	}
)
