package domain

// A CheckoutForm carries the user's raw checkout input before validation.
type CheckoutForm struct {
	Phone        string
	Email        string
	Verification string
	Shipping     string
	BotToken     string
}

// A CheckoutRequest is the validated, immutable submission unit: the form
// fields plus a snapshot of the cart taken at submission time.
type CheckoutRequest struct {
	Phone        string
	Email        string
	Verification string
	Shipping     string
	BotToken     string
	Order        Cart
}

func NewCheckoutRequest(form CheckoutForm, cart Cart) CheckoutRequest {
	return CheckoutRequest{
		Phone:        form.Phone,
		Email:        form.Email,
		Verification: form.Verification,
		Shipping:     form.Shipping,
		BotToken:     form.BotToken,
		Order:        cart,
	}
}

type OrderConfirmation struct {
	OrderID string
}

// A CheckoutStage names the orchestrator state a checkout failed in.
type CheckoutStage int

const (
	StageIdle CheckoutStage = iota
	StageValidating
	StageSubmitting
)

func (s CheckoutStage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageValidating:
		return "validating"
	case StageSubmitting:
		return "submitting"
	}
	return "unknown"
}

// A CheckoutError is a user-visible checkout failure. ResetChallenge tells
// the caller the bot-verification widget must be reset before a retry;
// validation failures never require it because no submission happened.
type CheckoutError struct {
	Message        string
	Stage          CheckoutStage
	ResetChallenge bool
}

func (e *CheckoutError) Error() string {
	return e.Message
}
