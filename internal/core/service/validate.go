package service

import (
	"regexp"

	"github.com/groveshop/storefront/internal/core/domain"
)

// North-American 10-digit numbers with an optional leading +1 and flexible
// separators.
var phonePattern = regexp.MustCompile(
	`^(\+?1 *[ -.])?(\d{3}) *[ .-]?(\d{3}) *[ .-]?(\d{4}) *$`,
)

var emailPattern = regexp.MustCompile(
	`^[^@\s]+@[^@\s]+\.[a-zA-Z]{2,}$`,
)

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validateCheckoutForm short-circuits on the first failing check. No
// network call is made and no challenge reset is needed for these.
func validateCheckoutForm(form domain.CheckoutForm) error {
	if !ValidPhone(form.Phone) {
		return &domain.CheckoutError{
			Message: MsgInvalidPhone,
			Stage:   domain.StageValidating,
		}
	}
	if !ValidEmail(form.Email) {
		return &domain.CheckoutError{
			Message: MsgInvalidEmail,
			Stage:   domain.StageValidating,
		}
	}
	if form.BotToken == "" {
		return &domain.CheckoutError{
			Message: MsgMissingChallenge,
			Stage:   domain.StageValidating,
		}
	}
	return nil
}
