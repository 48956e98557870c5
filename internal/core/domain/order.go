package domain

import "strings"

// A PlacedOrder is an accepted order as published on the events topic.
type PlacedOrder struct {
	OrderID  string
	Phone    string
	Email    string
	Shipping string
	Order    Cart
}

// A FieldIssue is one field-level validation failure of an order intake.
type FieldIssue struct {
	Loc string
	Msg string
}

// An OrderRejection is returned by the order intake when a submission is
// refused. Either Issues carries field-level failures or Message carries a
// single rejection reason.
type OrderRejection struct {
	Issues  []FieldIssue
	Message string
}

func (e *OrderRejection) Error() string {
	if len(e.Issues) == 0 {
		return e.Message
	}
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Msg
	}
	return strings.Join(msgs, ". ")
}
