package errorz

import "errors"

var (
	NotFound            = errors.New("not found")
	EmptyOrder          = errors.New("order has no items")
	OutOfStock          = errors.New("product out of stock")
	InvalidTransition   = errors.New("invalid order status transition")
	FulfillmentFailed   = errors.New("order fulfillment failed")
	PaymentRequest      = errors.New("payment provider rejected the request")
	PaymentNotInitiated = errors.New("payment not initiated")
	AlreadyAssigned     = errors.New("task already has an assignee")
	NotAssignee         = errors.New("user is not the task assignee")
	NotReviewer         = errors.New("user is not the task reviewer")
	Unqualified         = errors.New("user is missing required skill badges")
	AlreadyParticipant  = errors.New("user already participates in the event")
	SoldOut             = errors.New("event is sold out")
	EventOver           = errors.New("event has already started")
	InvalidStatus       = errors.New("invalid status")
	InvalidCode         = errors.New("invalid validation code")
)
