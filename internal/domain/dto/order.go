package dto

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	UserID string             `json:"userId" validate:"required,uuid4"`
	Items  []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ProgressOrderRequest asks the order engine to move an order to a status.
type ProgressOrderRequest struct {
	Status string `json:"status" validate:"required"`
}
