package http

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	CustomerName string                   `json:"customerName"`
	Items        []CreateOrderItemRequest `json:"items"`
}

// CreateOrderItemRequest is one requested order line.
type CreateOrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// UpdateOrderStatusRequest is the body of PATCH /orders/{id}/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse is the API representation of an order.
type OrderResponse struct {
	ID           int64               `json:"id"`
	CustomerName string              `json:"customerName"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items"`
}

// OrderItemResponse is the API representation of one order line.
type OrderItemResponse struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// ErrorResponse is the common error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
