package dto

// PaymentRequest entrada de un pago. Items no puede ser vacío.
type PaymentRequest struct {
	Items []PaymentItemRequest `json:"items"`
}

// PaymentItemRequest producto y cantidad a pagar.
type PaymentItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PaymentResponse resultado de un pago exitoso.
type PaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
