package paymentservice

// RefundRequest запрос на возврат платежа
type RefundRequest struct {
	PaymentRef string `json:"payment_ref"`
	Amount     int64  `json:"amount"` // minor units
	Reason     string `json:"reason,omitempty"`
}

// RefundResult результат инициации возврата
// Success false с заполненным Message - отказ шлюза, не ошибка клиента
type RefundResult struct {
	Success  bool   `json:"success"`
	RefundID string `json:"refund_id,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ErrorResponse модель ошибки от PaymentService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
