package pipeline

import (
	"github.com/zoe5466/Gudiee-sub001/types"
)

// OrderContext carries state through an order submission.
type OrderContext struct {
	Request   types.CreateOrderRequest
	Payment   types.PaymentRequest
	Order     *types.Order
	Completed []string
	Warnings  []string
}

// NewOrderContext creates an OrderContext for the given request.
func NewOrderContext(req types.CreateOrderRequest, payment types.PaymentRequest) *OrderContext {
	return &OrderContext{Request: req, Payment: payment}
}

// AddWarning appends a warning message to the context.
func (oc *OrderContext) AddWarning(msg string) {
	oc.Warnings = append(oc.Warnings, msg)
}
