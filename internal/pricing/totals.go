package pricing

// ExtraFee is a named percentage surcharge configured per restaurant.
// Percentage is expected in [0, 100] but is not checked here.
type ExtraFee struct {
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"`
}

// CalculatedFee is one ExtraFee applied to a subtotal.
type CalculatedFee struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// OrderTotals is the itemized result of CalculateOrderTotals.
type OrderTotals struct {
	Subtotal    float64         `json:"subtotal"`
	ExtraFees   []CalculatedFee `json:"extra_fees"`
	DeliveryFee float64         `json:"delivery_fee"`
	Total       float64         `json:"total"`
}

// CalculateOrderTotals applies every extra fee to the original subtotal
// (fees never compound) and adds the delivery fee.
//
// A nil fee list behaves exactly like an empty one. No rounding is done:
// Total is always Subtotal + DeliveryFee + the sum of the fee amounts.
func CalculateOrderTotals(subtotal float64, extraFees []ExtraFee, deliveryFee float64) OrderTotals {
	fees := make([]CalculatedFee, 0, len(extraFees))
	for _, fee := range extraFees {
		fees = append(fees, CalculatedFee{
			Label:  fee.Label,
			Amount: subtotal * (fee.Percentage / 100),
		})
	}

	return OrderTotals{
		Subtotal:    subtotal,
		ExtraFees:   fees,
		DeliveryFee: deliveryFee,
		Total:       subtotal + deliveryFee + SumFees(fees),
	}
}

// SumFees adds fee amounts left to right starting from zero.
func SumFees(fees []CalculatedFee) float64 {
	var sum float64
	for _, fee := range fees {
		sum += fee.Amount
	}
	return sum
}
