// Package pricing derives the fee, tax and total of a booking from a base
// price and participant count.
package pricing

import (
	"math"
	"strconv"
)

const (
	// ServiceFeeRate is applied to the subtotal.
	ServiceFeeRate = 0.10
	// TaxRate is applied to subtotal plus service fee.
	TaxRate = 0.05
)

// Breakdown is the derived price record for one booking. Amounts are whole
// New Taiwan dollars.
type Breakdown struct {
	BasePrice    int64 `json:"basePrice" yaml:"base_price"`
	Participants int   `json:"participants" yaml:"participants"`
	Subtotal     int64 `json:"subtotal" yaml:"subtotal"`
	ServiceFee   int64 `json:"serviceFee" yaml:"service_fee"`
	Tax          int64 `json:"tax" yaml:"tax"`
	Total        int64 `json:"total" yaml:"total"`
}

// Calculate computes the breakdown. The service fee is rounded first and
// the tax is computed on the rounded sum, so the order of the two rounds
// matters for the total.
func Calculate(price int64, participants int) Breakdown {
	if participants < 0 {
		participants = 0
	}
	subtotal := price * int64(participants)
	fee := round(float64(subtotal) * ServiceFeeRate)
	tax := round(float64(subtotal+fee) * TaxRate)
	return Breakdown{
		BasePrice:    price,
		Participants: participants,
		Subtotal:     subtotal,
		ServiceFee:   fee,
		Tax:          tax,
		Total:        subtotal + fee + tax,
	}
}

// round is half-up rounding, matching Math.round in the web client
// (-2.5 rounds to -2).
func round(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// Format renders an amount as NT$1,848.
func Format(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range len(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	if neg {
		return "-NT$" + string(out)
	}
	return "NT$" + string(out)
}
