package domain

import "math"

// DefaultDepositFraction is the share of the total collected upfront
// unless overridden by configuration.
const DefaultDepositFraction = 0.5

// Quote is the pricing split for a stay. Amounts are integer Lek.
type Quote struct {
	Nights          int   `json:"nights"`
	TotalPrice      int64 `json:"totalPrice"`
	DepositAmount   int64 `json:"depositAmount"`
	RemainingAmount int64 `json:"remainingAmount"`
}

// PriceStay computes nights x rate x rooms and the deposit split.
// The remainder is derived by subtraction so the three amounts always
// sum exactly regardless of rounding.
func PriceStay(nights int, pricePerNight int64, roomsBooked int, depositFraction float64) Quote {
	total := int64(nights) * pricePerNight * int64(roomsBooked)
	deposit := int64(math.Round(float64(total) * depositFraction))
	return Quote{
		Nights:          nights,
		TotalPrice:      total,
		DepositAmount:   deposit,
		RemainingAmount: total - deposit,
	}
}
