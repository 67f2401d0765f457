package domain

import "testing"

func TestPriceStaySplitInvariant(t *testing.T) {
	cases := []struct {
		nights   int
		rate     int64
		rooms    int
		fraction float64
	}{
		{1, 5000, 1, 0.5},
		{2, 5000, 1, 0.5},
		{3, 8000, 2, 0.5},
		{7, 12000, 1, 0.3},
		{5, 7777, 3, 0.5}, // odd total forces rounding on the deposit
		{10, 9999, 2, 0.25},
	}
	for _, c := range cases {
		q := PriceStay(c.nights, c.rate, c.rooms, c.fraction)
		want := int64(c.nights) * c.rate * int64(c.rooms)
		if q.TotalPrice != want {
			t.Fatalf("total = %d, want %d (nights=%d rate=%d rooms=%d)", q.TotalPrice, want, c.nights, c.rate, c.rooms)
		}
		if q.DepositAmount+q.RemainingAmount != q.TotalPrice {
			t.Fatalf("deposit %d + remaining %d != total %d", q.DepositAmount, q.RemainingAmount, q.TotalPrice)
		}
	}
}

func TestPriceStayStandardTwoNights(t *testing.T) {
	// Standard room, 2 nights at 5000 Lek, one room.
	q := PriceStay(2, 5000, 1, 0.5)
	if q.TotalPrice != 10000 || q.DepositAmount != 5000 || q.RemainingAmount != 5000 {
		t.Fatalf("got total=%d deposit=%d remaining=%d, want 10000/5000/5000", q.TotalPrice, q.DepositAmount, q.RemainingAmount)
	}
	if q.Nights != 2 {
		t.Fatalf("nights = %d, want 2", q.Nights)
	}
}
