package utils

import "testing"

func TestFormatLek(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 Lek"},
		{5000, "5.000 Lek"},
		{12000, "12.000 Lek"},
		{123, "123 Lek"},
		{1234567, "1.234.567 Lek"},
		{-8000, "-8.000 Lek"},
	}
	for _, c := range cases {
		if got := FormatLek(c.in); got != c.want {
			t.Fatalf("FormatLek(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
