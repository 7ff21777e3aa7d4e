package investment

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "0", want: "R$ 0,00"},
		{amount: "12.5", want: "R$ 12,50"},
		{amount: "600", want: "R$ 600,00"},
		{amount: "1234.56", want: "R$ 1.234,56"},
		{amount: "1000000", want: "R$ 1.000.000,00"},
		{amount: "999.999", want: "R$ 1.000,00"},
		{amount: "-42.10", want: "R$ -42,10"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := FormatBRL(decimal.RequireFromString(tt.amount))
			if got != tt.want {
				t.Errorf("FormatBRL(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
