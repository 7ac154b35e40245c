package billing

import (
	"math"
	"testing"

	"github.com/praxishq/praxis-api/internal/domain/enum"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name string
		in   TotalsInput
		want Totals
	}{
		{
			name: "no discount no tax",
			in:   TotalsInput{Subtotal: 500},
			want: Totals{DiscountValue: 0, AfterDiscount: 500, TaxValue: 0, Total: 500},
		},
		{
			name: "percent discount with exclusive tax",
			in: TotalsInput{
				Subtotal:        1000,
				DiscountPercent: 10,
				TaxRate:         23,
				TaxType:         enum.TaxTypeExclusive,
			},
			want: Totals{DiscountValue: 100, AfterDiscount: 900, TaxValue: 207, Total: 1107},
		},
		{
			name: "percent discount with inclusive tax carves tax out",
			in: TotalsInput{
				Subtotal:        1000,
				DiscountPercent: 10,
				TaxRate:         23,
				TaxType:         enum.TaxTypeInclusive,
			},
			want: Totals{DiscountValue: 100, AfterDiscount: 900, TaxValue: 168.29, Total: 900},
		},
		{
			name: "fixed discount applied directly",
			in:   TotalsInput{Subtotal: 1000, DiscountAmount: 150},
			want: Totals{DiscountValue: 150, AfterDiscount: 850, TaxValue: 0, Total: 850},
		},
		{
			name: "fixed discount scaled against reference total",
			in: TotalsInput{
				Subtotal:       500,
				DiscountAmount: 100,
				ReferenceTotal: 1000,
			},
			want: Totals{DiscountValue: 50, AfterDiscount: 450, TaxValue: 0, Total: 450},
		},
		{
			name: "percent takes priority over fixed",
			in: TotalsInput{
				Subtotal:        1000,
				DiscountPercent: 10,
				DiscountAmount:  999,
			},
			want: Totals{DiscountValue: 100, AfterDiscount: 900, TaxValue: 0, Total: 900},
		},
		{
			name: "zero subtotal passes through",
			in:   TotalsInput{Subtotal: 0, TaxRate: 23, TaxType: enum.TaxTypeExclusive},
			want: Totals{DiscountValue: 0, AfterDiscount: 0, TaxValue: 0, Total: 0},
		},
		{
			name: "negative subtotal passes through unchanged",
			in:   TotalsInput{Subtotal: -200},
			want: Totals{DiscountValue: 0, AfterDiscount: -200, TaxValue: 0, Total: -200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.in)
			if !almostEqual(got.DiscountValue, tt.want.DiscountValue) {
				t.Errorf("DiscountValue = %v, want %v", got.DiscountValue, tt.want.DiscountValue)
			}
			if !almostEqual(got.AfterDiscount, tt.want.AfterDiscount) {
				t.Errorf("AfterDiscount = %v, want %v", got.AfterDiscount, tt.want.AfterDiscount)
			}
			if !almostEqual(got.TaxValue, tt.want.TaxValue) {
				t.Errorf("TaxValue = %v, want %v", got.TaxValue, tt.want.TaxValue)
			}
			if !almostEqual(got.Total, tt.want.Total) {
				t.Errorf("Total = %v, want %v", got.Total, tt.want.Total)
			}
		})
	}
}
