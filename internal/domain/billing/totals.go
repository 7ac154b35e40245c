// Package billing holds the pure calculation core: monetary document totals,
// recurring schedule evaluation, and percentage-based compensation. Functions
// here take plain values, never ORM entities, so they are unit-testable
// without a database.
package billing

import (
	"github.com/praxishq/praxis-api/internal/domain/enum"
)

// TotalsInput carries the inputs of the discount/tax pipeline.
type TotalsInput struct {
	Subtotal float64

	// DiscountPercent takes priority over DiscountAmount when both are set.
	DiscountPercent float64

	// DiscountAmount is a fixed discount. When ReferenceTotal is also set,
	// the amount is scaled proportionally (Subtotal * DiscountAmount /
	// ReferenceTotal) so a discount granted against the original proposal
	// total keeps the same weight on a differently-sized invoice.
	DiscountAmount float64
	ReferenceTotal float64

	TaxRate float64
	TaxType enum.TaxType
}

// Totals is the derived output of the pipeline.
type Totals struct {
	DiscountValue float64 `json:"discount_value"`
	AfterDiscount float64 `json:"after_discount"`
	TaxValue      float64 `json:"tax_value"`
	Total         float64 `json:"total"`
}

// ComputeTotals derives discount, tax and final total from a subtotal.
// Absent discount/tax inputs are zero-effect, never errors; negative or zero
// subtotals pass through unchanged. With an inclusive tax rate the tax is
// carved out of the discounted amount rather than added on top.
func ComputeTotals(in TotalsInput) Totals {
	var discount float64
	switch {
	case in.DiscountPercent > 0:
		discount = in.Subtotal * in.DiscountPercent / 100
	case in.DiscountAmount > 0 && in.ReferenceTotal > 0:
		discount = in.Subtotal * in.DiscountAmount / in.ReferenceTotal
	case in.DiscountAmount > 0:
		discount = in.DiscountAmount
	}

	after := in.Subtotal - discount
	out := Totals{
		DiscountValue: discount,
		AfterDiscount: after,
		Total:         after,
	}

	if in.TaxRate > 0 {
		if in.TaxType == enum.TaxTypeInclusive {
			out.TaxValue = after * in.TaxRate / (100 + in.TaxRate)
			out.Total = after
		} else {
			out.TaxValue = after * in.TaxRate / 100
			out.Total = after + out.TaxValue
		}
	}

	return out
}
