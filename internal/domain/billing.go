package domain

import "math"

const DefaultTipRate = 0.10

type Bill struct {
	Consumption  int64   `json:"consumption"`
	TipRate      float64 `json:"tipRate"`
	SuggestedTip int64   `json:"suggestedTip"`
	Total        int64   `json:"total"`
}

// ComputeTotal is a pure preview of what the guest owes. The suggested tip is
// always reported; it is added to Total only when includeTip is set.
func ComputeTotal(consumption int64, rate float64, includeTip bool) Bill {
	tip := int64(math.Round(float64(consumption) * rate))
	b := Bill{Consumption: consumption, TipRate: rate, SuggestedTip: tip, Total: consumption}
	if includeTip {
		b.Total += tip
	}
	return b
}

// Consumption sums unitPrice*quantity in line item order.
func Consumption(items []LineItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.UnitPrice * int64(it.Quantity)
	}
	return sum
}

type Settlement struct {
	TotalWithTip  int64         `json:"totalWithTip"`
	Tip           int64         `json:"tip"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

func (s Settlement) Validate() error {
	if s.TotalWithTip < 0 || s.Tip < 0 {
		return Invalid("amounts must not be negative")
	}
	if s.Tip > s.TotalWithTip {
		return Invalid("tip %d exceeds total %d", s.Tip, s.TotalWithTip)
	}
	if !s.PaymentMethod.Valid() {
		return Invalid("unknown payment method %q", s.PaymentMethod)
	}
	return nil
}

// ValidateItems checks an addItems batch before it reaches storage.
func ValidateItems(items []NewItem) error {
	if len(items) == 0 {
		return Invalid("at least one item is required")
	}
	for i, it := range items {
		if it.ProductID <= 0 {
			return Invalid("item %d: productId is required", i)
		}
		if it.Quantity <= 0 {
			return Invalid("item %d: quantity must be positive", i)
		}
		if it.UnitPrice != nil && *it.UnitPrice < 0 {
			return Invalid("item %d: unitPrice must not be negative", i)
		}
	}
	return nil
}
