// Package reservation folds the heterogeneous upfront/recurring components
// of a reserved-instance entry into one effective hourly rate.
package reservation

import (
	"github.com/shopspring/decimal"

	"awsprice/pkg/pricing"
)

// HoursPerMonth converts the source's monthlyStar columns to hourly rates.
// 730 is the source's own convention, kept for fidelity with its published
// figures.
var HoursPerMonth = decimal.NewFromInt(730)

// Amortization hours per term. The two reservation schemes use different
// day counts and are not numerically compatible: the legacy utilization
// tiers were published against 365-day years, the current purchase options
// against 365.25-day years for the 3-year term. Both agree on 8760 hours
// for 1 year. These reproduce the provider-published effective-hourly
// figures and must not be unified.
var (
	hours1Year       = decimal.NewFromInt(8760)
	hours3YearLegacy = decimal.NewFromInt(26280)
	hours3Year       = decimal.NewFromInt(26298)
)

// Normalized is the uniform reservation shape every reserved record is
// built from.
type Normalized struct {
	Term            pricing.Term
	PaymentOption   pricing.PaymentOption
	UpfrontPrice    decimal.Decimal
	HourlyRecurring decimal.Decimal
	EffectiveHourly decimal.Decimal
}

// legacyOption reports whether the payment option belongs to the legacy
// light/medium/heavy utilization scheme.
func legacyOption(opt pricing.PaymentOption) bool {
	switch opt {
	case pricing.LightUtilization, pricing.MediumUtilization, pricing.HeavyUtilization:
		return true
	}
	return false
}

// TermHours returns the amortization hours for a term under the given
// payment option's scheme.
func TermHours(term pricing.Term, opt pricing.PaymentOption) decimal.Decimal {
	if term == pricing.Term3Year {
		if legacyOption(opt) {
			return hours3YearLegacy
		}
		return hours3Year
	}
	return hours1Year
}

// Normalize computes the effective hourly rate from the components the
// feed published. Either component may be absent (nil): all-upfront
// entries have no recurring rate, no-upfront entries have no upfront cost.
// An entry with neither yields ok=false and no record.
func Normalize(term pricing.Term, opt pricing.PaymentOption, upfront, hourly *decimal.Decimal) (Normalized, bool) {
	if upfront == nil && hourly == nil {
		return Normalized{}, false
	}

	n := Normalized{Term: term, PaymentOption: opt}
	if hourly != nil {
		n.HourlyRecurring = *hourly
	}
	if upfront != nil {
		n.UpfrontPrice = *upfront
	}

	// Zero upfront must reproduce the recurring rate exactly, without a
	// division in the way.
	if n.UpfrontPrice.IsZero() {
		n.EffectiveHourly = n.HourlyRecurring
		return n, true
	}

	n.EffectiveHourly = n.HourlyRecurring.Add(n.UpfrontPrice.Div(TermHours(term, opt)))
	return n, true
}
