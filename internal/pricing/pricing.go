// Package pricing derives the two parallel cost breakdowns of a hall
// contract (customer-facing and internal) from its raw inputs and the rate
// configurations. The computation is pure: no I/O, no errors, identical
// output for identical input. Malformed inputs degrade to baseline rates
// instead of failing, so a usable draft total exists while the user is
// mid-edit.
package pricing

import (
	"strconv"
	"strings"

	"hallbook/internal/domain/models"
)

// baselineHours is the hall time covered by the flat hourly rate; time
// beyond it is billed per extra hour.
const baselineHours = 2.0

// Recompute returns a copy of the contract with both cost breakdowns fully
// derived. Fields marked overridden keep their submitted values; everything
// else is re-derived from the rate configurations. A nil override set means
// every field is engine-controlled.
func Recompute(c models.Contract, customerRates, internalRates models.RateConfig, ov *Overrides) models.Contract {
	extras := extraItemsTotal(c.ExtraItems)
	c.CustomerCosts = computeBreakdown(c, customerRates, c.CustomerCosts, extras, func(f Field) bool {
		return ov.IsOverridden(Customer, f)
	})
	c.InternalCosts = computeBreakdown(c, internalRates, c.InternalCosts, extras, func(f Field) bool {
		return ov.IsOverridden(Internal, f)
	})
	return c
}

// computeBreakdown runs the per-perspective formula set once. Both
// perspectives go through this single path so they can never drift.
func computeBreakdown(c models.Contract, rates models.RateConfig, prev models.CostBreakdown, extras float64, overridden func(Field) bool) models.CostBreakdown {
	next := prev

	if !overridden(EntryFee) {
		next.EntryFee = entryFee(c.StartTime, c.EndTime, rates.HourlyRate, rates.ExtraHourRate)
	}
	if !overridden(ServiceFee) {
		next.ServiceFee = float64(c.ServiceStaffCount) * rates.ServiceFeePerPerson
	}

	next.JuicePrice = itemCost(c.IncludeJuice, overridden(JuicePrice), prev.JuicePrice,
		float64(c.JuiceCount)*rates.JuicePricePerPerson)
	next.TeaPrice = itemCost(c.IncludeTea, overridden(TeaPrice), prev.TeaPrice,
		float64(c.TeaCount)*rates.TeaPricePerPerson)
	next.FireworkPrice = itemCost(c.IncludeFirework, overridden(FireworkPrice), prev.FireworkPrice,
		float64(c.FireworkCount)*rates.FireworkPricePerUnit)
	next.WaterPrice = itemCost(c.IncludeWater, overridden(WaterPrice), prev.WaterPrice,
		float64(c.WaterCount)*rates.WaterPricePerUnit)
	next.DinnerPrice = itemCost(c.IncludeDinner, overridden(DinnerPrice), prev.DinnerPrice,
		float64(c.DinnerCount)*rates.DinnerPricePerPerson)
	next.CandlePrice = itemCost(c.IncludeCandle, overridden(CandlePrice), prev.CandlePrice,
		rates.CandlePrice)
	next.FlowerPrice = itemCost(c.IncludeFlower, overridden(FlowerPrice), prev.FlowerPrice,
		rates.FlowerPrice)

	// Discount applies before tax and is not clamped: a discount larger
	// than the subtotal yields a negative pre-tax amount and negative tax.
	subtotal := next.EntryFee + next.ServiceFee +
		next.JuicePrice + next.TeaPrice + next.FireworkPrice +
		next.CandlePrice + next.FlowerPrice + next.WaterPrice + next.DinnerPrice +
		extras - c.Discount

	next.Tax = subtotal * rates.TaxRatePercent / 100
	next.TotalCost = subtotal + next.Tax
	return next
}

// itemCost resolves one optional service line. Exclusion wins over
// everything: a false inclusion flag forces zero even while the field is
// overridden.
func itemCost(included, overridden bool, kept, derived float64) float64 {
	if !included {
		return 0
	}
	if overridden {
		return kept
	}
	return derived
}

// entryFee computes the hall entry charge from the HH:MM time window.
// Missing or malformed times fall back to the base rate. Same-day
// arithmetic only; no cross-midnight handling.
func entryFee(start, end string, baseRate, extraRate float64) float64 {
	startMin, okStart := parseClock(start)
	endMin, okEnd := parseClock(end)
	if !okStart || !okEnd {
		return baseRate
	}
	hours := float64(endMin-startMin) / 60
	if hours <= baselineHours {
		return baseRate
	}
	return baseRate + (hours-baselineHours)*extraRate
}

// parseClock parses a 24-hour "HH:MM" string into minutes since midnight.
func parseClock(s string) (int, bool) {
	hh, mm, found := strings.Cut(s, ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func extraItemsTotal(items []models.ExtraItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price
	}
	return total
}
