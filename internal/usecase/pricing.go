package usecase

import (
	"math"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/utils"
)

// RentalDays is the billed duration: started 24h blocks, minimum one day.
// A 48h00m span is 2 days, 48h01m is 3.
func RentalDays(pickup, dropoff time.Time) int {
	hours := dropoff.Sub(pickup).Hours()
	days := int(math.Ceil(hours / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// recordDays derives the billed duration from the draft, defaulting to one
// day while dates are not yet picked.
func recordDays(rec *entity.DraftRecord) int {
	rental := rec.Step1.Rental
	if !rental.HasDates() {
		return 1
	}
	return RentalDays(*rental.PickupAt, *rental.DropoffAt)
}

// ComputeBreakdown derives the full price breakdown from the draft. It is
// pure: safe to re-run after every mutation, never mutates its inputs.
func ComputeBreakdown(rec *entity.DraftRecord, resolved []ResolvedAddon, days int, cfg utils.PricingConfig) entity.PriceBreakdown {
	b := entity.PriceBreakdown{
		DurationDays:  days,
		TaxPercentage: cfg.TaxPercentage,
	}

	// Base rate and package rate are independent line items.
	if rec.Car != nil {
		b.BaseRentalCost = utils.Round2(rec.Car.PricePerDay * float64(days))
		if pkg := rec.Car.PackageByTier(rec.Step1.Coverage.PackageTier); pkg != nil {
			b.PackageCost = utils.Round2(pkg.PricePerDay * float64(days))
		}
	}

	addons := 0.0
	for _, res := range resolved {
		addons += AddonCost(res, days)
	}
	addons += rec.Step1.Coverage.DonationAmount
	b.AddonsCost = utils.Round2(addons)

	b.LocationFee = rec.Step1.Rental.LocationFee()
	if rec.Step1.Rental.OutOfOffice {
		b.OutOfOfficeFee = rec.Step1.Rental.OutOfOfficeFee
	}

	b.Subtotal = utils.Round2(b.BaseRentalCost + b.PackageCost + b.AddonsCost + b.LocationFee + b.OutOfOfficeFee)
	b.TaxAmount = utils.Round2(b.Subtotal * cfg.TaxPercentage / 100)
	b.Total = utils.Round2(b.Subtotal + b.TaxAmount)

	// Any rounding remainder lands on the remaining share so the upfront
	// figure charged now is never inflated.
	b.UpfrontAmount = utils.Round2(b.Total * cfg.UpfrontPercentage / 100)
	b.RemainingAmount = utils.Round2(b.Total - b.UpfrontAmount)

	return b
}

// AddonCost prices one resolved add-on line for the given duration.
func AddonCost(res ResolvedAddon, days int) float64 {
	amount := res.Addon.PricePerDay * float64(res.Quantity)
	if res.Addon.AddonType == entity.AddonPerDay {
		amount *= float64(days)
	}
	return utils.Round2(amount)
}
