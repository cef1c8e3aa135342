package usecase

import (
	"testing"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

func testPricingConfig() utils.PricingConfig {
	return utils.PricingConfig{
		TaxPercentage:     0,
		UpfrontPercentage: 30,
		OutOfOfficeFee:    25,
		OfficeOpenHour:    8,
		OfficeCloseHour:   20,
	}
}

func TestRentalDays(t *testing.T) {
	base := time.Date(2026, 5, 10, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		span time.Duration
		want int
	}{
		{"one hour still bills a day", time.Hour, 1},
		{"zero span bills a day", 0, 1},
		{"exactly 24h", 24 * time.Hour, 1},
		{"exactly 48h", 48 * time.Hour, 2},
		{"48h plus a minute starts a third day", 48*time.Hour + time.Minute, 3},
		{"three full days", 72 * time.Hour, 3},
	}

	for _, tc := range cases {
		if got := RentalDays(base, base.Add(tc.span)); got != tc.want {
			t.Errorf("%s: RentalDays = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func premiumVehicle() *entity.Vehicle {
	return &entity.Vehicle{
		ID:          7,
		Name:        "Test SUV",
		PricePerDay: 50,
		Packages: []entity.Package{
			{Tier: entity.TierBasic, PricePerDay: 0, PlanID: "plan-basic"},
			{Tier: entity.TierPremium, PricePerDay: 25, PlanID: "plan-premium"},
		},
	}
}

func TestComputeBreakdownPremiumThreeDays(t *testing.T) {
	rec := entity.NewDraftRecord()
	rec.Car = premiumVehicle()
	rec.Step1.Coverage.PackageTier = entity.TierPremium
	rec.Step1.Rental.SameStore = true
	rec.Step1.Rental.PickupLocationPrice = 10
	rec.Step1.Rental.DropoffLocationPrice = 15

	b := ComputeBreakdown(rec, nil, 3, testPricingConfig())

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"base rental", b.BaseRentalCost, 150.00},
		{"package", b.PackageCost, 75.00},
		{"addons", b.AddonsCost, 0.00},
		{"location fee zero for same store", b.LocationFee, 0.00},
		{"subtotal", b.Subtotal, 225.00},
		{"tax", b.TaxAmount, 0.00},
		{"total", b.Total, 225.00},
		{"upfront", b.UpfrontAmount, 67.50},
		{"remaining", b.RemainingAmount, 157.50},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %.2f, want %.2f", c.name, c.got, c.want)
		}
	}
}

func TestComputeBreakdownChildSeats(t *testing.T) {
	catalog := []entity.Addon{
		{ID: 4, Name: "Child Seat", PricePerDay: 5.22, AddonType: entity.AddonPerDay, IsAvailable: true, Status: entity.AddonStatusActive},
	}

	rec := entity.NewDraftRecord()
	rec.Car = premiumVehicle()
	rec.Step1.Coverage = entity.Coverage{
		Extras:     []entity.ExtraRef{entity.SyntheticExtra(entity.ExtraChildSeat)},
		ChildSeats: entity.ChildSeats{Baby: 1, Booster: 1},
	}

	resolved := NewReconciler(zap.NewNop()).Resolve(rec.Step1.Coverage, catalog)
	b := ComputeBreakdown(rec, resolved, 4, testPricingConfig())

	// 5.22 x 2 seats x 4 days
	if b.AddonsCost != 41.76 {
		t.Errorf("addons cost = %.2f, want 41.76", b.AddonsCost)
	}
}

func TestComputeBreakdownDifferentLocations(t *testing.T) {
	rec := entity.NewDraftRecord()
	rec.Car = premiumVehicle()
	rec.Step1.Rental.SameStore = false
	rec.Step1.Rental.PickupLocationPrice = 10
	rec.Step1.Rental.DropoffLocationPrice = 15

	for _, days := range []int{1, 3, 9} {
		b := ComputeBreakdown(rec, nil, days, testPricingConfig())
		if b.LocationFee != 25.00 {
			t.Errorf("days=%d: location fee = %.2f, want 25.00", days, b.LocationFee)
		}
	}
}

func TestSplitSumsToTotal(t *testing.T) {
	cfg := testPricingConfig()

	// Odd-cent rates exercise the rounding remainder; it must always land
	// on the remaining share.
	rates := []float64{33.37, 50, 99.99, 0.01, 123.45, 66.67}
	for _, rate := range rates {
		rec := entity.NewDraftRecord()
		rec.Car = &entity.Vehicle{ID: 1, Name: "X", PricePerDay: rate}

		for days := 1; days <= 7; days++ {
			b := ComputeBreakdown(rec, nil, days, cfg)
			sum := utils.Round2(b.UpfrontAmount + b.RemainingAmount)
			if sum != b.Total {
				t.Errorf("rate=%.2f days=%d: upfront %.2f + remaining %.2f = %.2f, want total %.2f",
					rate, days, b.UpfrontAmount, b.RemainingAmount, sum, b.Total)
			}
			if b.UpfrontAmount > utils.Round2(b.Total*cfg.UpfrontPercentage/100) {
				t.Errorf("rate=%.2f days=%d: upfront %.2f exceeds the 30%% share", rate, days, b.UpfrontAmount)
			}
		}
	}
}

func TestComputeBreakdownOutOfOfficeAndDonation(t *testing.T) {
	rec := entity.NewDraftRecord()
	rec.Car = premiumVehicle()
	rec.Step1.Rental.OutOfOffice = true
	rec.Step1.Rental.OutOfOfficeFee = 25
	rec.Step1.Coverage.DonationAmount = 5

	b := ComputeBreakdown(rec, nil, 1, testPricingConfig())

	if b.OutOfOfficeFee != 25 {
		t.Errorf("out-of-office fee = %.2f, want 25.00", b.OutOfOfficeFee)
	}
	if b.AddonsCost != 5 {
		t.Errorf("addons cost = %.2f, want 5.00 (donation only)", b.AddonsCost)
	}
	if b.Subtotal != 80 {
		t.Errorf("subtotal = %.2f, want 80.00", b.Subtotal)
	}
}

func TestTaxPlumbingStaysWired(t *testing.T) {
	cfg := testPricingConfig()
	cfg.TaxPercentage = 10

	rec := entity.NewDraftRecord()
	rec.Car = &entity.Vehicle{ID: 1, Name: "X", PricePerDay: 100}

	b := ComputeBreakdown(rec, nil, 1, cfg)
	if b.TaxAmount != 10.00 {
		t.Errorf("tax amount = %.2f, want 10.00", b.TaxAmount)
	}
	if b.Total != 110.00 {
		t.Errorf("total = %.2f, want 110.00", b.Total)
	}
}
