package entity

type PackageTier string

const (
	TierBasic    PackageTier = "basic"
	TierStandard PackageTier = "standard"
	TierSmart    PackageTier = "smart"
	TierPremium  PackageTier = "premium"
)

// Package is a tiered protection plan offered with a vehicle. PricePerDay is
// already discount-adjusted. PlanID is the server-side billing plan used when
// the booking is submitted; it may be empty for plans not yet provisioned.
type Package struct {
	Tier        PackageTier `json:"tier"`
	PricePerDay float64     `json:"price_per_day"`
	Features    []string    `json:"features,omitempty"`
	PlanID      string      `json:"plan_id,omitempty"`
}

type Vehicle struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	PricePerDay float64   `json:"price_per_day"`
	ImageURL    string    `json:"image_url,omitempty"`
	Packages    []Package `json:"packages,omitempty"`
}

// PackageByTier returns the vehicle's plan for the given tier, or nil.
func (v *Vehicle) PackageByTier(tier PackageTier) *Package {
	for i := range v.Packages {
		if v.Packages[i].Tier == tier {
			return &v.Packages[i]
		}
	}
	return nil
}
