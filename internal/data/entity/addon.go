package entity

type AddonBilling string

const (
	// AddonPerDay multiplies the unit price by the rental duration.
	AddonPerDay AddonBilling = "days"
	// AddonPerBooking charges the unit price once per booking.
	AddonPerBooking AddonBilling = "booking"
)

const AddonStatusActive = "active"

// Addon is a purchasable catalog entity served by the remote add-on API.
type Addon struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	PricePerDay float64      `json:"price_per_day"`
	AddonType   AddonBilling `json:"addon_type"`
	IsAvailable bool         `json:"is_available"`
	Status      string       `json:"status"`
}

// Usable reports whether the add-on can be sold.
func (a *Addon) Usable() bool {
	return a.IsAvailable && a.Status == AddonStatusActive
}
