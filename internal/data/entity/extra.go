package entity

import (
	"fmt"
	"strconv"
)

// SyntheticKind identifies an extra the UI offers that is not addressed by a
// catalog id. Synthetic extras are mapped to catalog add-ons by name at
// reconciliation time.
type SyntheticKind string

const (
	ExtraChildSeat          SyntheticKind = "childSeat"
	ExtraFoundationDonation SyntheticKind = "foundationDonation"
	ExtraGPSNavigation      SyntheticKind = "gpsNavigation"
	ExtraAdditionalDriver   SyntheticKind = "additionalDriver"
	ExtraWinterTires        SyntheticKind = "winterTires"
)

// syntheticNames are the display names used to search the catalog.
var syntheticNames = map[SyntheticKind]string{
	ExtraChildSeat:          "Child Seat",
	ExtraFoundationDonation: "Foundation Donation",
	ExtraGPSNavigation:      "GPS Navigation",
	ExtraAdditionalDriver:   "Additional Driver",
	ExtraWinterTires:        "Winter Tires",
}

// SyntheticName returns the catalog search name for a kind, "" if unknown.
func SyntheticName(kind SyntheticKind) string {
	return syntheticNames[kind]
}

// ExtraRef is a tagged reference to a selected extra: either a catalog add-on
// id or a synthetic kind, never both.
type ExtraRef struct {
	CatalogID int64         `json:"catalog_id,omitempty"`
	Synthetic SyntheticKind `json:"synthetic,omitempty"`
}

func CatalogExtra(id int64) ExtraRef {
	return ExtraRef{CatalogID: id}
}

func SyntheticExtra(kind SyntheticKind) ExtraRef {
	return ExtraRef{Synthetic: kind}
}

func (e ExtraRef) IsCatalog() bool {
	return e.CatalogID > 0
}

func (e ExtraRef) String() string {
	if e.IsCatalog() {
		return strconv.FormatInt(e.CatalogID, 10)
	}
	return string(e.Synthetic)
}

// ParseExtraRef disambiguates a raw selection id once, at the boundary:
// all-digit strings are catalog ids, anything else must be a known synthetic
// kind.
func ParseExtraRef(raw string) (ExtraRef, error) {
	if raw == "" {
		return ExtraRef{}, fmt.Errorf("empty extra id")
	}

	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if id <= 0 {
			return ExtraRef{}, fmt.Errorf("invalid catalog add-on id %d", id)
		}
		return CatalogExtra(id), nil
	}

	kind := SyntheticKind(raw)
	if _, ok := syntheticNames[kind]; !ok {
		return ExtraRef{}, fmt.Errorf("unknown extra id %q", raw)
	}
	return SyntheticExtra(kind), nil
}
