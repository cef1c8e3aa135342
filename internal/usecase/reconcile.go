package usecase

import (
	"strings"

	"rental-booking/internal/data/entity"

	"go.uber.org/zap"
)

// ResolvedAddon is a selected extra mapped onto a catalog add-on.
type ResolvedAddon struct {
	Addon    entity.Addon
	Quantity int
}

// Reconciler maps user-facing extra selections onto catalog add-on ids.
// Unresolvable extras are logged and dropped; they never fail the booking.
type Reconciler struct {
	log *zap.Logger
}

func NewReconciler(log *zap.Logger) *Reconciler {
	return &Reconciler{log: log.With(zap.String("service", "reconciler"))}
}

// Resolve maps every selected extra to a {catalog add-on, quantity} pair.
// Deterministic: the same coverage and catalog always yield the same lines in
// the same order.
func (r *Reconciler) Resolve(coverage entity.Coverage, catalog []entity.Addon) []ResolvedAddon {
	var resolved []ResolvedAddon

	for _, extra := range coverage.Extras {
		switch {
		case extra.IsCatalog():
			addon := addonByID(catalog, extra.CatalogID)
			if addon == nil {
				r.log.Warn("Extra references unknown catalog add-on",
					zap.Int64("catalog_id", extra.CatalogID))
				continue
			}
			resolved = append(resolved, ResolvedAddon{Addon: *addon, Quantity: 1})

		case extra.Synthetic == entity.ExtraFoundationDonation:
			// Donations are a flat amount on the breakdown, never a
			// catalog-billed line item.
			continue

		case extra.Synthetic == entity.ExtraChildSeat:
			qty := coverage.ChildSeats.Total()
			if qty == 0 {
				// Zero seats means the extra is not actually selected.
				continue
			}
			addon := addonByName(catalog, entity.SyntheticName(extra.Synthetic))
			if addon == nil {
				r.log.Warn("Child seat extra has no catalog counterpart")
				continue
			}
			resolved = append(resolved, ResolvedAddon{Addon: *addon, Quantity: qty})

		default:
			name := entity.SyntheticName(extra.Synthetic)
			addon := addonByName(catalog, name)
			if addon == nil {
				r.log.Warn("Extra could not be mapped to a catalog add-on",
					zap.String("extra", string(extra.Synthetic)),
					zap.String("name", name))
				continue
			}
			resolved = append(resolved, ResolvedAddon{Addon: *addon, Quantity: 1})
		}
	}

	return resolved
}

func addonByID(catalog []entity.Addon, id int64) *entity.Addon {
	for i := range catalog {
		if catalog[i].ID == id && catalog[i].Usable() {
			return &catalog[i]
		}
	}
	return nil
}

// addonByName tries an exact case-insensitive match first, then a substring
// match in either direction.
func addonByName(catalog []entity.Addon, name string) *entity.Addon {
	if name == "" {
		return nil
	}
	needle := strings.ToLower(name)

	for i := range catalog {
		if !catalog[i].Usable() {
			continue
		}
		if strings.ToLower(catalog[i].Name) == needle {
			return &catalog[i]
		}
	}

	for i := range catalog {
		if !catalog[i].Usable() {
			continue
		}
		candidate := strings.ToLower(catalog[i].Name)
		if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
			return &catalog[i]
		}
	}

	return nil
}
