package response

import (
	"rental-booking/internal/data/entity"
	"rental-booking/pkg/utils"
)

type AddonResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	AddonType   string `json:"addon_type"`
	IsAvailable bool   `json:"is_available"`
}

func AddonToResponse(a *entity.Addon) AddonResponse {
	return AddonResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Price:       utils.FormatAmount(a.PricePerDay),
		AddonType:   string(a.AddonType),
		IsAvailable: a.IsAvailable,
	}
}
