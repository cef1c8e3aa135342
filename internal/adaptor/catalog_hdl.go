package adaptor

import (
	"net/http"

	"rental-booking/internal/catalog"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog catalog.Catalog
	log     *zap.Logger
}

func NewCatalogHandler(cat catalog.Catalog, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: cat,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListAddons handles GET /api/addons
func (h *CatalogHandler) ListAddons(w http.ResponseWriter, r *http.Request) {
	addons, err := h.catalog.ListAddons(r.Context())
	if err != nil {
		h.log.Error("Failed to list add-ons", zap.Error(err))
		utils.ResponseInternalError(w, "Add-on catalog unavailable")
		return
	}

	resp := make([]response.AddonResponse, 0, len(addons))
	for i := range addons {
		if !addons[i].Usable() {
			continue
		}
		resp = append(resp, response.AddonToResponse(&addons[i]))
	}

	utils.ResponseSuccess(w, "success", resp)
}
