package adaptor

import (
	"rental-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Draft   *DraftHandler
	Catalog *CatalogHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Draft:   NewDraftHandler(service, log),
		Catalog: NewCatalogHandler(service.Catalog, log),
	}
}
