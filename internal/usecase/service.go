package usecase

import (
	"rental-booking/internal/catalog"
	"rental-booking/internal/client"
	"rental-booking/internal/data/store"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

// Service groups the flow services the handlers depend on.
type Service struct {
	Draft     DraftService
	Submit    SubmitService
	Navigator Navigator
	Catalog   catalog.Catalog
}

func NewService(
	st store.DraftStore,
	cat catalog.Catalog,
	bookingAPI client.BookingAPI,
	paymentAPI client.PaymentAPI,
	config *utils.Config,
	logger *zap.Logger,
) *Service {
	submit := NewSubmitService(st, cat, bookingAPI, paymentAPI, config.Pricing, config.Payment, logger)

	return &Service{
		Draft:     NewDraftService(st, cat, config.Pricing, logger),
		Submit:    submit,
		Navigator: NewNavigator(st, submit, logger),
		Catalog:   cat,
	}
}
