package client

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// CreateIntentRequest matches the payment API contract. The amount appears
// redundantly in major units and cents; the upstream reads whichever field its
// provider integration wants.
type CreateIntentRequest struct {
	BookingID   string `json:"booking_id"`
	Amount      string `json:"amount"`
	Total       string `json:"total"`
	TotalAmount string `json:"total_amount"`
	Price       string `json:"price"`
	AmountCents int64  `json:"amount_cents"`
	TotalCents  int64  `json:"total_cents"`
	SuccessURL  string `json:"success_url"`
	CancelURL   string `json:"cancel_url"`
	Step1Data   any    `json:"step1_data,omitempty"`
}

type CreateIntentResponse struct {
	IntentID   string `json:"intent_id"`
	PaymentURL string `json:"payment_url"`
}

// PaymentAPI is the opaque create-payment-intent operation.
type PaymentAPI interface {
	CreatePaymentIntent(ctx context.Context, req *CreateIntentRequest) (*CreateIntentResponse, error)
}

type HTTPPaymentAPI struct {
	api *HTTPBookingAPI
}

func NewHTTPPaymentAPI(baseURL string, timeout time.Duration, log *zap.Logger) *HTTPPaymentAPI {
	return &HTTPPaymentAPI{
		api: &HTTPBookingAPI{
			baseURL: baseURL,
			client:  &http.Client{Timeout: timeout},
			log:     log.With(zap.String("client", "payment-api")),
		},
	}
}

func (a *HTTPPaymentAPI) CreatePaymentIntent(ctx context.Context, req *CreateIntentRequest) (*CreateIntentResponse, error) {
	resp := &CreateIntentResponse{}
	if err := a.api.post(ctx, "create payment intent", "/api/payment-intents", req, resp); err != nil {
		return nil, err
	}

	a.api.log.Info("Payment intent created",
		zap.String("booking_id", req.BookingID),
		zap.String("intent_id", resp.IntentID),
	)
	return resp, nil
}
