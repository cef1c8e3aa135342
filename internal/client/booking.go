package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// WireDatetime is the datetime layout the booking API expects.
const WireDatetime = "2006-01-02 15:04:05"

// AddonLine is a resolved add-on submitted with the booking.
type AddonLine struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// CreateBookingRequest mirrors the booking API contract. All cost fields are
// decimal strings with two places.
type CreateBookingRequest struct {
	CarID                    int64       `json:"car_id"`
	PickupLocationID         int64       `json:"pickup_location_id"`
	ReturnLocationID         int64       `json:"return_location_id"`
	PickupDatetime           string      `json:"pickup_datetime"`
	ReturnDatetime           string      `json:"return_datetime"`
	PackageID                string      `json:"package_id"`
	BaseRentalCost           string      `json:"base_rental_cost"`
	PackageCost              string      `json:"package_cost"`
	ProtectionPlanCost       string      `json:"protection_plan_cost"`
	AddonsCost               string      `json:"addons_cost"`
	LocationFee              string      `json:"location_fee"`
	OutOfOfficeFee           string      `json:"out_of_office_fee"`
	Subtotal                 string      `json:"subtotal"`
	TaxPercentage            string      `json:"tax_percentage"`
	TaxAmount                string      `json:"tax_amount"`
	TotalAmount              string      `json:"total_amount"`
	UpfrontPaymentAmount     string      `json:"upfront_payment_amount"`
	RemainingPaymentAmount   string      `json:"remaining_payment_amount"`
	UpfrontPaymentPercentage int         `json:"upfront_payment_percentage"`
	Addons                   []AddonLine `json:"addons"`
}

type CreateBookingResponse struct {
	BookingID              string `json:"booking_id"`
	OrderRef               string `json:"order_ref"`
	TotalAmount            string `json:"total_amount"`
	UpfrontPaymentAmount   string `json:"upfront_payment_amount"`
	RemainingPaymentAmount string `json:"remaining_payment_amount"`
}

// BookingAPI is the opaque create-booking operation.
type BookingAPI interface {
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*CreateBookingResponse, error)
}

type HTTPBookingAPI struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewHTTPBookingAPI(baseURL string, timeout time.Duration, log *zap.Logger) *HTTPBookingAPI {
	return &HTTPBookingAPI{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log.With(zap.String("client", "booking-api")),
	}
}

// errorBody is the platform's error envelope.
type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func (a *HTTPBookingAPI) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*CreateBookingResponse, error) {
	resp := &CreateBookingResponse{}
	if err := a.post(ctx, "create booking", "/api/bookings", req, resp); err != nil {
		return nil, err
	}

	a.log.Info("Booking created upstream",
		zap.String("booking_id", resp.BookingID),
		zap.String("total_amount", resp.TotalAmount),
	)
	return resp, nil
}

func (a *HTTPBookingAPI) post(ctx context.Context, op, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", op, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := a.client.Do(httpReq)
	if err != nil {
		return &NetworkError{Op: op, Message: err.Error()}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		var errBody errorBody
		json.NewDecoder(httpResp.Body).Decode(&errBody)
		a.log.Error("Upstream call failed",
			zap.String("op", op),
			zap.Int("status", httpResp.StatusCode),
			zap.String("message", errBody.Message),
		)
		return &NetworkError{
			Op:          op,
			StatusCode:  httpResp.StatusCode,
			Message:     errBody.Message,
			FieldErrors: errBody.Errors,
		}
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}
