package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testBookingAPI(t *testing.T, handler http.HandlerFunc) *HTTPBookingAPI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPBookingAPI(srv.URL, 2*time.Second, zap.NewNop())
}

func TestCreateBookingWireFormat(t *testing.T) {
	var captured map[string]any
	api := testBookingAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bookings" {
			t.Errorf("path = %s, want /api/bookings", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Fatalf("request body is not JSON: %v", err)
		}
		json.NewEncoder(w).Encode(CreateBookingResponse{
			BookingID:   "bk_123",
			OrderRef:    "RENT-2026-001",
			TotalAmount: "260.66",
		})
	})

	resp, err := api.CreateBooking(context.Background(), &CreateBookingRequest{
		CarID:                    7,
		PickupLocationID:         1,
		ReturnLocationID:         2,
		PickupDatetime:           "2026-05-10 10:00:00",
		ReturnDatetime:           "2026-05-13 10:00:00",
		PackageID:                "plan_premium",
		BaseRentalCost:           "150.00",
		ProtectionPlanCost:       "0.00",
		TotalAmount:              "260.66",
		UpfrontPaymentPercentage: 30,
		Addons:                   []AddonLine{{ID: 2, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if resp.BookingID != "bk_123" || resp.OrderRef != "RENT-2026-001" {
		t.Errorf("response = %+v", resp)
	}

	// Money rides as strings and the upfront percentage as a number.
	if v, ok := captured["base_rental_cost"].(string); !ok || v != "150.00" {
		t.Errorf("base_rental_cost = %v (%T)", captured["base_rental_cost"], captured["base_rental_cost"])
	}
	if v, ok := captured["upfront_payment_percentage"].(float64); !ok || v != 30 {
		t.Errorf("upfront_payment_percentage = %v", captured["upfront_payment_percentage"])
	}
	if captured["pickup_datetime"] != "2026-05-10 10:00:00" {
		t.Errorf("pickup_datetime = %v", captured["pickup_datetime"])
	}
	addons, ok := captured["addons"].([]any)
	if !ok || len(addons) != 1 {
		t.Fatalf("addons = %v", captured["addons"])
	}
	line := addons[0].(map[string]any)
	if line["id"] != float64(2) || line["quantity"] != float64(1) {
		t.Errorf("addon line = %v", line)
	}
}

func TestCreateBookingErrorEnvelope(t *testing.T) {
	api := testBookingAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "validation failed",
			"errors":  map[string]string{"pickup_datetime": "is in the past"},
		})
	})

	_, err := api.CreateBooking(context.Background(), &CreateBookingRequest{})
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("err = %v, want NetworkError", err)
	}
	if netErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d", netErr.StatusCode)
	}
	if netErr.Message != "validation failed" {
		t.Errorf("Message = %q", netErr.Message)
	}
	if netErr.FieldErrors["pickup_datetime"] != "is in the past" {
		t.Errorf("FieldErrors = %v", netErr.FieldErrors)
	}
}

func TestCreateBookingConnectionRefused(t *testing.T) {
	// A server that is already closed refuses the connection.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	api := NewHTTPBookingAPI(srv.URL, time.Second, zap.NewNop())

	_, err := api.CreateBooking(context.Background(), &CreateBookingRequest{})
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("err = %v, want NetworkError", err)
	}
	if netErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", netErr.StatusCode)
	}
}

func TestCreatePaymentIntentWire(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/payment-intents" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(CreateIntentResponse{
			IntentID:   "pi_456",
			PaymentURL: "https://pay.example/pi_456",
		})
	}))
	t.Cleanup(srv.Close)

	api := NewHTTPPaymentAPI(srv.URL, 2*time.Second, zap.NewNop())
	resp, err := api.CreatePaymentIntent(context.Background(), &CreateIntentRequest{
		BookingID:   "bk_123",
		Amount:      "245.00",
		Total:       "245.00",
		TotalAmount: "245.00",
		Price:       "245.00",
		AmountCents: 24500,
		TotalCents:  24500,
		SuccessURL:  "https://app.example/success",
		CancelURL:   "https://app.example/cancel",
	})
	if err != nil {
		t.Fatalf("CreatePaymentIntent: %v", err)
	}
	if resp.IntentID != "pi_456" || resp.PaymentURL == "" {
		t.Errorf("response = %+v", resp)
	}

	if captured["amount"] != "245.00" || captured["amount_cents"] != float64(24500) {
		t.Errorf("amount fields = %v / %v", captured["amount"], captured["amount_cents"])
	}
	if captured["booking_id"] != "bk_123" {
		t.Errorf("booking_id = %v", captured["booking_id"])
	}
}
