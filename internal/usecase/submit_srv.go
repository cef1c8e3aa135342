package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"rental-booking/internal/catalog"
	"rental-booking/internal/client"
	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/store"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitService orchestrates the two remote writes of the flow: booking
// creation on step1 exit and payment-intent creation on step3 exit.
type SubmitService interface {
	CreateBooking(ctx context.Context, sessionID uuid.UUID) (*entity.DraftRecord, error)
	CreatePaymentIntent(ctx context.Context, sessionID uuid.UUID) (*entity.DraftRecord, error)
}

type submitService struct {
	store      store.DraftStore
	catalog    catalog.Catalog
	booking    client.BookingAPI
	payment    client.PaymentAPI
	reconciler *Reconciler
	pricing    utils.PricingConfig
	payCfg     utils.PaymentConfig
	log        *zap.Logger

	// one in-flight remote call per draft
	inflight sync.Map
}

func NewSubmitService(
	st store.DraftStore,
	cat catalog.Catalog,
	bookingAPI client.BookingAPI,
	paymentAPI client.PaymentAPI,
	pricing utils.PricingConfig,
	payCfg utils.PaymentConfig,
	log *zap.Logger,
) SubmitService {
	return &submitService{
		store:      st,
		catalog:    cat,
		booking:    bookingAPI,
		payment:    paymentAPI,
		reconciler: NewReconciler(log),
		pricing:    pricing,
		payCfg:     payCfg,
		log:        log.With(zap.String("service", "submit")),
	}
}

func (s *submitService) CreateBooking(ctx context.Context, sessionID uuid.UUID) (*entity.DraftRecord, error) {
	if _, loaded := s.inflight.LoadOrStore(sessionID, struct{}{}); loaded {
		return nil, ErrSubmissionInFlight
	}
	defer s.inflight.Delete(sessionID)

	rec, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	if rec == nil {
		return nil, ErrRedirectToSearch
	}

	payload, resolved, breakdown, err := s.buildBookingPayload(ctx, rec)
	if err != nil {
		return nil, err
	}

	resp, err := s.booking.CreateBooking(ctx, payload)
	if err != nil {
		// The submitting flag is released by the deferred delete; the
		// user can retry.
		return nil, err
	}

	// Merge additively onto whatever the draft looks like now: the user may
	// have edited other sections while the call was in flight.
	current, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("reload draft: %w", err)
	}
	if current == nil {
		current = rec
	}

	orderRef := resp.OrderRef
	if orderRef == "" {
		orderRef = utils.GenerateOrderID()
	}

	current.Submission = &entity.Submission{
		BookingID:       resp.BookingID,
		OrderRef:        orderRef,
		ServerTotal:     parseAmount(resp.TotalAmount, breakdown.Total),
		ServerUpfront:   parseAmount(resp.UpfrontPaymentAmount, breakdown.UpfrontAmount),
		ServerRemaining: parseAmount(resp.RemainingPaymentAmount, breakdown.RemainingAmount),
	}
	current.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, sessionID, current); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	s.log.Info("Booking submitted",
		zap.String("session_id", sessionID.String()),
		zap.String("booking_id", resp.BookingID),
		zap.Int("addon_lines", len(resolved)),
		zap.Float64("total", breakdown.Total),
	)
	return current, nil
}

// buildBookingPayload validates the draft in a fixed order and renders the
// wire payload. Each missing prerequisite is a distinct, user-facing error.
func (s *submitService) buildBookingPayload(ctx context.Context, rec *entity.DraftRecord) (*client.CreateBookingRequest, []ResolvedAddon, entity.PriceBreakdown, error) {
	var empty entity.PriceBreakdown

	if rec.Car == nil {
		return nil, nil, empty, &ValidationError{Field: "vehicle", Reason: "no vehicle selected"}
	}

	rental := rec.Step1.Rental
	if !rental.HasDates() {
		return nil, nil, empty, &ValidationError{Field: "dates", Reason: "pickup and return dates are required"}
	}
	if rental.PickupLocationID == 0 {
		return nil, nil, empty, &ValidationError{Field: "pickup_location", Reason: "pickup location is required"}
	}

	returnLocationID := rental.DropoffLocationID
	if rental.SameStore {
		returnLocationID = rental.PickupLocationID
	}
	if returnLocationID == 0 {
		return nil, nil, empty, &ValidationError{Field: "return_location", Reason: "return location is required"}
	}

	pkg := rec.Car.PackageByTier(rec.Step1.Coverage.PackageTier)
	if pkg == nil || pkg.PlanID == "" {
		return nil, nil, empty, &ValidationError{Field: "package", Reason: "protection plan is not resolvable for this vehicle"}
	}

	if rental.PickupAt.IsZero() || rental.DropoffAt.IsZero() {
		return nil, nil, empty, &ValidationError{Field: "datetime_format", Reason: "dates cannot be formatted for submission"}
	}

	addons, err := s.catalog.ListAddons(ctx)
	if err != nil {
		s.log.Error("Addon catalog unavailable during submission", zap.Error(err))
		addons = nil
	}
	resolved := s.reconciler.Resolve(rec.Step1.Coverage, addons)

	days := RentalDays(*rental.PickupAt, *rental.DropoffAt)
	breakdown := ComputeBreakdown(rec, resolved, days, s.pricing)

	lines := make([]client.AddonLine, 0, len(resolved))
	for _, res := range resolved {
		lines = append(lines, client.AddonLine{ID: res.Addon.ID, Quantity: res.Quantity})
	}

	payload := &client.CreateBookingRequest{
		CarID:                    rec.Car.ID,
		PickupLocationID:         rental.PickupLocationID,
		ReturnLocationID:         returnLocationID,
		PickupDatetime:           rental.PickupAt.Format(client.WireDatetime),
		ReturnDatetime:           rental.DropoffAt.Format(client.WireDatetime),
		PackageID:                pkg.PlanID,
		BaseRentalCost:           utils.FormatAmount(breakdown.BaseRentalCost),
		PackageCost:              utils.FormatAmount(breakdown.PackageCost),
		ProtectionPlanCost:       utils.FormatAmount(0),
		AddonsCost:               utils.FormatAmount(breakdown.AddonsCost),
		LocationFee:              utils.FormatAmount(breakdown.LocationFee),
		OutOfOfficeFee:           utils.FormatAmount(breakdown.OutOfOfficeFee),
		Subtotal:                 utils.FormatAmount(breakdown.Subtotal),
		TaxPercentage:            utils.FormatAmount(breakdown.TaxPercentage),
		TaxAmount:                utils.FormatAmount(breakdown.TaxAmount),
		TotalAmount:              utils.FormatAmount(breakdown.Total),
		UpfrontPaymentAmount:     utils.FormatAmount(breakdown.UpfrontAmount),
		RemainingPaymentAmount:   utils.FormatAmount(breakdown.RemainingAmount),
		UpfrontPaymentPercentage: int(s.pricing.UpfrontPercentage),
		Addons:                   lines,
	}
	return payload, resolved, breakdown, nil
}

func (s *submitService) CreatePaymentIntent(ctx context.Context, sessionID uuid.UUID) (*entity.DraftRecord, error) {
	if _, loaded := s.inflight.LoadOrStore(sessionID, struct{}{}); loaded {
		return nil, ErrSubmissionInFlight
	}
	defer s.inflight.Delete(sessionID)

	rec, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	if rec == nil {
		return nil, ErrRedirectToSearch
	}
	if rec.Submission == nil || rec.Submission.BookingID == "" {
		return nil, &ValidationError{Field: "booking", Reason: "no booking has been created for this draft"}
	}

	// Once a booking exists its server-echoed total is authoritative; the
	// locally recomputed figure is display-only.
	amount := rec.Submission.ServerTotal
	if amount == 0 && rec.Pricing != nil {
		amount = rec.Pricing.Total
	}

	req := &client.CreateIntentRequest{
		BookingID:   rec.Submission.BookingID,
		Amount:      utils.FormatAmount(amount),
		Total:       utils.FormatAmount(amount),
		TotalAmount: utils.FormatAmount(amount),
		Price:       utils.FormatAmount(amount),
		AmountCents: utils.ToCents(amount),
		TotalCents:  utils.ToCents(amount),
		SuccessURL:  s.payCfg.SuccessURL,
		CancelURL:   s.payCfg.CancelURL,
		Step1Data:   rec.Step1,
	}

	resp, err := s.payment.CreatePaymentIntent(ctx, req)
	if err != nil {
		return nil, err
	}

	current, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("reload draft: %w", err)
	}
	if current == nil || current.Submission == nil {
		current = rec
	}

	current.Submission.PaymentIntentID = resp.IntentID
	current.Submission.PaymentURL = resp.PaymentURL
	current.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, sessionID, current); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return current, nil
}

// parseAmount trusts the server echo, falling back to the local figure when
// the echo is absent or malformed.
func parseAmount(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return amount
}
