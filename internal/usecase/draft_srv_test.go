package usecase

import (
	"context"
	"errors"
	"testing"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/store"
	"rental-booking/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubCatalog struct {
	addons []entity.Addon
	err    error
}

func (s stubCatalog) ListAddons(context.Context) ([]entity.Addon, error) {
	return s.addons, s.err
}

func newTestDraftService(addons []entity.Addon) (DraftService, *store.MemoryStore) {
	st := store.NewMemoryStore()
	svc := NewDraftService(st, stubCatalog{addons: addons}, testPricingConfig(), zap.NewNop())
	return svc, st
}

func selectVehicleReq() *request.SelectVehicleRequest {
	return &request.SelectVehicleRequest{
		ID:          7,
		Name:        "Test SUV",
		PricePerDay: 50,
		Packages: []request.PackagePayload{
			{Tier: "premium", PricePerDay: 25, PlanID: "plan-premium"},
		},
	}
}

func stepOneReq() *request.StepOneRequest {
	return &request.StepOneRequest{
		PickupDatetime:      "2026-05-10 10:00",
		ReturnDatetime:      "2026-05-13 10:00",
		PickupLocationID:    1,
		PickupLocationPrice: 10,
		SameStore:           true,
		PackageTier:         "premium",
		Extras:              []string{"childSeat", "foundationDonation"},
		BabySeats:           1,
		DonationAmount:      20,
	}
}

func TestGetCreatesEmptyDraftOnFirstVisit(t *testing.T) {
	svc, st := newTestDraftService(nil)
	sessionID := uuid.New()

	rec, err := svc.Get(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.CurrentStep != entity.StepOne {
		t.Errorf("new draft starts at %q, want step1", rec.CurrentStep)
	}

	// Created draft persists.
	stored, err := st.Load(context.Background(), sessionID)
	if err != nil || stored == nil {
		t.Fatalf("draft was not persisted: rec=%v err=%v", stored, err)
	}
}

func TestVehicleChangeInvalidatesSelections(t *testing.T) {
	svc, _ := newTestDraftService(testCatalog())
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := svc.SetVehicle(ctx, sessionID, selectVehicleReq()); err != nil {
		t.Fatalf("SetVehicle: %v", err)
	}
	rec, err := svc.UpdateStepOne(ctx, sessionID, stepOneReq())
	if err != nil {
		t.Fatalf("UpdateStepOne: %v", err)
	}
	if len(rec.Step1.Coverage.Extras) == 0 || rec.Step1.Coverage.DonationAmount != 20 {
		t.Fatalf("precondition failed, coverage not populated: %+v", rec.Step1.Coverage)
	}
	rec.Submission = &entity.Submission{BookingID: "BK-1", ServerTotal: 300}

	// Same vehicle id keeps everything.
	rec.SetVehicle(&entity.Vehicle{ID: 7, Name: "Test SUV", PricePerDay: 55})
	if len(rec.Step1.Coverage.Extras) == 0 {
		t.Error("same vehicle id must keep extras")
	}

	// A different vehicle invalidates extras, seats, donation and submission.
	rec.SetVehicle(&entity.Vehicle{ID: 8, Name: "Other", PricePerDay: 70})
	if len(rec.Step1.Coverage.Extras) != 0 {
		t.Error("extras not cleared on vehicle change")
	}
	if rec.Step1.Coverage.ChildSeats.Total() != 0 {
		t.Error("child seat counters not cleared on vehicle change")
	}
	if rec.Step1.Coverage.DonationAmount != 0 {
		t.Error("donation not cleared on vehicle change")
	}
	if rec.Submission != nil {
		t.Error("submission not cleared on vehicle change")
	}
}

func TestUpdateStepOneRecomputesPricing(t *testing.T) {
	svc, _ := newTestDraftService(testCatalog())
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := svc.SetVehicle(ctx, sessionID, selectVehicleReq()); err != nil {
		t.Fatalf("SetVehicle: %v", err)
	}
	rec, err := svc.UpdateStepOne(ctx, sessionID, stepOneReq())
	if err != nil {
		t.Fatalf("UpdateStepOne: %v", err)
	}

	if rec.Pricing == nil {
		t.Fatal("pricing not recomputed after step1 update")
	}
	if rec.Pricing.DurationDays != 3 {
		t.Errorf("duration = %d, want 3", rec.Pricing.DurationDays)
	}
	if rec.Pricing.BaseRentalCost != 150 {
		t.Errorf("base rental = %.2f, want 150.00", rec.Pricing.BaseRentalCost)
	}
	if rec.Pricing.PackageCost != 75 {
		t.Errorf("package = %.2f, want 75.00", rec.Pricing.PackageCost)
	}
	// child seat 5.22 x 1 x 3 days + 20 donation
	if rec.Pricing.AddonsCost != 35.66 {
		t.Errorf("addons = %.2f, want 35.66", rec.Pricing.AddonsCost)
	}
	if rec.Pricing.LocationFee != 0 {
		t.Errorf("same-store location fee = %.2f, want 0", rec.Pricing.LocationFee)
	}
}

func TestUpdateStepOneDifferentLocations(t *testing.T) {
	svc, _ := newTestDraftService(nil)
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := svc.SetVehicle(ctx, sessionID, selectVehicleReq()); err != nil {
		t.Fatalf("SetVehicle: %v", err)
	}

	req := stepOneReq()
	req.SameStore = false
	req.DropoffLocationID = 2
	req.PickupLocationPrice = 10
	req.DropoffLocationPrice = 15
	req.Extras = nil
	req.BabySeats = 0
	req.DonationAmount = 0

	rec, err := svc.UpdateStepOne(ctx, sessionID, req)
	if err != nil {
		t.Fatalf("UpdateStepOne: %v", err)
	}
	if rec.Pricing.LocationFee != 25 {
		t.Errorf("location fee = %.2f, want 25.00", rec.Pricing.LocationFee)
	}
}

func TestUpdateStepOneDiscardsStaleSubmission(t *testing.T) {
	svc, st := newTestDraftService(nil)
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := svc.SetVehicle(ctx, sessionID, selectVehicleReq()); err != nil {
		t.Fatalf("SetVehicle: %v", err)
	}
	if _, err := svc.UpdateStepOne(ctx, sessionID, stepOneReq()); err != nil {
		t.Fatalf("UpdateStepOne: %v", err)
	}

	// Pretend a booking was created.
	rec, _ := st.Load(ctx, sessionID)
	rec.Submission = &entity.Submission{BookingID: "BK-9", ServerTotal: 245}
	if err := st.Save(ctx, sessionID, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	updated, err := svc.UpdateStepOne(ctx, sessionID, stepOneReq())
	if err != nil {
		t.Fatalf("UpdateStepOne after booking: %v", err)
	}
	if updated.Submission != nil {
		t.Error("stale submission must be discarded after a step1 change")
	}
}

func TestUpdateStepOneOutOfOfficeFlag(t *testing.T) {
	svc, _ := newTestDraftService(nil)
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := svc.SetVehicle(ctx, sessionID, selectVehicleReq()); err != nil {
		t.Fatalf("SetVehicle: %v", err)
	}

	req := stepOneReq()
	req.PickupDatetime = "2026-05-10 06:30" // before office opens
	rec, err := svc.UpdateStepOne(ctx, sessionID, req)
	if err != nil {
		t.Fatalf("UpdateStepOne: %v", err)
	}
	if !rec.Step1.Rental.OutOfOffice {
		t.Error("pickup before office hours should set the out-of-office flag")
	}
	if rec.Pricing.OutOfOfficeFee != 25 {
		t.Errorf("out-of-office fee = %.2f, want 25.00", rec.Pricing.OutOfOfficeFee)
	}
}

func TestUpdateStepOneRejectsBadDates(t *testing.T) {
	svc, _ := newTestDraftService(nil)
	sessionID := uuid.New()
	ctx := context.Background()

	req := stepOneReq()
	req.ReturnDatetime = "2026-05-10 09:00" // before pickup
	_, err := svc.UpdateStepOne(ctx, sessionID, req)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestCatalogOutageDegradesPricing(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewDraftService(st, stubCatalog{err: context.DeadlineExceeded}, testPricingConfig(), zap.NewNop())
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := svc.SetVehicle(ctx, sessionID, selectVehicleReq()); err != nil {
		t.Fatalf("SetVehicle: %v", err)
	}
	rec, err := svc.UpdateStepOne(ctx, sessionID, stepOneReq())
	if err != nil {
		t.Fatalf("a catalog outage must not block the wizard: %v", err)
	}
	// Donation still counts; the catalog-backed child seat is dropped.
	if rec.Pricing.AddonsCost != 20 {
		t.Errorf("addons = %.2f, want 20.00 (donation only)", rec.Pricing.AddonsCost)
	}
}
