package usecase

import (
	"context"
	"fmt"
	"time"

	"rental-booking/internal/catalog"
	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/store"
	"rental-booking/internal/dto/request"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DraftService interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*entity.DraftRecord, error)
	SetVehicle(ctx context.Context, sessionID uuid.UUID, req *request.SelectVehicleRequest) (*entity.DraftRecord, error)
	UpdateStepOne(ctx context.Context, sessionID uuid.UUID, req *request.StepOneRequest) (*entity.DraftRecord, error)
	UpdateStepTwo(ctx context.Context, sessionID uuid.UUID, req *request.StepTwoRequest) (*entity.DraftRecord, error)
	UpdateStepThree(ctx context.Context, sessionID uuid.UUID, req *request.StepThreeRequest) (*entity.DraftRecord, error)
	UpdateStepFour(ctx context.Context, sessionID uuid.UUID, req *request.StepFourRequest) (*entity.DraftRecord, error)
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

type draftService struct {
	store      store.DraftStore
	catalog    catalog.Catalog
	reconciler *Reconciler
	pricing    utils.PricingConfig
	log        *zap.Logger
}

func NewDraftService(st store.DraftStore, cat catalog.Catalog, pricing utils.PricingConfig, log *zap.Logger) DraftService {
	return &draftService{
		store:      st,
		catalog:    cat,
		reconciler: NewReconciler(log),
		pricing:    pricing,
		log:        log.With(zap.String("service", "draft")),
	}
}

// Get returns the session's draft, creating an empty one on first visit.
func (s *draftService) Get(ctx context.Context, sessionID uuid.UUID) (*entity.DraftRecord, error) {
	rec, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	if rec == nil {
		rec = entity.NewDraftRecord()
		if err := s.store.Save(ctx, sessionID, rec); err != nil {
			return nil, fmt.Errorf("save new draft: %w", err)
		}
		s.log.Info("Draft created", zap.String("session_id", sessionID.String()))
	}
	return rec, nil
}

func (s *draftService) SetVehicle(ctx context.Context, sessionID uuid.UUID, req *request.SelectVehicleRequest) (*entity.DraftRecord, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Select vehicle validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Field: "vehicle", Reason: utils.FormatValidationErrors(errs)}
	}

	rec, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	vehicle := &entity.Vehicle{
		ID:          req.ID,
		Name:        req.Name,
		PricePerDay: req.PricePerDay,
		ImageURL:    req.ImageURL,
	}
	for _, pkg := range req.Packages {
		vehicle.Packages = append(vehicle.Packages, entity.Package{
			Tier:        entity.PackageTier(pkg.Tier),
			PricePerDay: pkg.PricePerDay,
			Features:    pkg.Features,
			PlanID:      pkg.PlanID,
		})
	}

	rec.SetVehicle(vehicle)
	s.recompute(ctx, rec)

	if err := s.store.Save(ctx, sessionID, rec); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	s.log.Info("Vehicle selected",
		zap.String("session_id", sessionID.String()),
		zap.Int64("vehicle_id", req.ID),
		zap.Float64("price_per_day", req.PricePerDay),
	)
	return rec, nil
}

func (s *draftService) UpdateStepOne(ctx context.Context, sessionID uuid.UUID, req *request.StepOneRequest) (*entity.DraftRecord, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Step1 validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Field: "step1", Reason: utils.FormatValidationErrors(errs)}
	}

	pickupAt, err := time.Parse(request.InputDatetime, req.PickupDatetime)
	if err != nil {
		return nil, &ValidationError{Field: "pickup_datetime", Reason: "invalid datetime, expected YYYY-MM-DD HH:mm"}
	}
	dropoffAt, err := time.Parse(request.InputDatetime, req.ReturnDatetime)
	if err != nil {
		return nil, &ValidationError{Field: "return_datetime", Reason: "invalid datetime, expected YYYY-MM-DD HH:mm"}
	}
	if !dropoffAt.After(pickupAt) {
		return nil, &ValidationError{Field: "return_datetime", Reason: "return must be after pickup"}
	}

	rec, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rental := entity.RentalDetails{
		PickupAt:             &pickupAt,
		DropoffAt:            &dropoffAt,
		PickupLocationID:     req.PickupLocationID,
		DropoffLocationID:    req.DropoffLocationID,
		PickupLocationPrice:  req.PickupLocationPrice,
		DropoffLocationPrice: req.DropoffLocationPrice,
		SameStore:            req.SameStore,
	}
	if rental.SameStore {
		rental.DropoffLocationID = rental.PickupLocationID
	}
	if s.outOfOffice(pickupAt) || s.outOfOffice(dropoffAt) {
		rental.OutOfOffice = true
		rental.OutOfOfficeFee = s.pricing.OutOfOfficeFee
	}

	coverage := entity.Coverage{
		PackageTier: entity.PackageTier(req.PackageTier),
		ChildSeats: entity.ChildSeats{
			Baby:    req.BabySeats,
			Toddler: req.ToddlerSeats,
			Booster: req.BoosterSeats,
		},
		DonationAmount: req.DonationAmount,
	}
	for _, raw := range req.Extras {
		ref, err := entity.ParseExtraRef(raw)
		if err != nil {
			// Unknown selections are dropped, never fatal.
			s.log.Warn("Dropping unparseable extra", zap.String("extra", raw), zap.Error(err))
			continue
		}
		coverage.Extras = append(coverage.Extras, ref)
	}

	rec.Step1 = entity.StepOneData{Rental: rental, Coverage: coverage}

	// The frozen server price is only valid for the draft it was computed
	// from; any step1 change invalidates it.
	if rec.Submission != nil {
		s.log.Info("Discarding stale submission after step1 change",
			zap.String("session_id", sessionID.String()),
			zap.String("booking_id", rec.Submission.BookingID))
		rec.DiscardSubmission()
	}

	s.recompute(ctx, rec)
	rec.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, sessionID, rec); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return rec, nil
}

func (s *draftService) UpdateStepTwo(ctx context.Context, sessionID uuid.UUID, req *request.StepTwoRequest) (*entity.DraftRecord, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Step2 validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Field: "step2", Reason: utils.FormatValidationErrors(errs)}
	}

	rec, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rec.Step2 = entity.Customer{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		LicenseNumber: req.LicenseNumber,
	}
	rec.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, sessionID, rec); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return rec, nil
}

func (s *draftService) UpdateStepThree(ctx context.Context, sessionID uuid.UUID, req *request.StepThreeRequest) (*entity.DraftRecord, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Step3 validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Field: "step3", Reason: utils.FormatValidationErrors(errs)}
	}

	rec, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rec.Step3 = entity.PaymentChoice{
		Method:               entity.PaymentMethod(req.PaymentMethod),
		TermsAccepted:        req.TermsAccepted,
		PrivacyAccepted:      req.PrivacyAccepted,
		DamagePolicyAccepted: req.DamagePolicyAccepted,
	}
	rec.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, sessionID, rec); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return rec, nil
}

func (s *draftService) UpdateStepFour(ctx context.Context, sessionID uuid.UUID, req *request.StepFourRequest) (*entity.DraftRecord, error) {
	rec, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rec.Step4 = entity.ReviewData{Confirmed: req.Confirmed}
	rec.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, sessionID, rec); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return rec, nil
}

func (s *draftService) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	s.log.Info("Draft cleared", zap.String("session_id", sessionID.String()))
	return nil
}

// recompute refreshes the cached breakdown. A catalog outage degrades to
// pricing without catalog-backed extras rather than blocking the wizard.
func (s *draftService) recompute(ctx context.Context, rec *entity.DraftRecord) {
	addons, err := s.catalog.ListAddons(ctx)
	if err != nil {
		s.log.Error("Addon catalog unavailable, pricing without catalog extras", zap.Error(err))
		addons = nil
	}

	resolved := s.reconciler.Resolve(rec.Step1.Coverage, addons)
	breakdown := ComputeBreakdown(rec, resolved, recordDays(rec), s.pricing)
	rec.Pricing = &breakdown
}

func (s *draftService) outOfOffice(t time.Time) bool {
	hour := t.Hour()
	return hour < s.pricing.OfficeOpenHour || hour >= s.pricing.OfficeCloseHour
}
