package usecase

import (
	"context"
	"fmt"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// successGraceDelay keeps the draft readable by the confirmation page for a
// moment before it is destroyed.
const successGraceDelay = 10 * time.Second

// Navigator is the finite-state machine over the wizard steps. Forward
// transitions run exit actions (booking creation, payment intent); backward
// transitions only move the pointer and never discard later-step data.
type Navigator interface {
	Advance(ctx context.Context, sessionID uuid.UUID) (*entity.DraftRecord, error)
	Back(ctx context.Context, sessionID uuid.UUID) (*entity.DraftRecord, error)
}

type navigator struct {
	store      store.DraftStore
	submit     SubmitService
	graceDelay time.Duration
	log        *zap.Logger
}

func NewNavigator(st store.DraftStore, submit SubmitService, log *zap.Logger) Navigator {
	return &navigator{
		store:      st,
		submit:     submit,
		graceDelay: successGraceDelay,
		log:        log.With(zap.String("service", "navigator")),
	}
}

func (n *navigator) Advance(ctx context.Context, sessionID uuid.UUID) (*entity.DraftRecord, error) {
	rec, err := n.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	if rec == nil {
		return nil, ErrRedirectToSearch
	}

	if err := n.entryGuard(rec); err != nil {
		n.log.Warn("Step entry guard failed, redirecting to search",
			zap.String("session_id", sessionID.String()),
			zap.String("step", string(rec.CurrentStep)))
		return nil, err
	}

	switch rec.CurrentStep {
	case entity.StepOne:
		if rec.Car == nil {
			return nil, &ValidationError{Field: "vehicle", Reason: "select a vehicle before continuing"}
		}
		// Step1 exit creates the booking server-side; the draft already
		// holding a booking id (retry after a back-navigation without
		// price changes) skips the call.
		if rec.Submission == nil || rec.Submission.BookingID == "" {
			rec, err = n.submit.CreateBooking(ctx, sessionID)
			if err != nil {
				return nil, err
			}
		}
		rec.CurrentStep = entity.StepTwo

	case entity.StepTwo:
		rec.CurrentStep = entity.StepThree

	case entity.StepThree:
		if !rec.Step3.ConsentsGiven() {
			return nil, &ValidationError{Field: "consents", Reason: "all three consents must be accepted"}
		}
		if rec.Step3.Method == "" {
			return nil, &ValidationError{Field: "payment_method", Reason: "choose a payment method"}
		}
		if rec.Step3.Method == entity.PaymentMethodCard {
			rec, err = n.submit.CreatePaymentIntent(ctx, sessionID)
			if err != nil {
				return nil, err
			}
		}
		rec.CurrentStep = entity.StepFour

	case entity.StepFour:
		rec.Step4.Confirmed = true
		rec.CurrentStep = entity.StepSuccess
		n.scheduleClear(sessionID)

	case entity.StepSuccess:
		// Terminal; nothing to advance to.
		return rec, nil

	default:
		return nil, fmt.Errorf("unknown wizard step %q", rec.CurrentStep)
	}

	rec.UpdatedAt = time.Now()
	if err := n.store.Save(ctx, sessionID, rec); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	n.log.Info("Step advanced",
		zap.String("session_id", sessionID.String()),
		zap.String("step", string(rec.CurrentStep)))
	return rec, nil
}

func (n *navigator) Back(ctx context.Context, sessionID uuid.UUID) (*entity.DraftRecord, error) {
	rec, err := n.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	if rec == nil {
		return nil, ErrRedirectToSearch
	}

	switch rec.CurrentStep {
	case entity.StepTwo:
		rec.CurrentStep = entity.StepOne
	case entity.StepThree:
		rec.CurrentStep = entity.StepTwo
	case entity.StepFour:
		rec.CurrentStep = entity.StepThree
	default:
		// step1 has nothing before it; success is terminal.
		return rec, nil
	}

	rec.UpdatedAt = time.Now()
	if err := n.store.Save(ctx, sessionID, rec); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return rec, nil
}

// entryGuard enforces the minimum data any step past the vehicle list needs:
// dates and a pickup location.
func (n *navigator) entryGuard(rec *entity.DraftRecord) error {
	if !rec.Step1.Rental.HasDates() || rec.Step1.Rental.PickupLocationID == 0 {
		return ErrRedirectToSearch
	}
	return nil
}

// scheduleClear destroys the draft shortly after the success transition. The
// request context is gone by then, hence the background context.
func (n *navigator) scheduleClear(sessionID uuid.UUID) {
	delay := n.graceDelay
	go func() {
		time.Sleep(delay)
		if err := n.store.Clear(context.Background(), sessionID); err != nil {
			n.log.Error("Failed to clear draft after success",
				zap.String("session_id", sessionID.String()),
				zap.Error(err))
			return
		}
		n.log.Info("Draft cleared after success", zap.String("session_id", sessionID.String()))
	}()
}
