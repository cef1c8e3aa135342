package response

import (
	"rental-booking/internal/data/entity"
	"rental-booking/pkg/utils"
)

// PriceBreakdownResponse renders every money figure as a 2-decimal string,
// matching the wire format of the booking API.
type PriceBreakdownResponse struct {
	DurationDays    int    `json:"duration_days"`
	BaseRentalCost  string `json:"base_rental_cost"`
	PackageCost     string `json:"package_cost"`
	AddonsCost      string `json:"addons_cost"`
	LocationFee     string `json:"location_fee"`
	OutOfOfficeFee  string `json:"out_of_office_fee"`
	Subtotal        string `json:"subtotal"`
	TaxPercentage   string `json:"tax_percentage"`
	TaxAmount       string `json:"tax_amount"`
	Total           string `json:"total"`
	UpfrontAmount   string `json:"upfront_amount"`
	RemainingAmount string `json:"remaining_amount"`
}

func BreakdownToResponse(b *entity.PriceBreakdown) *PriceBreakdownResponse {
	if b == nil {
		return nil
	}
	return &PriceBreakdownResponse{
		DurationDays:    b.DurationDays,
		BaseRentalCost:  utils.FormatAmount(b.BaseRentalCost),
		PackageCost:     utils.FormatAmount(b.PackageCost),
		AddonsCost:      utils.FormatAmount(b.AddonsCost),
		LocationFee:     utils.FormatAmount(b.LocationFee),
		OutOfOfficeFee:  utils.FormatAmount(b.OutOfOfficeFee),
		Subtotal:        utils.FormatAmount(b.Subtotal),
		TaxPercentage:   utils.FormatAmount(b.TaxPercentage),
		TaxAmount:       utils.FormatAmount(b.TaxAmount),
		Total:           utils.FormatAmount(b.Total),
		UpfrontAmount:   utils.FormatAmount(b.UpfrontAmount),
		RemainingAmount: utils.FormatAmount(b.RemainingAmount),
	}
}

type SubmissionResponse struct {
	BookingID       string `json:"booking_id"`
	OrderRef        string `json:"order_ref,omitempty"`
	TotalAmount     string `json:"total_amount"`
	UpfrontAmount   string `json:"upfront_amount"`
	RemainingAmount string `json:"remaining_amount"`
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
	PaymentURL      string `json:"payment_url,omitempty"`
}

func SubmissionToResponse(s *entity.Submission) *SubmissionResponse {
	if s == nil {
		return nil
	}
	return &SubmissionResponse{
		BookingID:       s.BookingID,
		OrderRef:        s.OrderRef,
		TotalAmount:     utils.FormatAmount(s.ServerTotal),
		UpfrontAmount:   utils.FormatAmount(s.ServerUpfront),
		RemainingAmount: utils.FormatAmount(s.ServerRemaining),
		PaymentIntentID: s.PaymentIntentID,
		PaymentURL:      s.PaymentURL,
	}
}

type DraftResponse struct {
	Car         *entity.Vehicle         `json:"car,omitempty"`
	CurrentStep string                  `json:"current_step"`
	Step1       entity.StepOneData      `json:"step1"`
	Step2       entity.Customer         `json:"step2"`
	Step3       entity.PaymentChoice    `json:"step3"`
	Step4       entity.ReviewData       `json:"step4"`
	Pricing     *PriceBreakdownResponse `json:"pricing,omitempty"`
	Submission  *SubmissionResponse     `json:"submission,omitempty"`
}

func DraftToResponse(rec *entity.DraftRecord) *DraftResponse {
	return &DraftResponse{
		Car:         rec.Car,
		CurrentStep: string(rec.CurrentStep),
		Step1:       rec.Step1,
		Step2:       rec.Step2,
		Step3:       rec.Step3,
		Step4:       rec.Step4,
		Pricing:     BreakdownToResponse(rec.Pricing),
		Submission:  SubmissionToResponse(rec.Submission),
	}
}
