package entity

import (
	"time"
)

type Step string

const (
	StepOne     Step = "step1"
	StepTwo     Step = "step2"
	StepThree   Step = "step3"
	StepFour    Step = "step4"
	StepSuccess Step = "success"
)

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// RentalDetails holds the when/where of the reservation.
type RentalDetails struct {
	PickupAt             *time.Time `json:"pickup_at,omitempty"`
	DropoffAt            *time.Time `json:"dropoff_at,omitempty"`
	PickupLocationID     int64      `json:"pickup_location_id,omitempty"`
	DropoffLocationID    int64      `json:"dropoff_location_id,omitempty"`
	PickupLocationPrice  float64    `json:"pickup_location_price,omitempty"`
	DropoffLocationPrice float64    `json:"dropoff_location_price,omitempty"`
	SameStore            bool       `json:"same_store"`
	OutOfOffice          bool       `json:"out_of_office"`
	OutOfOfficeFee       float64    `json:"out_of_office_fee,omitempty"`
}

// LocationFee is zero for same-store rentals regardless of per-location prices.
func (r RentalDetails) LocationFee() float64 {
	if r.SameStore {
		return 0
	}
	return r.PickupLocationPrice + r.DropoffLocationPrice
}

func (r RentalDetails) HasDates() bool {
	return r.PickupAt != nil && r.DropoffAt != nil
}

// ChildSeats counts the three seat sub-types offered.
type ChildSeats struct {
	Baby    int `json:"baby"`
	Toddler int `json:"toddler"`
	Booster int `json:"booster"`
}

func (c ChildSeats) Total() int {
	return c.Baby + c.Toddler + c.Booster
}

// Coverage is the protection plan and extras chosen for the selected vehicle.
type Coverage struct {
	PackageTier    PackageTier `json:"package_tier,omitempty"`
	Extras         []ExtraRef  `json:"extras,omitempty"`
	ChildSeats     ChildSeats  `json:"child_seats"`
	DonationAmount float64     `json:"donation_amount,omitempty"`
}

// StepOneData is the rental plus coverage section collected on the first step.
type StepOneData struct {
	Rental   RentalDetails `json:"rental"`
	Coverage Coverage      `json:"coverage"`
}

// Customer data is collected, not computed; it never feeds pricing.
type Customer struct {
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
}

// PaymentChoice is the method and consent state from the payment step.
type PaymentChoice struct {
	Method               PaymentMethod `json:"method,omitempty"`
	TermsAccepted        bool          `json:"terms_accepted"`
	PrivacyAccepted      bool          `json:"privacy_accepted"`
	DamagePolicyAccepted bool          `json:"damage_policy_accepted"`
}

// ReviewData is the final-step confirmation flag.
type ReviewData struct {
	Confirmed bool `json:"confirmed"`
}

// Submission records what the booking API echoed back. Its totals are
// authoritative while BookingID is set; a price-affecting draft mutation
// afterwards must discard the whole section.
type Submission struct {
	BookingID       string  `json:"booking_id"`
	OrderRef        string  `json:"order_ref,omitempty"`
	ServerTotal     float64 `json:"server_total"`
	ServerUpfront   float64 `json:"server_upfront"`
	ServerRemaining float64 `json:"server_remaining"`
	PaymentIntentID string  `json:"payment_intent_id,omitempty"`
	PaymentURL      string  `json:"payment_url,omitempty"`
}

// PriceBreakdown is derived from the draft; it is cached on the record for
// display but never authoritative once a server total exists.
type PriceBreakdown struct {
	DurationDays    int     `json:"duration_days"`
	BaseRentalCost  float64 `json:"base_rental_cost"`
	PackageCost     float64 `json:"package_cost"`
	AddonsCost      float64 `json:"addons_cost"`
	LocationFee     float64 `json:"location_fee"`
	OutOfOfficeFee  float64 `json:"out_of_office_fee"`
	Subtotal        float64 `json:"subtotal"`
	TaxPercentage   float64 `json:"tax_percentage"`
	TaxAmount       float64 `json:"tax_amount"`
	Total           float64 `json:"total"`
	UpfrontAmount   float64 `json:"upfront_amount"`
	RemainingAmount float64 `json:"remaining_amount"`
}

// DraftRecord is the single persisted in-progress reservation for a session.
type DraftRecord struct {
	Car         *Vehicle        `json:"car,omitempty"`
	Step1       StepOneData     `json:"step1"`
	Step2       Customer        `json:"step2"`
	Step3       PaymentChoice   `json:"step3"`
	Step4       ReviewData      `json:"step4"`
	CurrentStep Step            `json:"current_step"`
	Pricing     *PriceBreakdown `json:"pricing,omitempty"`
	Submission  *Submission     `json:"submission,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewDraftRecord() *DraftRecord {
	return &DraftRecord{
		CurrentStep: StepOne,
		UpdatedAt:   time.Now(),
	}
}

// SetVehicle replaces the selected vehicle. A different vehicle id invalidates
// everything chosen against the old one: extras, seat counts, donation and any
// server submission.
func (d *DraftRecord) SetVehicle(v *Vehicle) {
	if d.Car == nil || d.Car.ID != v.ID {
		d.Step1.Coverage.Extras = nil
		d.Step1.Coverage.ChildSeats = ChildSeats{}
		d.Step1.Coverage.DonationAmount = 0
		d.Step1.Coverage.PackageTier = ""
		d.Submission = nil
		d.Pricing = nil
	}
	d.Car = v
	d.UpdatedAt = time.Now()
}

// DiscardSubmission drops stale server totals after a price-affecting change.
func (d *DraftRecord) DiscardSubmission() {
	d.Submission = nil
}

// ConsentsGiven reports whether all three payment-step checkboxes are ticked.
func (p PaymentChoice) ConsentsGiven() bool {
	return p.TermsAccepted && p.PrivacyAccepted && p.DamagePolicyAccepted
}
