package request

// InputDatetime is the layout the wizard UI submits dates in.
const InputDatetime = "2006-01-02 15:04"

type PackagePayload struct {
	Tier        string   `json:"tier" validate:"required,oneof=basic standard smart premium"`
	PricePerDay float64  `json:"price_per_day" validate:"gte=0"`
	Features    []string `json:"features"`
	PlanID      string   `json:"plan_id"`
}

type SelectVehicleRequest struct {
	ID          int64            `json:"id" validate:"required,gt=0"`
	Name        string           `json:"name" validate:"required"`
	PricePerDay float64          `json:"price_per_day" validate:"required,gt=0"`
	ImageURL    string           `json:"image_url"`
	Packages    []PackagePayload `json:"packages" validate:"dive"`
}

type StepOneRequest struct {
	PickupDatetime       string   `json:"pickup_datetime" validate:"required"`
	ReturnDatetime       string   `json:"return_datetime" validate:"required"`
	PickupLocationID     int64    `json:"pickup_location_id" validate:"required,gt=0"`
	DropoffLocationID    int64    `json:"dropoff_location_id" validate:"omitempty,gt=0"`
	PickupLocationPrice  float64  `json:"pickup_location_price" validate:"gte=0"`
	DropoffLocationPrice float64  `json:"dropoff_location_price" validate:"gte=0"`
	SameStore            bool     `json:"same_store"`
	PackageTier          string   `json:"package_tier" validate:"omitempty,oneof=basic standard smart premium"`
	Extras               []string `json:"extras"`
	BabySeats            int      `json:"baby_seats" validate:"gte=0"`
	ToddlerSeats         int      `json:"toddler_seats" validate:"gte=0"`
	BoosterSeats         int      `json:"booster_seats" validate:"gte=0"`
	DonationAmount       float64  `json:"donation_amount" validate:"gte=0"`
}

type StepTwoRequest struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Country       string `json:"country"`
	LicenseNumber string `json:"license_number"`
}

type StepThreeRequest struct {
	PaymentMethod        string `json:"payment_method" validate:"required,oneof=card cash bank_transfer"`
	TermsAccepted        bool   `json:"terms_accepted"`
	PrivacyAccepted      bool   `json:"privacy_accepted"`
	DamagePolicyAccepted bool   `json:"damage_policy_accepted"`
}

type StepFourRequest struct {
	Confirmed bool `json:"confirmed"`
}
