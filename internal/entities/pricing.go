package entities

// Occasion is the closed set of event types the platform decorates for.
// Pricing never fails on values outside this set; they price like OTHER.
type Occasion string

const (
	OccasionBirthday    Occasion = "BIRTHDAY"
	OccasionAnniversary Occasion = "ANNIVERSARY"
	OccasionBabyShower  Occasion = "BABY_SHOWER"
	OccasionCorporate   Occasion = "CORPORATE"
	OccasionOther       Occasion = "OTHER"
)

func (o Occasion) Valid() bool {
	switch o {
	case OccasionBirthday, OccasionAnniversary, OccasionBabyShower, OccasionCorporate, OccasionOther:
		return true
	}
	return false
}

// BudgetRange is a named currency bracket; its minimum anchors the base price.
type BudgetRange struct {
	Key string  `json:"key"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type PricingRequest struct {
	Occasion       Occasion `json:"occasion"`
	BudgetRangeKey string   `json:"budget_range"`
	GuestCount     int      `json:"guest_count,omitempty"`
	Location       string   `json:"location,omitempty"`
	AddonIDs       []string `json:"addon_ids,omitempty"`
}

// PriceBreakdown is the fully itemized quote. BasePrice already carries the
// occasion and guest multipliers; LocationSurcharge is reported as a
// separate additive amount, unlike the quick estimate where it compounds.
type PriceBreakdown struct {
	BasePrice            float64            `json:"base_price"`
	AddonPrices          map[string]float64 `json:"addon_prices"`
	LocationSurcharge    float64            `json:"location_surcharge"`
	GuestCountMultiplier float64            `json:"guest_count_multiplier"`
	TotalPrice           float64            `json:"total_price"`
	Taxes                float64            `json:"taxes"`
	FinalAmount          float64            `json:"final_amount"`
}
