package service

import (
	"math"
	"strings"

	"utsavia/internal/entities"
)

const taxRate = 0.18

const (
	defaultGuestCount = 25

	tokenRate = 0.20
	tokenMin  = 500.0
	tokenMax  = 2000.0
)

// budgetRangeKeys keeps the public quoting order stable.
var budgetRangeKeys = []string{
	"5000-10000",
	"10000-20000",
	"20000-50000",
	"50000-100000",
	"100000+",
}

var budgetRanges = map[string]entities.BudgetRange{
	"5000-10000":   {Key: "5000-10000", Min: 5000, Max: 10000},
	"10000-20000":  {Key: "10000-20000", Min: 10000, Max: 20000},
	"20000-50000":  {Key: "20000-50000", Min: 20000, Max: 50000},
	"50000-100000": {Key: "50000-100000", Min: 50000, Max: 100000},
	"100000+":      {Key: "100000+", Min: 100000, Max: 250000},
}

var occasionMultipliers = map[entities.Occasion]float64{
	entities.OccasionBirthday:    1.0,
	entities.OccasionAnniversary: 1.2,
	entities.OccasionBabyShower:  1.1,
	entities.OccasionCorporate:   1.5,
	entities.OccasionOther:       1.0,
}

// citySurchargeRates stays data-driven; unlisted cities cost nothing extra.
var citySurchargeRates = map[string]float64{
	"mumbai":    0.15,
	"delhi":     0.12,
	"bangalore": 0.10,
	"chennai":   0.08,
	"kolkata":   0.05,
	"hyderabad": 0.08,
	"pune":      0.10,
	"ahmedabad": 0.05,
	"jaipur":    0.03,
	"surat":     0.02,
}

// AddonPriceLookup resolves an addon id to its price. Unknown ids should
// resolve to the caller's default, typically zero.
type AddonPriceLookup func(id string) float64

// PricingService derives quotes from occasion, budget tier, guest count and
// location. It is stateless; every method is pure and safe to call from
// concurrent requests.
type PricingService struct{}

func NewPricingService() *PricingService {
	return &PricingService{}
}

// BudgetRanges returns the closed budget-range table in quoting order.
func (s *PricingService) BudgetRanges() []entities.BudgetRange {
	out := make([]entities.BudgetRange, 0, len(budgetRangeKeys))
	for _, key := range budgetRangeKeys {
		out = append(out, budgetRanges[key])
	}
	return out
}

// EstimatePrice returns a quick single-number quote including tax. The
// location surcharge compounds multiplicatively here; CalculateBreakdown
// instead reports it as a separate additive amount. Both call sites depend
// on their shape, so the asymmetry is deliberate. An unknown budget key
// prices to zero rather than erroring.
func (s *PricingService) EstimatePrice(req entities.PricingRequest) float64 {
	rng, ok := budgetRanges[req.BudgetRangeKey]
	if !ok {
		return 0
	}
	subtotal := rng.Min * occasionMultiplier(req.Occasion) * guestCountMultiplier(guestsOrDefault(req.GuestCount))
	subtotal *= 1 + citySurchargeRate(req.Location)
	return math.Round(subtotal * (1 + taxRate))
}

// CalculateBreakdown returns the fully itemized quote. An unknown budget
// key yields an all-zero breakdown; callers must check for it.
func (s *PricingService) CalculateBreakdown(req entities.PricingRequest, addonPrice AddonPriceLookup) entities.PriceBreakdown {
	breakdown := entities.PriceBreakdown{AddonPrices: map[string]float64{}}

	rng, ok := budgetRanges[req.BudgetRangeKey]
	if !ok {
		return breakdown
	}

	guestMult := guestCountMultiplier(guestsOrDefault(req.GuestCount))
	adjustedBase := rng.Min * occasionMultiplier(req.Occasion) * guestMult
	surcharge := adjustedBase * citySurchargeRate(req.Location)

	totalAddons := 0.0
	for _, id := range req.AddonIDs {
		price := 0.0
		if addonPrice != nil {
			price = addonPrice(id)
		}
		breakdown.AddonPrices[id] = price
		totalAddons += price
	}

	subtotal := adjustedBase + surcharge + totalAddons
	breakdown.BasePrice = adjustedBase
	breakdown.LocationSurcharge = surcharge
	breakdown.GuestCountMultiplier = guestMult
	breakdown.TotalPrice = subtotal
	breakdown.Taxes = subtotal * taxRate
	breakdown.FinalAmount = math.Round(subtotal + breakdown.Taxes)
	return breakdown
}

// CalculateTokenAmount computes the upfront deposit: 20% of the total,
// floored at 500 and capped at 2000.
func (s *PricingService) CalculateTokenAmount(totalAmount float64) float64 {
	token := math.Round(totalAmount * tokenRate)
	if token < tokenMin {
		return tokenMin
	}
	if token > tokenMax {
		return tokenMax
	}
	return token
}

func occasionMultiplier(occasion entities.Occasion) float64 {
	if mult, ok := occasionMultipliers[occasion]; ok {
		return mult
	}
	return 1.0
}

// guestCountMultiplier is a step function; boundaries are inclusive on the
// lower bucket, so exactly 25 guests pays the 1.0 tier.
func guestCountMultiplier(guestCount int) float64 {
	switch {
	case guestCount <= 10:
		return 0.8
	case guestCount <= 25:
		return 1.0
	case guestCount <= 50:
		return 1.3
	case guestCount <= 100:
		return 1.6
	default:
		return 2.0
	}
}

func guestsOrDefault(guestCount int) int {
	if guestCount <= 0 {
		return defaultGuestCount
	}
	return guestCount
}

func citySurchargeRate(city string) float64 {
	return citySurchargeRates[strings.ToLower(strings.TrimSpace(city))]
}
