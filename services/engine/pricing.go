package engine

import (
	"math"
	"time"

	"soothely/models"
)

// MaxGiftCardRedemption caps the gift-card amount a single booking may
// redeem, in currency units.
const MaxGiftCardRedemption = 500.0

// MinQuoteDurationMinutes is the floor below which multi-day quotes are
// rejected before pricing.
const MinQuoteDurationMinutes = 120

// quoteBandSpread is the ±10% band shown around the computed estimate.
const quoteBandSpread = 0.10

// PriceInput carries everything Price needs; the caller fetches the rule
// snapshots up front so the computation stays pure.
type PriceInput struct {
	BasePrice       float64
	DurationMinutes int
	Start           time.Time
	DurationRules   []models.DurationRule
	PricingRules    []models.PricingRule
	Discount        float64
	GiftCard        float64
}

// Price computes the customer price for a single booking. Uplifts compound
// sequentially: the duration uplift applies to the base price and the
// time-window uplift applies to the post-duration-uplift running price.
// Discount and gift card are flat subtractions clamped so the price never
// goes negative; the GST component is extracted from (not added to) the
// final price, which is GST-inclusive at 10%.
func Price(in PriceInput) models.PriceResult {
	res := models.PriceResult{BasePrice: in.BasePrice}
	price := in.BasePrice

	for _, dr := range in.DurationRules {
		if dr.DurationMinutes == in.DurationMinutes {
			res.DurationUpliftAmount = price * dr.UpliftPercent / 100
			price += res.DurationUpliftAmount
			break
		}
	}

	minuteOfDay := in.Start.Hour()*60 + in.Start.Minute()
	weekday := int(in.Start.Weekday())
	for _, pr := range in.PricingRules {
		if pr.DayOfWeek == weekday && pr.Contains(minuteOfDay) {
			res.TimeUpliftAmount = price * pr.UpliftPercent / 100
			price += res.TimeUpliftAmount
			break
		}
	}

	if in.Discount > 0 {
		res.DiscountAmount = math.Min(in.Discount, price)
		price -= res.DiscountAmount
	}
	if in.GiftCard > 0 {
		redeemable := math.Min(in.GiftCard, MaxGiftCardRedemption)
		res.GiftCardAmount = math.Min(redeemable, price)
		price -= res.GiftCardAmount
	}
	if price < 0 {
		price = 0
	}

	res.FinalPrice = price
	res.GSTComponent = price / 11
	return res
}

// QuoteEstimate prices a multi-day quote. The weekend multiplier is
// pro-rated: each day contributes its own multiplier and the average across
// all days scales the whole base amount, rather than weighting days by
// their individual durations. The customer sees a ±10% band around the
// computed actual; the actual is what gets persisted.
func QuoteEstimate(
	basePrice float64,
	totalDurationMinutes int,
	days []models.QuoteDay,
	pricingRules []models.PricingRule,
) (low, high, actual float64, err error) {
	if totalDurationMinutes < MinQuoteDurationMinutes {
		return 0, 0, 0, ErrBelowMinimumDuration
	}

	baseAmount := float64(totalDurationMinutes) / 60 * basePrice

	multiplier := 1.0
	if len(days) > 0 {
		sum := 0.0
		for _, d := range days {
			sum += dayMultiplier(d, pricingRules)
		}
		multiplier = sum / float64(len(days))
	}

	actual = baseAmount * multiplier
	low = math.Round(actual * (1 - quoteBandSpread))
	high = math.Round(actual * (1 + quoteBandSpread))
	return low, high, actual, nil
}

// dayMultiplier returns 1+pct/100 for Saturday/Sunday days that have a
// matching weekday pricing rule, 1.0 otherwise. An unparseable date
// contributes the neutral multiplier rather than aborting the estimate.
func dayMultiplier(d models.QuoteDay, pricingRules []models.PricingRule) float64 {
	date, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return 1.0
	}
	wd := date.Weekday()
	if wd != time.Saturday && wd != time.Sunday {
		return 1.0
	}
	for _, pr := range pricingRules {
		if pr.DayOfWeek == int(wd) {
			return 1 + pr.UpliftPercent/100
		}
	}
	return 1.0
}
