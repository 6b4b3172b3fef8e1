package settlement

import (
	"fmt"
	"strings"
	"time"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/utils"

	"github.com/shopspring/decimal"
)

// LateFeePolicy selects how the late return fine scales with lateness.
type LateFeePolicy string

const (
	// LateFeeFlat charges FlatLateMultiplier of the daily rate per late day.
	LateFeeFlat LateFeePolicy = "flat"
	// LateFeeTiered picks the multiplier from the delay tier of the whole return.
	LateFeeTiered LateFeePolicy = "tiered"
)

// Delay tiers, in days late.
const (
	ShortDelayMaxDays  = 3
	MediumDelayMaxDays = 7
)

var (
	FlatLateMultiplier    = decimal.RequireFromString("0.5")
	ShortDelayMultiplier  = decimal.RequireFromString("0.5")
	MediumDelayMultiplier = decimal.RequireFromString("1.0")
	LongDelayMultiplier   = decimal.RequireFromString("1.5")

	FuelFee         = decimal.RequireFromString("100.00")
	MileageFeePerKm = decimal.RequireFromString("0.50")
)

// ParseLateFeePolicy accepts the configuration spelling of a policy.
// An empty value selects LateFeeFlat.
func ParseLateFeePolicy(s string) (LateFeePolicy, error) {
	switch LateFeePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", LateFeeFlat:
		return LateFeeFlat, nil
	case LateFeeTiered:
		return LateFeeTiered, nil
	}
	return "", fmt.Errorf("unknown late fee policy %q (expected %q or %q)", s, LateFeeFlat, LateFeeTiered)
}

// Multiplier returns the fraction of the daily rate charged per late day.
func (p LateFeePolicy) Multiplier(daysLate int) decimal.Decimal {
	if p != LateFeeTiered {
		return FlatLateMultiplier
	}
	switch {
	case daysLate <= ShortDelayMaxDays:
		return ShortDelayMultiplier
	case daysLate <= MediumDelayMaxDays:
		return MediumDelayMultiplier
	default:
		return LongDelayMultiplier
	}
}

// LateReturnFine charges for every day the car came back after the expected
// return date. It also returns the number of late days, zero when on time.
func LateReturnFine(policy LateFeePolicy, expected, returned time.Time, dailyRate decimal.Decimal) (domain.Fine, int, bool) {
	daysLate := utils.DaysBetween(expected, returned)
	if daysLate <= 0 {
		return domain.Fine{}, 0, false
	}

	amount := decimal.NewFromInt(int64(daysLate)).Mul(dailyRate).Mul(policy.Multiplier(daysLate)).Round(2)
	if !amount.IsPositive() {
		return domain.Fine{}, daysLate, false
	}
	return domain.Fine{
		Type:       domain.FineLateReturn,
		Amount:     amount,
		ReasonCode: domain.ReasonLateReturn,
		Reference:  reference(fmt.Sprintf("%d dias", daysLate)),
	}, daysLate, true
}

func FuelFine(fuelFull bool) (domain.Fine, bool) {
	if fuelFull {
		return domain.Fine{}, false
	}
	return domain.Fine{
		Type:       domain.FineFuelNotFull,
		Amount:     FuelFee,
		ReasonCode: domain.ReasonFuelNotFull,
	}, true
}

// DamageFine charges the damage value assessed at return.
func DamageFine(damage decimal.Decimal) (domain.Fine, bool) {
	amount := damage.Round(2)
	if !amount.IsPositive() {
		return domain.Fine{}, false
	}
	return domain.Fine{
		Type:       domain.FineVehicleDamage,
		Amount:     amount,
		ReasonCode: domain.ReasonVehicleDamage,
		Reference:  reference("Valor danos: R$ " + amount.StringFixed(2)),
	}, true
}

// MileageFine charges each km driven beyond the expected mileage. Rentals
// without an expected mileage, or returns without a reading, are never fined.
func MileageFine(reading, expected *int32) (domain.Fine, bool) {
	if reading == nil || *reading == 0 || expected == nil || *expected == 0 {
		return domain.Fine{}, false
	}
	excess := *reading - *expected
	if excess <= 0 {
		return domain.Fine{}, false
	}
	return domain.Fine{
		Type:       domain.FineExcessMileage,
		Amount:     decimal.NewFromInt(int64(excess)).Mul(MileageFeePerKm).Round(2),
		ReasonCode: domain.ReasonExcessMileage,
		Reference:  reference(fmt.Sprintf("%d km excedentes", excess)),
	}, true
}

// ParseDamageValue reads the damage value typed at the counter. Anything that
// is not a non-negative number counts as no damage.
func ParseDamageValue(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil || v.IsNegative() {
		return decimal.Zero
	}
	return v
}

func reference(s string) *string {
	return &s
}
