package settlement

import (
	"strings"
	"time"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/utils"

	"github.com/shopspring/decimal"
)

// Input carries the facts known when a car is handed back.
type Input struct {
	Rental       *domain.Rental
	ReturnDate   time.Time
	CarCondition string
	FuelFull     bool
	DamageValue  decimal.Decimal
	Mileage      *int32
}

// Result is the full outcome of settling a rental. Nothing in it has been
// persisted yet.
type Result struct {
	RentalDays     int
	DaysLate       int
	BaseCost       decimal.Decimal
	TotalFines     decimal.Decimal
	TotalDiscounts decimal.Decimal
	FinalAmount    decimal.Decimal
	Fines          []domain.Fine
	Discounts      []domain.Discount

	CarStatus              domain.CarStatus
	NeedsMaintenance       bool
	MaintenanceCost        decimal.Decimal
	MaintenanceDescription string
}

// Calculator applies the penalty and discount rules. It holds no state
// besides the late fee policy and is safe for concurrent use.
type Calculator struct {
	policy LateFeePolicy
}

func NewCalculator(policy LateFeePolicy) *Calculator {
	return &Calculator{policy: policy}
}

func (c *Calculator) Policy() LateFeePolicy {
	return c.policy
}

// Settle computes base cost, fines, discounts and the resulting car status
// for a return happening on in.ReturnDate.
func (c *Calculator) Settle(in Input, history domain.CustomerHistory) Result {
	rental := in.Rental
	res := Result{
		Fines:     []domain.Fine{},
		Discounts: []domain.Discount{},
	}

	res.RentalDays = utils.DaysBetween(rental.PickupDate, in.ReturnDate)
	if res.RentalDays < 1 {
		res.RentalDays = 1
	}
	res.BaseCost = decimal.NewFromInt(int64(res.RentalDays)).Mul(rental.DailyRate).Round(2)

	if f, daysLate, ok := LateReturnFine(c.policy, rental.ExpectedReturnDate, in.ReturnDate, rental.DailyRate); ok {
		res.Fines = append(res.Fines, f)
		res.DaysLate = daysLate
	}
	if f, ok := FuelFine(in.FuelFull); ok {
		res.Fines = append(res.Fines, f)
	}
	damage, damaged := DamageFine(in.DamageValue)
	if damaged {
		res.Fines = append(res.Fines, damage)
	}
	if f, ok := MileageFine(in.Mileage, rental.ExpectedMileage); ok {
		res.Fines = append(res.Fines, f)
	}

	discounts := []func() (domain.Discount, bool){
		func() (domain.Discount, bool) { return LoyaltyDiscount(history) },
		func() (domain.Discount, bool) { return EarlyBookingDiscount(rental.PickupDate, in.ReturnDate) },
		func() (domain.Discount, bool) { return CleanRecordDiscount(history) },
		func() (domain.Discount, bool) { return AllCategoriesDiscount(history) },
		func() (domain.Discount, bool) { return AllAccessoriesDiscount(history) },
	}
	for _, rule := range discounts {
		if d, ok := rule(); ok {
			res.Discounts = append(res.Discounts, d)
		}
	}

	res.TotalFines = decimal.Zero
	for _, f := range res.Fines {
		res.TotalFines = res.TotalFines.Add(f.Amount)
	}
	res.TotalDiscounts = decimal.Zero
	for _, d := range res.Discounts {
		res.TotalDiscounts = res.TotalDiscounts.Add(d.Amount)
	}
	res.FinalAmount = decimal.Max(res.BaseCost.Add(res.TotalFines).Sub(res.TotalDiscounts), decimal.Zero)

	res.CarStatus = domain.CarStatusAvailable
	res.MaintenanceCost = decimal.Zero
	if damaged || HasDamageKeyword(in.CarCondition) {
		res.CarStatus = domain.CarStatusMaintenance
		res.NeedsMaintenance = true
		if damaged {
			res.MaintenanceCost = damage.Amount
			res.MaintenanceDescription = "Manutenção por danos no valor de R$ " + damage.Amount.StringFixed(2)
		} else {
			res.MaintenanceDescription = "Manutenção necessária: " + strings.ToUpper(in.CarCondition)
		}
	}
	return res
}

// ProjectLateFee is the late return fine the rental would incur if it were
// returned on day. Used for reporting on rentals that are still out.
func (c *Calculator) ProjectLateFee(expected, day time.Time, dailyRate decimal.Decimal) (decimal.Decimal, int) {
	f, daysLate, ok := LateReturnFine(c.policy, expected, day, dailyRate)
	if !ok {
		return decimal.Zero, daysLate
	}
	return f.Amount, daysLate
}
