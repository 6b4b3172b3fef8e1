package settlement

import (
	"time"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/utils"

	"github.com/shopspring/decimal"
)

const (
	LoyaltyMinRentals     = 5
	EarlyBookingMinDays   = 7
	CleanRecordWindowSize = 5
)

var (
	LoyaltyAmount        = decimal.RequireFromString("50.00")
	EarlyBookingAmount   = decimal.RequireFromString("30.00")
	CleanRecordAmount    = decimal.RequireFromString("40.00")
	AllCategoriesAmount  = decimal.RequireFromString("60.00")
	AllAccessoriesAmount = decimal.RequireFromString("45.00")
)

func discount(t domain.DiscountType, code string, amount decimal.Decimal) domain.Discount {
	return domain.Discount{Type: t, Amount: amount, Code: code, Active: true}
}

// LoyaltyDiscount rewards customers with at least LoyaltyMinRentals rentals,
// the one being settled included.
func LoyaltyDiscount(h domain.CustomerHistory) (domain.Discount, bool) {
	if h.TotalRentals < LoyaltyMinRentals {
		return domain.Discount{}, false
	}
	return discount(domain.DiscountLoyalty, domain.CodeLoyalty, LoyaltyAmount), true
}

// EarlyBookingDiscount applies when the pickup date is at least
// EarlyBookingMinDays after today.
func EarlyBookingDiscount(pickup, today time.Time) (domain.Discount, bool) {
	if utils.DaysBetween(today, pickup) < EarlyBookingMinDays {
		return domain.Discount{}, false
	}
	return discount(domain.DiscountEarlyBooking, domain.CodeEarlyBooking, EarlyBookingAmount), true
}

// CleanRecordDiscount needs a full window of previous rentals, none of them fined.
func CleanRecordDiscount(h domain.CustomerHistory) (domain.Discount, bool) {
	if len(h.RecentRentals) < CleanRecordWindowSize {
		return domain.Discount{}, false
	}
	for _, r := range h.RecentRentals[:CleanRecordWindowSize] {
		if r.HadFine {
			return domain.Discount{}, false
		}
	}
	return discount(domain.DiscountCleanRecord, domain.CodeCleanRecord, CleanRecordAmount), true
}

// AllCategoriesDiscount needs every category rented at least once. An empty catalog never qualifies.
func AllCategoriesDiscount(h domain.CustomerHistory) (domain.Discount, bool) {
	if h.CategoriesTotal == 0 || h.CategoriesUsed != h.CategoriesTotal {
		return domain.Discount{}, false
	}
	return discount(domain.DiscountAllCategories, domain.CodeAllCategories, AllCategoriesAmount), true
}

// AllAccessoriesDiscount needs every accessory used at least once. An empty catalog never qualifies.
func AllAccessoriesDiscount(h domain.CustomerHistory) (domain.Discount, bool) {
	if h.AccessoriesTotal == 0 || h.AccessoriesUsed != h.AccessoriesTotal {
		return domain.Discount{}, false
	}
	return discount(domain.DiscountAllAccessories, domain.CodeAllAccessories, AllAccessoriesAmount), true
}
