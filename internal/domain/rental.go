package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusOpen   RentalStatus = "EM_ANDAMENTO"
	RentalStatusClosed RentalStatus = "FINALIZADO"
)

// Rental is one row of aluguel joined with the car category it was taken
// from. A rental is closed once a devolucao row references it; Returned is
// filled from that existence check and never stored.
type Rental struct {
	ID                 int32
	PickupDate         time.Time
	ExpectedReturnDate time.Time
	ExpectedMileage    *int32
	ExpectedPrice      decimal.NullDecimal
	EmployeeID         int32
	Plate              string
	CustomerCPF        string
	Accessories        []string

	Category  string
	DailyRate decimal.Decimal
	Returned  bool
}

func (r *Rental) Status() RentalStatus {
	if r.Returned {
		return RentalStatusClosed
	}
	return RentalStatusOpen
}

// Return is the closing record of a rental (devolucao).
type Return struct {
	RentalID     int32
	PaymentID    int32
	FuelFull     bool
	CarCondition string
	ReturnDate   time.Time
	Mileage      *int32
	DamageValue  decimal.Decimal
}
