package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultPaymentMethod = "Cartão Crédito"

type Payment struct {
	ID     int32
	Total  decimal.Decimal
	Method string
}

type FineType string

const (
	FineLateReturn    FineType = "ATRASO"
	FineFuelNotFull   FineType = "TANQUE_NAO_CHEIO"
	FineVehicleDamage FineType = "DANOS_VEICULO"
	FineExcessMileage FineType = "EXCESSO_QUILOMETRAGEM"
)

// Reason codes stored in multa.codigo_motivo.
const (
	ReasonLateReturn    = "ATRASO"
	ReasonFuelNotFull   = "TANQUE"
	ReasonVehicleDamage = "DANO"
	ReasonExcessMileage = "KM_EXC"
)

type Fine struct {
	PaymentID  int32
	Type       FineType
	Amount     decimal.Decimal
	ReasonCode string
	Reference  *string
}

type DiscountType string

const (
	DiscountLoyalty        DiscountType = "CLIENTE_FIEL"
	DiscountEarlyBooking   DiscountType = "RESERVA_ANTECIPADA"
	DiscountCleanRecord    DiscountType = "SEM_MULTAS"
	DiscountAllCategories  DiscountType = "TODAS_CATEGORIAS"
	DiscountAllAccessories DiscountType = "TODOS_ACESSORIOS"
)

// Codes stored in desconto.codigo_desconto.
const (
	CodeLoyalty        = "LOYALTY_50"
	CodeEarlyBooking   = "EARLY_BOOKING"
	CodeCleanRecord    = "NOFINE"
	CodeAllCategories  = "ALLCATS"
	CodeAllAccessories = "ALLACC"
)

type Discount struct {
	PaymentID int32
	Type      DiscountType
	Amount    decimal.Decimal
	Code      string
	Active    bool
}

// PastRental is one of the customer's previous rentals, used by the
// clean record discount.
type PastRental struct {
	RentalID int32
	HadFine  bool
}

// CustomerHistory gathers everything the discount rules need to know about
// a customer at settlement time. TotalRentals includes the rental being
// settled; RecentRentals excludes it and holds at most five entries, newest
// first.
type CustomerHistory struct {
	TotalRentals     int
	RecentRentals    []PastRental
	CategoriesUsed   int
	CategoriesTotal  int
	AccessoriesUsed  int
	AccessoriesTotal int
}

// FineRecord is a persisted fine as exposed by the read projections.
type FineRecord struct {
	PaymentID    int32           `json:"num_pagamento" db:"num_pagamento"`
	Type         string          `json:"tipo_multa" db:"tipo_multa"`
	Amount       decimal.Decimal `json:"valor" db:"valor"`
	ReasonCode   string          `json:"codigo_motivo" db:"codigo_motivo"`
	Reference    *string         `json:"referencia" db:"referencia"`
	PaymentTotal decimal.Decimal `json:"valor_pagamento" db:"valor_pagamento"`
}

type DiscountRecord struct {
	PaymentID    int32           `json:"num_pagamento" db:"num_pagamento"`
	Type         string          `json:"tipo_desconto" db:"tipo_desconto"`
	Amount       decimal.Decimal `json:"valor" db:"valor"`
	Code         string          `json:"codigo_desconto" db:"codigo_desconto"`
	Active       bool            `json:"flag_ativo" db:"flag_ativo"`
	PaymentTotal decimal.Decimal `json:"valor_pagamento" db:"valor_pagamento"`
}

// CustomerFineRecord is a fine together with the rental and car it was
// charged on.
type CustomerFineRecord struct {
	PaymentID  int32           `json:"num_pagamento" db:"num_pagamento"`
	Type       string          `json:"tipo_multa" db:"tipo_multa"`
	Amount     decimal.Decimal `json:"valor" db:"valor"`
	ReasonCode string          `json:"codigo_motivo" db:"codigo_motivo"`
	Reference  *string         `json:"referencia" db:"referencia"`
	RentalID   int32           `json:"num_locacao" db:"num_locacao"`
	PickupDate time.Time       `json:"data_retirada" db:"data_retirada"`
	CarName    string          `json:"nome_carro" db:"nome_carro"`
}

// OverdueRental is an open rental whose expected return date has passed.
type OverdueRental struct {
	RentalID           int32           `db:"num_locacao"`
	Plate              string          `db:"placa"`
	CustomerCPF        string          `db:"cpf_cliente"`
	ExpectedReturnDate time.Time       `db:"data_prevista_devolucao"`
	DailyRate          decimal.Decimal `db:"preco_diaria"`
}
