package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "DISPONIVEL"
	CarStatusRented      CarStatus = "ALUGADO"
	CarStatusMaintenance CarStatus = "MANUTENCAO"
)

// Valid reports whether s is one of the statuses stored in carro.status_carro.
func (s CarStatus) Valid() bool {
	switch s {
	case CarStatusAvailable, CarStatusRented, CarStatusMaintenance:
		return true
	}
	return false
}

type Category struct {
	Type        string          `json:"tipo" db:"tipo"`
	DailyRate   decimal.Decimal `json:"preco_diaria" db:"preco_diaria"`
	Description string          `json:"descricao" db:"descricao"`
}

type Car struct {
	Plate         string          `json:"placa"`
	Name          string          `json:"nome"`
	Year          int32           `json:"ano"`
	Category      string          `json:"tipo_categoria"`
	DailyRate     decimal.Decimal `json:"preco_diaria"`
	ImageURL      *string         `json:"imagem_url,omitempty"`
	Status        CarStatus       `json:"status_carro"`
	Mileage       *int32          `json:"quilometragem,omitempty"`
	MaintenanceID *int32          `json:"num_manutencao,omitempty"`
}

// Maintenance is an open or finished repair of a car. A nil CompletionDate
// means the car has no scheduled return from the workshop.
type Maintenance struct {
	ID             int32
	Plate          string
	Cost           decimal.Decimal
	StartDate      time.Time
	CompletionDate *time.Time
	Description    string
}

// BlocksRental reports whether the maintenance still keeps the car off the
// fleet on the given day.
func (m *Maintenance) BlocksRental(day time.Time) bool {
	if m.CompletionDate == nil {
		return true
	}
	return m.CompletionDate.After(day)
}
