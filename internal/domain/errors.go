package domain

import "errors"

// Messages are returned verbatim to API clients.
var (
	ErrRentalNotFound     = errors.New("Aluguel não encontrado")
	ErrRentalNotOpen      = errors.New("Aluguel não encontrado ou já devolvido")
	ErrCarNotFound        = errors.New("Carro inexistente")
	ErrCarInMaintenance   = errors.New("Carro em manutenção e indisponível.")
	ErrCarAlreadyRented   = errors.New("Carro já está alugado (aluguel sem devolução).")
	ErrInvalidDate        = errors.New("Formato de data inválido. Use YYYY-MM-DD.")
	ErrReturnBeforePickup = errors.New("data_prevista_devolucao não pode ser anterior a data_retirada.")
	ErrInvalidCarStatus   = errors.New("Status de carro inválido")

	ErrMaintenanceNotFound = errors.New("Manutenção não encontrada")
)
