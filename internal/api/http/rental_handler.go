package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/service"
	"carcompany-backend/internal/utils"
)

type RentalHandler struct {
	rentals service.RentalService
	returns service.ReturnService
	reports service.ReportService
}

func NewRentalHandler(rentals service.RentalService, returns service.ReturnService, reports service.ReportService) *RentalHandler {
	return &RentalHandler{rentals: rentals, returns: returns, reports: reports}
}

type openRentalRequest struct {
	Plate              string              `json:"placa"`
	CustomerCPF        string              `json:"cpf_cliente"`
	EmployeeID         int32               `json:"num_funcionario"`
	PickupDate         string              `json:"data_retirada"`
	ExpectedReturnDate string              `json:"data_prevista_devolucao"`
	ExpectedMileage    *int32              `json:"km_previsto"`
	ExpectedPrice      decimal.NullDecimal `json:"valor_previsto"`
	Accessories        []string            `json:"acessorios"`
}

type openRentalResponse struct {
	Message  string `json:"mensagem"`
	RentalID int32  `json:"num_locacao"`
}

func (h *RentalHandler) OpenRental(w http.ResponseWriter, r *http.Request) {
	var req openRentalRequest
	raw, err := readJSON(w, r, &req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if missing := missingFields(raw, "placa", "cpf_cliente", "num_funcionario", "data_retirada", "data_prevista_devolucao"); len(missing) > 0 {
		writeMissingFields(w, missing)
		return
	}

	rental, err := h.rentals.OpenRental(r.Context(), service.OpenRentalRequest{
		Plate:              req.Plate,
		CustomerCPF:        req.CustomerCPF,
		EmployeeID:         req.EmployeeID,
		PickupDate:         req.PickupDate,
		ExpectedReturnDate: req.ExpectedReturnDate,
		ExpectedMileage:    req.ExpectedMileage,
		ExpectedPrice:      req.ExpectedPrice,
		Accessories:        req.Accessories,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, openRentalResponse{Message: "Locação realizada!", RentalID: rental.ID})
}

type rentalResponse struct {
	RentalID           int32               `json:"num_locacao"`
	PickupDate         string              `json:"data_retirada"`
	ExpectedReturnDate string              `json:"data_prevista_devolucao"`
	ExpectedMileage    *int32              `json:"km_previsto"`
	ExpectedPrice      decimal.NullDecimal `json:"valor_previsto"`
	EmployeeID         int32               `json:"num_funcionario"`
	Plate              string              `json:"placa"`
	CustomerCPF        string              `json:"cpf_cliente"`
	Accessories        []string            `json:"acessorios"`
	Category           string              `json:"tipo_categoria"`
	DailyRate          decimal.Decimal     `json:"preco_diaria"`
	Status             domain.RentalStatus `json:"status_aluguel"`
}

func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	id, ok := rentalID(w, r)
	if !ok {
		return
	}
	rental, err := h.rentals.GetRental(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	accessories := rental.Accessories
	if accessories == nil {
		accessories = []string{}
	}
	writeJSON(w, http.StatusOK, rentalResponse{
		RentalID:           rental.ID,
		PickupDate:         utils.FormatDate(rental.PickupDate),
		ExpectedReturnDate: utils.FormatDate(rental.ExpectedReturnDate),
		ExpectedMileage:    rental.ExpectedMileage,
		ExpectedPrice:      rental.ExpectedPrice,
		EmployeeID:         rental.EmployeeID,
		Plate:              rental.Plate,
		CustomerCPF:        rental.CustomerCPF,
		Accessories:        accessories,
		Category:           rental.Category,
		DailyRate:          rental.DailyRate,
		Status:             rental.Status(),
	})
}

type returnRequest struct {
	RentalID      int32           `json:"num_locacao"`
	CarCondition  string          `json:"estado_carro"`
	FuelFull      bool            `json:"combustivel_completo"`
	DamageValue   json.RawMessage `json:"valor_danos"`
	Mileage       json.RawMessage `json:"km_registro"`
	PaymentMethod string          `json:"forma_pagamento"`
}

type financialSummary struct {
	BaseCost       decimal.Decimal `json:"valor_base"`
	TotalFines     decimal.Decimal `json:"total_multas"`
	TotalDiscounts decimal.Decimal `json:"total_descontos"`
	FinalAmount    decimal.Decimal `json:"valor_final"`
}

type appliedFine struct {
	Type       domain.FineType `json:"tipo"`
	Amount     decimal.Decimal `json:"valor"`
	Reference  *string         `json:"referencia"`
	ReasonCode string          `json:"codigo_motivo"`
}

type appliedDiscount struct {
	Type   domain.DiscountType `json:"tipo"`
	Amount decimal.Decimal     `json:"valor"`
	Code   string              `json:"codigo_desconto"`
}

type returnDetails struct {
	RentalDays int              `json:"dias_locacao"`
	ReturnDate string           `json:"data_devolucao"`
	CarStatus  domain.CarStatus `json:"status_carro"`
	DaysLate   int              `json:"dias_atraso,omitempty"`
}

type returnResponse struct {
	Message       string            `json:"mensagem"`
	PaymentID     int32             `json:"num_pagamento"`
	Summary       financialSummary  `json:"resumo_financeiro"`
	Fines         []appliedFine     `json:"multas_aplicadas"`
	Discounts     []appliedDiscount `json:"descontos_aplicados"`
	Details       returnDetails     `json:"detalhes"`
	MaintenanceID *int32            `json:"num_manutencao,omitempty"`
	Note          string            `json:"observacao,omitempty"`
}

func (h *RentalHandler) ReturnCar(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	raw, err := readJSON(w, r, &req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if missing := missingFields(raw, "num_locacao", "estado_carro", "combustivel_completo"); len(missing) > 0 {
		writeMissingFields(w, missing)
		return
	}

	res, err := h.returns.ReturnCar(r.Context(), service.ReturnRequest{
		RentalID:      req.RentalID,
		CarCondition:  req.CarCondition,
		FuelFull:      req.FuelFull,
		DamageValue:   rawDamageValue(req.DamageValue),
		Mileage:       rawMileage(req.Mileage),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := returnResponse{
		Message:   "Devolução realizada com sucesso!",
		PaymentID: res.PaymentID,
		Summary: financialSummary{
			BaseCost:       res.BaseCost,
			TotalFines:     res.TotalFines,
			TotalDiscounts: res.TotalDiscounts,
			FinalAmount:    res.FinalAmount,
		},
		Fines:     make([]appliedFine, 0, len(res.Fines)),
		Discounts: make([]appliedDiscount, 0, len(res.Discounts)),
		Details: returnDetails{
			RentalDays: res.RentalDays,
			ReturnDate: utils.FormatDate(res.ReturnDate),
			CarStatus:  res.CarStatus,
			DaysLate:   res.DaysLate,
		},
		MaintenanceID: res.MaintenanceID,
	}
	for _, f := range res.Fines {
		resp.Fines = append(resp.Fines, appliedFine{Type: f.Type, Amount: f.Amount, Reference: f.Reference, ReasonCode: f.ReasonCode})
	}
	for _, d := range res.Discounts {
		resp.Discounts = append(resp.Discounts, appliedDiscount{Type: d.Type, Amount: d.Amount, Code: d.Code})
	}
	if res.MaintenanceID != nil {
		resp.Note = "Carro enviado para manutenção."
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *RentalHandler) ListFines(w http.ResponseWriter, r *http.Request) {
	id, ok := rentalID(w, r)
	if !ok {
		return
	}
	fines, err := h.reports.ListFinesByRental(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if fines == nil {
		fines = []domain.FineRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"multas": fines})
}

func (h *RentalHandler) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	id, ok := rentalID(w, r)
	if !ok {
		return
	}
	discounts, err := h.reports.ListDiscountsByRental(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if discounts == nil {
		discounts = []domain.DiscountRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"descontos": discounts})
}

func (h *RentalHandler) CustomerFineHistory(w http.ResponseWriter, r *http.Request) {
	fines, err := h.reports.ListFinesByCustomer(r.Context(), mux.Vars(r)["cpf"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if fines == nil {
		fines = []domain.CustomerFineRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"multas": fines})
}

func rentalID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "num_locacao inválido")
		return 0, false
	}
	return int32(id), true
}

// rawDamageValue accepts valor_danos either as a JSON number or as a string
// and hands the text to the damage rule, which decides what is usable.
func rawDamageValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// rawMileage accepts km_registro either as a JSON integer or as a numeric
// string. A reading that is neither counts as no reading.
func rawMileage(raw json.RawMessage) *int32 {
	text := rawDamageValue(raw)
	if text == "" {
		return nil
	}
	km, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
	if err != nil {
		return nil
	}
	v := int32(km)
	return &v
}
