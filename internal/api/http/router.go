package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every endpoint of the rental API.
func NewRouter(rentals *RentalHandler, fleet *FleetHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID, Recovery, Logging)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/aluguel/devolver", rentals.ReturnCar).Methods(http.MethodPost)
	r.HandleFunc("/aluguel", rentals.OpenRental).Methods(http.MethodPost)
	r.HandleFunc("/aluguel/{id:[0-9]+}", rentals.GetRental).Methods(http.MethodGet)
	r.HandleFunc("/aluguel/{id:[0-9]+}/multas", rentals.ListFines).Methods(http.MethodGet)
	r.HandleFunc("/aluguel/{id:[0-9]+}/descontos", rentals.ListDiscounts).Methods(http.MethodGet)
	r.HandleFunc("/clientes/{cpf}/historico-multas", rentals.CustomerFineHistory).Methods(http.MethodGet)

	r.HandleFunc("/carros", fleet.ListCars).Methods(http.MethodGet)
	r.HandleFunc("/categorias", fleet.ListCategories).Methods(http.MethodGet)

	return r
}
