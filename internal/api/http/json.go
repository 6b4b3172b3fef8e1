package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/logger"
)

const maxBodyBytes = 1_048_576 // 1 MB

type errorResponse struct {
	Error  string   `json:"erro"`
	Fields []string `json:"campos,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	return writeJSON(w, status, &errorResponse{Error: message})
}

func writeMissingFields(w http.ResponseWriter, fields []string) error {
	return writeJSON(w, http.StatusBadRequest, &errorResponse{Error: "Campos faltando", Fields: fields})
}

// readJSON decodes the body into a raw field map first so that required
// fields can be reported by name, then into data.
func readJSON(w http.ResponseWriter, r *http.Request, data any) (map[string]json.RawMessage, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]json.RawMessage{}
	}
	body, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, data); err != nil {
		return nil, err
	}
	return raw, nil
}

// missingFields lists the required fields that are absent, null or an empty
// string.
func missingFields(raw map[string]json.RawMessage, required ...string) []string {
	var missing []string
	for _, f := range required {
		v, ok := raw[f]
		if !ok {
			missing = append(missing, f)
			continue
		}
		switch string(v) {
		case "null", `""`:
			missing = append(missing, f)
		}
	}
	return missing
}

// errorStatus maps domain errors to HTTP status codes. The client always sees
// the sentinel message, never the wrapping context.
var errorStatus = []struct {
	err    error
	status int
}{
	{domain.ErrInvalidDate, http.StatusBadRequest},
	{domain.ErrReturnBeforePickup, http.StatusBadRequest},
	{domain.ErrInvalidCarStatus, http.StatusBadRequest},
	{domain.ErrCarInMaintenance, http.StatusBadRequest},
	{domain.ErrCarAlreadyRented, http.StatusBadRequest},
	{domain.ErrRentalNotOpen, http.StatusNotFound},
	{domain.ErrRentalNotFound, http.StatusNotFound},
	{domain.ErrCarNotFound, http.StatusNotFound},
}

// writeServiceError reports err to the client. Unknown errors are a 500
// carrying the underlying reason.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			writeJSONError(w, e.status, e.err.Error())
			return
		}
	}
	logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
	writeJSONError(w, http.StatusInternalServerError, err.Error())
}
