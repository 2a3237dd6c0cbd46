package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/petdohod/workshop-api/internal/api/response"
	"github.com/petdohod/workshop-api/internal/domain"
	"github.com/petdohod/workshop-api/internal/service"
)

// RegistrationHandler handles the public signup form and the admin
// registration endpoints.
type RegistrationHandler struct {
	registrationService *service.RegistrationService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Submit handles the public registration form.
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input domain.RegistrationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "Neplatný požadavek")
		return
	}

	reg, err := h.registrationService.Submit(r.Context(), input)
	if err != nil {
		handleError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"registrationId": reg.ID,
		"variableSymbol": reg.VariableSymbol,
	})
}

// List returns registrations, optionally filtered by ?status=. Admin only.
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	regs, err := h.registrationService.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		handleError(w, err)
		return
	}

	response.OK(w, regs)
}

// Export streams the registrations as a CSV download. Admin only.
func (h *RegistrationHandler) Export(w http.ResponseWriter, r *http.Request) {
	regs, err := h.registrationService.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		handleError(w, err)
		return
	}

	data, err := service.ExportCSV(regs)
	if err != nil {
		handleError(w, err)
		return
	}

	filename := fmt.Sprintf("registrace-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// UpdateStatus sets a registration's status from a {id, status} body. Admin
// only.
func (h *RegistrationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if input.ID <= 0 {
		response.BadRequest(w, "missing id")
		return
	}

	reg, err := h.registrationService.UpdateStatus(r.Context(), input.ID, input.Status)
	if err != nil {
		handleError(w, err)
		return
	}

	response.OK(w, reg)
}

// Delete permanently removes the registration named by ?id=. Admin only.
func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(w, r)
	if !ok {
		return
	}

	if err := h.registrationService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	response.OK(w, map[string]bool{"deleted": true})
}
