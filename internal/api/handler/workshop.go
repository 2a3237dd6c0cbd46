package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/petdohod/workshop-api/internal/api/response"
	"github.com/petdohod/workshop-api/internal/domain"
	"github.com/petdohod/workshop-api/internal/service"
)

// WorkshopHandler handles the public listing and the admin workshop CRUD.
type WorkshopHandler struct {
	workshopService *service.WorkshopService
}

// NewWorkshopHandler creates a new workshop handler
func NewWorkshopHandler(workshopService *service.WorkshopService) *WorkshopHandler {
	return &WorkshopHandler{workshopService: workshopService}
}

// List returns active workshops with registration counts. Public.
func (h *WorkshopHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.workshopService.ListActive(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	response.OK(w, listings)
}

// Get returns one workshop by id, active or not. Admin only.
func (h *WorkshopHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "invalid id")
		return
	}

	workshop, err := h.workshopService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	response.OK(w, workshop)
}

// Create handles workshop creation
func (h *WorkshopHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.WorkshopInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	workshop, err := h.workshopService.Create(r.Context(), input)
	if err != nil {
		handleError(w, err)
		return
	}

	response.Created(w, workshop)
}

// Update replaces a workshop from a body that carries its id.
func (h *WorkshopHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID int64 `json:"id"`
		domain.WorkshopInput
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if input.ID <= 0 {
		response.BadRequest(w, "missing id")
		return
	}

	workshop, err := h.workshopService.Update(r.Context(), input.ID, input.WorkshopInput)
	if err != nil {
		handleError(w, err)
		return
	}

	response.OK(w, workshop)
}

// Delete deactivates the workshop named by ?id=.
func (h *WorkshopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(w, r)
	if !ok {
		return
	}

	if err := h.workshopService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	response.OK(w, map[string]bool{"deleted": true})
}

// queryID parses the ?id= query parameter, writing a 400 when it is missing
// or garbage.
func queryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		response.BadRequest(w, "missing id")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "invalid id")
		return 0, false
	}
	return id, true
}
