package handler

import (
	"encoding/json"
	"net/http"

	"github.com/petdohod/workshop-api/internal/api/response"
	"github.com/petdohod/workshop-api/internal/domain"
	"github.com/petdohod/workshop-api/internal/service"
)

// ContactHandler handles the public contact form.
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Send forwards a contact form message to the site owner.
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var msg domain.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		response.BadRequest(w, "Neplatný požadavek")
		return
	}

	if err := h.contactService.Send(r.Context(), msg); err != nil {
		handleError(w, err)
		return
	}

	response.OK(w, map[string]string{"message": "Zpráva byla odeslána"})
}
