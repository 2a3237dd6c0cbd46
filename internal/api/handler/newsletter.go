package handler

import (
	"encoding/json"
	"net/http"

	"github.com/petdohod/workshop-api/internal/api/response"
	"github.com/petdohod/workshop-api/internal/domain"
	"github.com/petdohod/workshop-api/internal/service"
)

// NewsletterHandler handles the public newsletter signup form.
type NewsletterHandler struct {
	newsletterService *service.NewsletterService
}

// NewNewsletterHandler creates a new newsletter handler
func NewNewsletterHandler(newsletterService *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// Subscribe adds an email to the newsletter list.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var input domain.SubscribeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "Neplatný požadavek")
		return
	}

	sub, err := h.newsletterService.Subscribe(r.Context(), input)
	if err != nil {
		handleError(w, err)
		return
	}

	response.OK(w, sub)
}
