package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/petdohod/workshop-api/internal/api/response"
	"github.com/petdohod/workshop-api/internal/domain"
)

// handleError translates service errors into HTTP responses with the Czech
// messages the frontend shows verbatim. Unknown errors are logged and hidden
// behind a generic message.
func handleError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		response.BadRequest(w, verr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrWorkshopNotFound):
		response.NotFound(w, "Workshop nebyl nalezen")
	case errors.Is(err, domain.ErrRegistrationNotFound):
		response.NotFound(w, "Registrace nebyla nalezena")
	case errors.Is(err, domain.ErrDuplicateRegistration):
		response.BadRequest(w, "Na tento termín už jsi registrovaný/á")
	case errors.Is(err, domain.ErrAlreadySubscribed):
		response.BadRequest(w, "Email už je přihlášený")
	case errors.Is(err, domain.ErrInvalidStatus):
		response.BadRequest(w, "Neplatný status")
	default:
		log.Error().Err(err).Msg("Request failed")
		response.InternalError(w, "Něco se pokazilo. Zkus to prosím znovu.")
	}
}
