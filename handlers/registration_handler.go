package handlers

import (
	"net/http"

	"github.com/Dosada05/card-tournaments/middleware"
	"github.com/Dosada05/card-tournaments/services"
)

type RegistrationHandler struct {
	registrationService services.RegistrationService
}

func NewRegistrationHandler(rs services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: rs}
}

// RegisterHandler обрабатывает POST /tournaments/{tournamentID}/register.
// Регистрируется текущий пользователь из токена.
func (h *RegistrationHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getUUIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required to register")
		return
	}

	reg, err := h.registrationService.RegisterUser(r.Context(), tournamentID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"registration": reg}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListPlayersHandler обрабатывает GET /tournaments/{tournamentID}/players
func (h *RegistrationHandler) ListPlayersHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getUUIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.registrationService.ListPlayers(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CancelHandler обрабатывает DELETE /registrations/{registrationID}.
// Отменить регистрацию может только её владелец или администратор.
func (h *RegistrationHandler) CancelHandler(w http.ResponseWriter, r *http.Request) {
	registrationID, err := getUUIDFromURL(r, "registrationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	requesterID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required to cancel registration")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(r.Context())

	if err := h.registrationService.CancelRegistration(r.Context(), registrationID, requesterID, role == middleware.RoleAdmin); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
