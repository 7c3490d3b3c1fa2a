package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/card-tournaments/services"
)

// maxBannerBytes ограничивает размер загружаемого баннера карточки.
const maxBannerBytes = 10 << 20 // 10MB

type CardHandler struct {
	cardService services.CardService
}

func NewCardHandler(cs services.CardService) *CardHandler {
	return &CardHandler{cardService: cs}
}

// CreateHandler обрабатывает POST /cards
func (h *CardHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateCardInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"card": card}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler обрабатывает GET /cards/{cardID}
func (h *CardHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getInt64IDFromURL(r, "cardID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	card, err := h.cardService.GetCardByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"card": card}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler обрабатывает GET /cards
func (h *CardHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cardService.ListCards(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"cards": cards}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler обрабатывает PUT /cards/{cardID}
func (h *CardHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getInt64IDFromURL(r, "cardID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateCardInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	card, err := h.cardService.UpdateCard(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"card": card}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler обрабатывает DELETE /cards/{cardID}
func (h *CardHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getInt64IDFromURL(r, "cardID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadBannerHandler обрабатывает POST /cards/{cardID}/banner.
// Принимает multipart/form-data с полем "banner".
func (h *CardHandler) UploadBannerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getInt64IDFromURL(r, "cardID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBannerBytes)
	if err := r.ParseMultipartForm(maxBannerBytes); err != nil {
		badRequestResponse(w, r, errors.New("failed to parse multipart form: file may be too large"))
		return
	}

	file, header, err := r.FormFile("banner")
	if err != nil {
		badRequestResponse(w, r, errors.New("missing 'banner' file field"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		badRequestResponse(w, r, errors.New("banner must be a jpeg, png or webp image"))
		return
	}

	card, err := h.cardService.UploadBanner(r.Context(), id, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"card": card}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
