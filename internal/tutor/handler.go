package tutor

import (
	"encoding/json"
	"net/http"

	"github.com/kidtutor/backend/internal/models"
)

// Handler handles HTTP requests for tutoring chat.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value("user_id").(int64)
	return userID, ok
}

// Chat handles POST /api/v1/tutor/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req models.TutorChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	subject, _, ok := models.ParseSubject(req.Subject)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "unknown subject"})
		return
	}
	if req.Message == "" && len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "message is required"})
		return
	}

	resp := h.service.Chat(r.Context(), userID, subject, req)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
