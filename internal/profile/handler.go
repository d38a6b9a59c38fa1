package profile

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/kidtutor/backend/internal/models"
)

// Handler handles HTTP requests for profiles and the intro quiz.
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

// GetProfile handles GET /api/v1/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	p, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		log.Printf("[profile] get failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get profile"})
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "profile not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SaveProfile handles POST /api/v1/profile
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req models.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Age <= 0 || req.Grade == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "age and grade are required"})
		return
	}

	if err := h.service.SaveProfile(r.Context(), userID, req); err != nil {
		log.Printf("[profile] save failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save profile"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "profile updated successfully"})
}

// Status handles GET /api/v1/profile/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	resp, err := h.service.Status(r.Context(), userID)
	if err != nil {
		log.Printf("[profile] status failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get profile status"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SubmitIntroQuiz handles POST /api/v1/profile/quiz
func (h *Handler) SubmitIntroQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req models.IntroQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.service.SubmitIntroQuiz(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrNoProfile) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "profile not found"})
			return
		}
		log.Printf("[profile] intro quiz failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to submit intro quiz"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListSubjects handles GET /api/v1/subjects
func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("id_by_name"); name != "" {
		_, id, ok := models.ParseSubject(name)
		if !ok {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "subject not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"id": id})
		return
	}

	subjects := make([]models.SubjectInfo, 0, len(models.AllSubjects))
	for _, s := range models.AllSubjects {
		subjects = append(subjects, models.SubjectInfo{ID: s.ID(), Name: string(s)})
	}
	writeJSON(w, http.StatusOK, subjects)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
