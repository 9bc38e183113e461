package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"awareness-training-service/internal/app"
	"awareness-training-service/internal/domain"
)

// APIHandler serves the read-only training data as JSON.
type APIHandler struct {
	service *app.TrainingService
}

func NewAPIHandler(service *app.TrainingService) *APIHandler {
	return &APIHandler{service: service}
}

// Register mounts the API routes on mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/leaderboard", h.leaderboard)
	mux.HandleFunc("/api/catalog", h.catalog)
	mux.HandleFunc("/api/quizzes", h.quizzes)
	mux.HandleFunc("/api/programs/", h.program)
}

func (h *APIHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, h.service.Leaderboard(r.Context(), limit))
}

func (h *APIHandler) catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Catalog(r.Context()))
}

type quizSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"questionCount"`
}

// quizzes lists quizzes without their questions so answers are not exposed.
func (h *APIHandler) quizzes(w http.ResponseWriter, r *http.Request) {
	quizzes := h.service.Quizzes(r.Context())
	out := make([]quizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		out = append(out, quizSummary{ID: quiz.ID, Title: quiz.Title, QuestionCount: len(quiz.Questions)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *APIHandler) program(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Path[len("/api/programs/"):]
	action, err := h.service.OpenProgram(r.Context(), id)
	if errors.Is(err, domain.ErrProgramNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, action)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
