package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ai-learning-service/internal/app"
	"ai-learning-service/internal/domain"
)

// APIHandler exposes the REST surface of the learning service.
type APIHandler struct {
	auth        *app.AuthService
	progression *app.ProgressionService
}

func NewAPIHandler(auth *app.AuthService, progression *app.ProgressionService) *APIHandler {
	return &APIHandler{auth: auth, progression: progression}
}

// Register wires all routes onto the mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/signup", h.handleSignup)
	mux.HandleFunc("POST /api/auth/login", h.handleLogin)
	mux.HandleFunc("GET /api/levels", h.handleListLevels)
	mux.HandleFunc("GET /api/levels/{id}", h.handleGetLevel)
	mux.HandleFunc("GET /api/levels/{id}/quiz", h.handleGetQuiz)
	mux.HandleFunc("POST /api/levels/{id}/quiz/submit", RequireAuth(h.auth, h.handleSubmitQuiz))
	mux.HandleFunc("GET /api/profile", RequireAuth(h.auth, h.handleProfile))
	mux.HandleFunc("GET /api/user/progress", RequireAuth(h.auth, h.handleProgress))
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  app.SafeUser `json:"user"`
}

func (h *APIHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, user, err := h.auth.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (h *APIHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (h *APIHandler) handleListLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.progression.ListLevels(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if levels == nil {
		levels = []domain.Level{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"levels": levels})
}

func (h *APIHandler) handleGetLevel(w http.ResponseWriter, r *http.Request) {
	level, err := h.progression.GetLevel(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"level": level})
}

func (h *APIHandler) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, total, err := h.progression.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quiz": quiz, "total": total})
}

type submitRequest struct {
	Answers []int `json:"answers"`
}

func (h *APIHandler) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.progression.SubmitQuiz(r.Context(), r.PathValue("id"), userID, req.Answers)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *APIHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	user, err := h.progression.GetUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *APIHandler) handleProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	progress, err := h.progression.GetProgress(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// writeDomainError maps domain sentinels onto HTTP statuses; anything
// unrecognized is a 500 with a generic message.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrLevelNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidAnswers),
		errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "server error")
	}
}
