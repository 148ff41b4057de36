package api

import (
	"net/http"

	"github.com/hyeon/vocaflash/internal/apperr"
	"github.com/hyeon/vocaflash/internal/logger"
	"github.com/hyeon/vocaflash/internal/models"
	"github.com/hyeon/vocaflash/internal/progression"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type userResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     *string `json:"email"`
	CreatedAt string  `json:"createdAt"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, token, err := s.Auth.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("registered user %s", user.Username)
	respondJSON(w, r, http.StatusCreated, map[string]any{
		"message": "회원가입이 완료되었습니다.",
		"token":   token,
		"user":    toUserResponse(user),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, token, err := s.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("user %s logged in", user.Username)
	respondJSON(w, r, http.StatusOK, map[string]any{
		"message": "로그인 성공",
		"token":   token,
		"user":    toUserResponse(user),
	})
}

// handleMe returns the account plus its progress, achievements and stats in
// one shot so the client can hydrate after login.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	user, err := s.Auth.UserByID(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if user == nil {
		handleError(w, r, apperr.NewNotFoundError("user", userID))
		return
	}

	engine := s.engineFor(userID)
	prog, err := engine.Progress(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	achievements, err := engine.Achievements(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	stats, err := engine.Stats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := map[string]any{
		"user":         toUserResponse(user),
		"progress":     prog,
		"achievements": achievements,
		"stats":        stats,
	}
	if prog != nil {
		resp["dailyProgress"] = progression.DailyProgress(*prog)
		resp["xpProgress"] = progression.XPProgress(*prog)
	}
	respondJSON(w, r, http.StatusOK, resp)
}
