package api

import (
	"net/http"

	"github.com/hyeon/vocaflash/internal/apperr"
	"github.com/hyeon/vocaflash/internal/logger"
	"github.com/hyeon/vocaflash/internal/models"
	"github.com/hyeon/vocaflash/internal/progress"
)

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	engine := s.engineFor(userIDFromContext(r.Context()))

	prog, err := engine.Progress(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if prog == nil {
		handleError(w, r, apperr.NewNotFoundError("progress", "current user"))
		return
	}

	respondJSON(w, r, http.StatusOK, prog)
}

func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	engine := s.engineFor(userIDFromContext(r.Context()))

	var patch models.ProgressPatch
	if err := decodeJSON(r, &patch); err != nil {
		handleError(w, r, err)
		return
	}

	if err := engine.UpdateProgress(r.Context(), patch); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"message": "진행 상황이 업데이트되었습니다.",
	})
}

type answerRequest struct {
	WordID  *int  `json:"wordId"`
	Correct *bool `json:"correct"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	engine := s.engineFor(userIDFromContext(r.Context()))

	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.WordID == nil || req.Correct == nil {
		handleError(w, r, apperr.NewBadRequestError("단어 ID와 정답 여부가 필요합니다."))
		return
	}

	outcome, err := engine.RecordAnswer(r.Context(), *req.WordID, *req.Correct)
	if err != nil {
		handleError(w, r, err)
		return
	}

	message := "정답!"
	if !*req.Correct {
		message = "오답"
	}

	log.Debug("recorded answer for word %d, new box %d", *req.WordID, outcome.NewBox)
	respondJSON(w, r, http.StatusOK, map[string]any{
		"message":  message,
		"xpGained": outcome.XPGained,
		"newBox":   outcome.NewBox,
		"levelUp":  outcome.LevelUp,
		"unlocked": outcome.Unlocked,
	})
}

func (s *Server) handleLeitner(w http.ResponseWriter, r *http.Request) {
	engine := s.engineFor(userIDFromContext(r.Context()))

	records, err := engine.Reviews(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, records)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	engine := s.engineFor(userIDFromContext(r.Context()))

	var payload progress.SyncPayload
	if err := decodeJSON(r, &payload); err != nil {
		handleError(w, r, err)
		return
	}

	if err := engine.Sync(r.Context(), payload); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("synced client data (%d leitner records, %d achievements)",
		len(payload.LeitnerData), len(payload.Achievements))
	respondJSON(w, r, http.StatusOK, map[string]any{
		"message": "데이터가 동기화되었습니다.",
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	engine := s.engineFor(userIDFromContext(r.Context()))

	stats, err := engine.Stats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, stats)
}

type achievementRequest struct {
	AchievementID string `json:"achievementId"`
}

func (s *Server) handleAddAchievement(w http.ResponseWriter, r *http.Request) {
	engine := s.engineFor(userIDFromContext(r.Context()))

	var req achievementRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.AchievementID == "" {
		handleError(w, r, apperr.NewBadRequestError("업적 ID가 필요합니다."))
		return
	}

	unlocked, err := engine.Unlock(r.Context(), req.AchievementID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"message":  "업적이 추가되었습니다.",
		"unlocked": unlocked,
	})
}

func (s *Server) handleAddSession(w http.ResponseWriter, r *http.Request) {
	engine := s.engineFor(userIDFromContext(r.Context()))

	var sess models.StudySession
	if err := decodeJSON(r, &sess); err != nil {
		handleError(w, r, err)
		return
	}
	if sess.Mode == "" {
		sess.Mode = "normal"
	}

	if err := engine.AddSession(r.Context(), sess); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"message": "학습 세션이 기록되었습니다.",
	})
}
