package api

import (
	"encoding/json"
	"net/http"

	"github.com/hyeon/vocaflash/internal/apperr"
	"github.com/hyeon/vocaflash/internal/logger"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.NewBadRequestError("요청 본문이 올바르지 않습니다.")
	}
	return nil
}
