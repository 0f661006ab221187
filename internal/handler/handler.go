package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/CareerCraft/internal/domain"
)

// errorResponse — тело ответа с ошибкой.
type errorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, errorResponse{Success: false, Message: message}, logger)
}

// statusFor сопоставляет вид ошибки с HTTP-статусом.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindAuthorizationDenied, domain.KindValidationFailed, domain.KindMalformedIdentifier:
		return http.StatusBadRequest
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindOwnershipDenied:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondWithDomainError переводит ошибку бизнес-логики в HTTP-ответ.
// Причина сбоев хранилища пишется в лог и клиенту не отдается.
func respondWithDomainError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var de *domain.Error
	if !errors.As(err, &de) {
		logger.Error("unclassified error", "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error", logger)
		return
	}

	code := statusFor(de.Kind)
	if code >= http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "kind", de.Kind, "error", err)
	} else {
		logger.Warn("request rejected", "path", r.URL.Path, "kind", de.Kind, "message", de.Message)
	}

	respondWithJSON(w, code, errorResponse{
		Success: false,
		Message: de.Message,
		Errors:  de.Fields,
	}, logger)
}

// decodeJSON читает тело запроса в dst. Ошибка формата — ошибка валидации.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidation("Invalid request body!")
	}
	return nil
}
