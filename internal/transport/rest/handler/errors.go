package handler

import (
	"errors"
	"menteazul/internal/qchat"
	"menteazul/internal/repository"
	"menteazul/internal/service"
	"net/http"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{qchat.ErrInvalidVariant, http.StatusBadRequest},
	{qchat.ErrInvalidAgeGroup, http.StatusBadRequest},
	{qchat.ErrUnknownQuestion, http.StatusBadRequest},
	{qchat.ErrInvalidAnswerWeight, http.StatusBadRequest},
	{qchat.ErrInvalidChildInfo, http.StatusBadRequest},
	{qchat.ErrInvalidOption, http.StatusBadRequest},
	{qchat.ErrInvalidTransition, http.StatusConflict},
	{service.ErrInvalidEmail, http.StatusBadRequest},
	{service.ErrWeakPassword, http.StatusBadRequest},
	{service.ErrInvalidRole, http.StatusBadRequest},
	{service.ErrInvalidProfile, http.StatusBadRequest},
	{service.ErrEmailTaken, http.StatusConflict},
	{repository.ErrDuplicateEmail, http.StatusConflict},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrInvalidToken, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrResultNotFound, http.StatusNotFound},
	{service.ErrSessionNotFound, http.StatusNotFound},
}

// writeServiceError maps domain errors to HTTP codes. Anything unknown is
// a storage or internal failure and gets a generic message.
func writeServiceError(w http.ResponseWriter, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			writeError(w, e.status, err.Error())
			return
		}
	}
	writeError(w, http.StatusInternalServerError, service.ErrEvaluationFailed.Error())
}
