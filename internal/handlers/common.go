package handlers

import (
	"errors"
	"net/http"

	"livenzo-backend/internal/models"
	"livenzo-backend/internal/services"
	"livenzo-backend/pkg/utils"
)

// respondServiceError maps service errors to HTTP status codes. Transition
// rejections surface as 409 with the validator's message verbatim.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotAuthorized):
		utils.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrRelationshipInactive):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrAlreadyPaid),
		errors.Is(err, models.ErrUnpaidNotPending),
		errors.Is(err, models.ErrPaidFromWrongState):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrProofNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrProofNotPending):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(w, http.StatusUnauthorized, err.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
}
