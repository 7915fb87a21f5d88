package handlers

import (
	"errors"
	"net/http"

	"pharma-backend/internal/repositories"
	"pharma-backend/internal/services"
	"pharma-backend/pkg/utils"
)

// writeServiceError maps service errors onto HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrInsufficientStock):
		utils.Error(w, http.StatusConflict, "Insufficient stock")
	default:
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
