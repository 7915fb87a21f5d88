package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pharma-backend/internal/models"
	"pharma-backend/internal/services"
	"pharma-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type PrescriptionHandler struct {
	Service *services.PrescriptionService
}

func NewPrescriptionHandler(s *services.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{Service: s}
}

func (h *PrescriptionHandler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prescription, err := h.Service.CreatePrescription(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, prescription)
}

func (h *PrescriptionHandler) GetPrescription(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	prescription, err := h.Service.GetPrescription(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, prescription)
}

// ListByCustomer returns a customer's prescriptions, newest first
func (h *PrescriptionHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, _ := strconv.Atoi(mux.Vars(r)["id"])

	prescriptions, err := h.Service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, prescriptions)
}
