package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pharma-backend/internal/cache"
	"pharma-backend/internal/metrics"
	"pharma-backend/internal/middleware"
	"pharma-backend/internal/models"
	"pharma-backend/internal/services"
	"pharma-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// defaultExpiringDays is the window for /api/medicines/expiring when the
// caller does not pass ?days=
const defaultExpiringDays = 30

type MedicineHandler struct {
	Service *services.MedicineService
}

func NewMedicineHandler(s *services.MedicineService) *MedicineHandler {
	return &MedicineHandler{Service: s}
}

func (h *MedicineHandler) CreateMedicine(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMedicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	medicine, err := h.Service.CreateMedicine(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	cache.Invalidate(r.Context(), cache.LowStockKey)
	utils.JSON(w, http.StatusCreated, medicine)
}

func (h *MedicineHandler) GetMedicine(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	medicine, err := h.Service.GetMedicine(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, medicine)
}

func (h *MedicineHandler) ListMedicines(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.Service.ListMedicines(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, medicines)
}

// LowStock returns medicines at or below their threshold. The list is cached
// briefly since the dashboard polls it.
func (h *MedicineHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.Get(r.Context(), cache.LowStockKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	medicines, err := h.Service.LowStock(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	payload, err := json.Marshal(medicines)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	cache.Set(r.Context(), cache.LowStockKey, payload, cache.ShortTTL)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func (h *MedicineHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	days := defaultExpiringDays
	if d := r.URL.Query().Get("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 {
			utils.Error(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	medicines, err := h.Service.Expiring(r.Context(), days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, medicines)
}

// SetStock applies a manual stock correction with an audit record
func (h *MedicineHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.SetStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	medicine, err := h.Service.SetStock(r.Context(), id, &req, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	metrics.StockAdjustments.Inc()
	cache.Invalidate(r.Context(), cache.LowStockKey)
	utils.JSON(w, http.StatusOK, medicine)
}

// ListAdjustments returns the manual stock correction audit trail
func (h *MedicineHandler) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	adjustments, err := h.Service.ListAdjustments(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, adjustments)
}
