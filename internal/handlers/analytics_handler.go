package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pharma-backend/internal/cache"
	"pharma-backend/internal/services"
	"pharma-backend/pkg/utils"
)

// defaultSalesDays is the window for /api/analytics/daily-sales when the
// caller does not pass ?days=
const defaultSalesDays = 7

type AnalyticsHandler struct {
	Service *services.AnalyticsService
}

func NewAnalyticsHandler(s *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: s}
}

// TopSelling returns the best selling medicines for the dashboard
func (h *AnalyticsHandler) TopSelling(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			utils.Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	if limit == 5 {
		if data, ok := cache.Get(r.Context(), cache.TopSellingKey); ok {
			writeCached(w, data)
			return
		}
	}

	top, err := h.Service.TopSelling(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	payload, err := json.Marshal(top)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if limit == 5 {
		cache.Set(r.Context(), cache.TopSellingKey, payload, cache.ShortTTL)
	}
	writeCached(w, payload)
}

// DailySales returns the gap-filled sales series for the dashboard chart
func (h *AnalyticsHandler) DailySales(w http.ResponseWriter, r *http.Request) {
	days := defaultSalesDays
	if d := r.URL.Query().Get("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 {
			utils.Error(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	if days == defaultSalesDays {
		if data, ok := cache.Get(r.Context(), cache.DailySalesKey); ok {
			writeCached(w, data)
			return
		}
	}

	series, err := h.Service.DailySales(r.Context(), days)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	payload, err := json.Marshal(series)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if days == defaultSalesDays {
		cache.Set(r.Context(), cache.DailySalesKey, payload, cache.ShortTTL)
	}
	writeCached(w, payload)
}

func writeCached(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
