package handlers

import (
	"fmt"
	"net/http"

	"pharma-backend/internal/services"
	"pharma-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// ExpiryReport lists medicines expiring in the next 90 days
func (h *ReportHandler) ExpiryReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.ExpiryReport(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, report)
}

// GSTSummary serves the daily GST aggregate in JSON, CSV or PDF depending
// on ?format=
func (h *ReportHandler) GSTSummary(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		utils.Error(w, http.StatusBadRequest, "from and to parameters are required")
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		data, err := h.Service.GSTSummaryCSV(r.Context(), from, to)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=gst-summary-%s-%s.csv", from, to))
		w.WriteHeader(http.StatusOK)
		w.Write(data)

	case "pdf":
		data, err := h.Service.GSTSummaryPDF(r.Context(), from, to)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=gst-summary-%s-%s.pdf", from, to))
		w.WriteHeader(http.StatusOK)
		w.Write(data)

	default:
		summaries, err := h.Service.GSTSummary(r.Context(), from, to)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, summaries)
	}
}
