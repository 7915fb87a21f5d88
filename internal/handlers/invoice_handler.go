package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"pharma-backend/internal/cache"
	"pharma-backend/internal/metrics"
	"pharma-backend/internal/middleware"
	"pharma-backend/internal/models"
	"pharma-backend/internal/repositories"
	"pharma-backend/internal/services"
	"pharma-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type InvoiceHandler struct {
	Service *services.BillingService
	Reports *services.ReportService
}

func NewInvoiceHandler(s *services.BillingService, reports *services.ReportService) *InvoiceHandler {
	return &InvoiceHandler{Service: s, Reports: reports}
}

// CreateInvoice runs the checkout workflow for the billed cart
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	result, err := h.Service.CreateInvoice(r.Context(), &req, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientStock) {
			metrics.InsufficientStockRejections.Inc()
		}
		writeServiceError(w, err)
		return
	}

	metrics.InvoicesCreated.Inc()
	cache.Invalidate(r.Context(), cache.TopSellingKey, cache.DailySalesKey, cache.LowStockKey)
	utils.JSON(w, http.StatusCreated, result)
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	result, err := h.Service.GetInvoice(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

// GetByNumber looks an invoice up by its printed number
func (h *InvoiceHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	result, err := h.Service.GetInvoiceByNumber(r.Context(), number)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Service.ListInvoices(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoices)
}

// DownloadPDF streams the printable bill for an invoice
func (h *InvoiceHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	pdfData, err := h.Reports.InvoicePDF(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%d.pdf", id))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfData)
}
