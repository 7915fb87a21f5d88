package handlers

import (
	"net/http"

	"pharma-backend/internal/services"
	"pharma-backend/pkg/utils"
)

type SearchHandler struct {
	Service *services.SearchService
}

func NewSearchHandler(s *services.SearchService) *SearchHandler {
	return &SearchHandler{Service: s}
}

// Search runs the global search box query
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}
