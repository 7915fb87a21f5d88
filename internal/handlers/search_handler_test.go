package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pharma-backend/internal/models"
	"pharma-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	lastQuery string
}

func (s *stubSearcher) Search(ctx context.Context, query string, limit int) (*models.SearchResult, error) {
	s.lastQuery = query
	return &models.SearchResult{
		Medicines: []*models.Medicine{{ID: 1, Name: "Paracetamol 500mg"}},
		Customers: []*models.Customer{},
		Doctors:   []*models.Doctor{},
	}, nil
}

func TestSearchHandlerReadsQueryParam(t *testing.T) {
	store := &stubSearcher{}
	h := NewSearchHandler(services.NewSearchService(store))

	req := httptest.NewRequest(http.MethodGet, "/api/search?query=paracetamol", nil)
	w := httptest.NewRecorder()
	h.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "paracetamol", store.lastQuery)

	var result models.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Medicines, 1)
}

func TestSearchHandlerRejectsShortQuery(t *testing.T) {
	h := NewSearchHandler(services.NewSearchService(&stubSearcher{}))

	req := httptest.NewRequest(http.MethodGet, "/api/search?query=a", nil)
	w := httptest.NewRecorder()
	h.Search(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "message")
}
