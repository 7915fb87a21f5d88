package services

import (
	"context"
	"fmt"
	"strings"

	"pharma-backend/internal/models"
)

const searchResultLimit = 10

// Searcher is the slice of the search repository the service needs.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) (*models.SearchResult, error)
}

type SearchService struct {
	Repo Searcher
}

func NewSearchService(repo Searcher) *SearchService {
	return &SearchService{Repo: repo}
}

// Search runs the global search box query across medicines, customers and
// doctors. The query must be at least two characters to keep the ILIKE scans
// selective.
func (s *SearchService) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, fmt.Errorf("%w: query must be at least 2 characters", ErrInvalidInput)
	}
	return s.Repo.Search(ctx, query, searchResultLimit)
}
