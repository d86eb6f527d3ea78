package service

import (
	"context"
	"strings"

	"docqa-be/internal/search"
)

// ISearchService answers search-as-you-type queries over session metadata.
// It never returns an error: a broken index degrades to no suggestions.
type ISearchService interface {
	SearchSessions(ctx context.Context, query string) []search.SessionProjection
}

type SearchService struct {
	searcher *search.Searcher
}

func NewSearchService(searcher *search.Searcher) ISearchService {
	return &SearchService{
		searcher: searcher,
	}
}

func (s *SearchService) SearchSessions(ctx context.Context, query string) []search.SessionProjection {
	if strings.TrimSpace(query) == "" {
		return []search.SessionProjection{}
	}
	return s.searcher.SearchSessions(ctx, query)
}
