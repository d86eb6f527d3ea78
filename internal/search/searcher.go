package search

import (
	"context"
	"encoding/json"
	"strings"

	"docqa-be/internal/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
)

// Searcher runs ranked prefix/fuzzy queries over documentName. The index is
// advisory, so any failure degrades to an empty result list instead of an
// error.
type Searcher struct {
	es         *elasticsearch.Client
	index      string
	maxResults int
	logger     logger.ILogger
}

func NewSearcher(es *elasticsearch.Client, index string, maxResults int, log logger.ILogger) *Searcher {
	return &Searcher{
		es:         es,
		index:      index,
		maxResults: maxResults,
		logger:     log,
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source SessionProjection `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *Searcher) SearchSessions(ctx context.Context, queryText string) []SessionProjection {
	query := map[string]interface{}{
		"size": s.maxResults,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query": queryText,
				"type":  "bool_prefix",
				"fields": []string{
					"documentName",
					"documentName._2gram",
					"documentName._3gram",
				},
			},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		s.logger.Error("Searcher", "Failed to marshal search query", map[string]interface{}{"error": err.Error()})
		return []SessionProjection{}
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		s.logger.Error("Searcher", "Search request failed", map[string]interface{}{
			"query": queryText,
			"error": err.Error(),
		})
		return []SessionProjection{}
	}
	defer res.Body.Close()

	if res.IsError() {
		s.logger.Error("Searcher", "Search returned error status", map[string]interface{}{
			"query":  queryText,
			"status": res.StatusCode,
		})
		return []SessionProjection{}
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		s.logger.Error("Searcher", "Failed to decode search response", map[string]interface{}{"error": err.Error()})
		return []SessionProjection{}
	}

	results := make([]SessionProjection, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		results = append(results, hit.Source)
	}

	s.logger.Debug("Searcher", "Search completed", map[string]interface{}{
		"query": queryText,
		"hits":  len(results),
	})
	return results
}
