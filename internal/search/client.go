package search

import (
	"context"
	"fmt"
	"strings"

	"docqa-be/internal/config"

	"github.com/elastic/go-elasticsearch/v8"
)

// sessionIndexMapping uses search_as_you_type on documentName so queries can
// match name prefixes and partial tokens (the _2gram/_3gram subfields).
const sessionIndexMapping = `{
  "mappings": {
    "properties": {
      "documentName":      { "type": "search_as_you_type" },
      "documentId":        { "type": "keyword" },
      "createdAt":         { "type": "date" },
      "lastInteractionAt": { "type": "date" },
      "messageCount":      { "type": "integer" },
      "lastMessage":       { "type": "text" }
    }
  }
}`

func NewClient(cfg config.SearchConfig) (*elasticsearch.Client, error) {
	addresses := strings.Split(cfg.Addresses, ",")
	for i := range addresses {
		addresses[i] = strings.TrimSpace(addresses[i])
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addresses,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return es, nil
}

// EnsureSessionIndex creates the session index with its mapping if it does
// not exist yet. Called once at startup, before the full reconcile sync.
func EnsureSessionIndex(ctx context.Context, es *elasticsearch.Client, index string) error {
	existsRes, err := es.Indices.Exists([]string{index}, es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", index, err)
	}
	defer existsRes.Body.Close()

	if existsRes.StatusCode == 200 {
		return nil
	}

	createRes, err := es.Indices.Create(
		index,
		es.Indices.Create.WithBody(strings.NewReader(sessionIndexMapping)),
		es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("create index %s: %s", index, createRes.String())
	}
	return nil
}
