package websocket

import (
	"context"

	"docqa-be/internal/dto"
	"docqa-be/internal/pkg/logger"
	"docqa-be/internal/service"

	"github.com/gofiber/websocket/v2"
)

type SearchHandler struct {
	searchService service.ISearchService
	logger        logger.ILogger
}

func NewSearchHandler(searchService service.ISearchService, log logger.ILogger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        log,
	}
}

type searchResponseFrame struct {
	Query   string                    `json:"query"`
	Results []dto.SessionSearchResult `json:"results"`
}

// ServeSearch runs a simple request/response loop: one query in, one result
// list out. Search-as-you-type clients fire a query per keystroke, so frames
// stay small and strictly ordered.
func (h *SearchHandler) ServeSearch(conn *websocket.Conn) {
	defer conn.Close()

	for {
		var req dto.SearchSessionsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("SearchHandler", "Websocket read failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
			return
		}

		projections := h.searchService.SearchSessions(context.Background(), req.Query)
		frame := searchResponseFrame{
			Query:   req.Query,
			Results: dto.ToSessionSearchResults(projections),
		}

		if err := conn.WriteJSON(frame); err != nil {
			return
		}
	}
}
