package controller

import (
	"docqa-be/internal/dto"
	"docqa-be/internal/pkg/logger"
	"docqa-be/internal/pkg/serverutils"
	"docqa-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SearchController struct {
	searchService service.ISearchService
	logger        logger.ILogger
}

func NewSearchController(searchService service.ISearchService, log logger.ILogger) *SearchController {
	return &SearchController{
		searchService: searchService,
		logger:        log,
	}
}

func (c *SearchController) RegisterRoutes(r fiber.Router) {
	api := r.Group("/search/v1")
	api.Get("/sessions", c.SearchSessions)
}

func (c *SearchController) SearchSessions(ctx *fiber.Ctx) error {
	query := ctx.Query("q")

	projections := c.searchService.SearchSessions(ctx.Context(), query)
	response := dto.ToSessionSearchResults(projections)
	return ctx.JSON(serverutils.SuccessResponse("Search completed", response))
}
