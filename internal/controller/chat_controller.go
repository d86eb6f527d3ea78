package controller

import (
	"docqa-be/internal/dto"
	"docqa-be/internal/pkg/logger"
	"docqa-be/internal/pkg/serverutils"
	"docqa-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ChatController struct {
	chatService service.IChatService
	logger      logger.ILogger
}

func NewChatController(chatService service.IChatService, log logger.ILogger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      log,
	}
}

func (c *ChatController) RegisterRoutes(r fiber.Router) {
	api := r.Group("/chat/v1")
	api.Post("/message", c.SendMessage)
	api.Get("/sessions", c.GetAllSessions)
	api.Get("/session/:sessionId", c.GetSession)
	api.Delete("/session/:sessionId", c.DeleteSession)
}

func (c *ChatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	session, answer, err := c.chatService.SendChat(ctx.Context(), req.SessionId, req.Question)
	if err != nil {
		return err
	}

	response := dto.ToChatSessionResponse(session, answer)
	return ctx.JSON(serverutils.SuccessResponse("Message processed", response))
}

func (c *ChatController) GetSession(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return serverutils.NewValidationError("invalid session id")
	}

	session, err := c.chatService.GetSession(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	response := dto.ToChatSessionResponse(session, "")
	return ctx.JSON(serverutils.SuccessResponse("Session retrieved", response))
}

func (c *ChatController) GetAllSessions(ctx *fiber.Ctx) error {
	sessions, err := c.chatService.GetAllSessions(ctx.Context())
	if err != nil {
		return err
	}

	response := make([]dto.ChatSessionMetadataResponse, 0, len(sessions))
	for _, session := range sessions {
		response = append(response, dto.ToChatSessionMetadataResponse(session))
	}
	return ctx.JSON(serverutils.SuccessResponse("Sessions retrieved", response))
}

func (c *ChatController) DeleteSession(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return serverutils.NewValidationError("invalid session id")
	}

	if err := c.chatService.DeleteSession(ctx.Context(), sessionId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session deleted", fiber.Map{"session_id": sessionId}))
}
