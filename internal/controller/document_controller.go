package controller

import (
	"io"
	"strings"

	"docqa-be/internal/config"
	"docqa-be/internal/dto"
	"docqa-be/internal/pkg/logger"
	"docqa-be/internal/pkg/serverutils"
	"docqa-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DocumentController struct {
	documentService service.IDocumentService
	chatService     service.IChatService
	uploadConfig    config.UploadConfig
	logger          logger.ILogger
}

func NewDocumentController(
	documentService service.IDocumentService,
	chatService service.IChatService,
	uploadConfig config.UploadConfig,
	log logger.ILogger,
) *DocumentController {
	return &DocumentController{
		documentService: documentService,
		chatService:     chatService,
		uploadConfig:    uploadConfig,
		logger:          log,
	}
}

func (c *DocumentController) RegisterRoutes(r fiber.Router) {
	api := r.Group("/document/v1")
	api.Post("/upload", c.Upload)
}

// Upload accepts a PDF, deduplicates it by content, opens a fresh chat
// session on it and answers the optional initial question in one round trip.
func (c *DocumentController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.NewValidationError("file is required")
	}
	if fileHeader.Size == 0 {
		return serverutils.NewValidationError("file is empty")
	}
	if fileHeader.Size > int64(c.uploadConfig.MaxFileSizeBytes) {
		return serverutils.NewValidationError("file exceeds the maximum upload size")
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType != "application/pdf" && !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return serverutils.NewValidationError("only PDF documents are supported")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return serverutils.NewValidationError("file could not be read")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return serverutils.NewValidationError("file could not be read")
	}

	query := ctx.FormValue("query")

	document, err := c.documentService.Upload(ctx.Context(), data, fileHeader.Filename, mimeType)
	if err != nil {
		return err
	}

	session, err := c.chatService.StartSession(ctx.Context(), document)
	if err != nil {
		return err
	}

	_, answer, err := c.chatService.SendChat(ctx.Context(), session.Id, query)
	if err != nil {
		return err
	}

	response := dto.UploadDocumentResponse{
		Query:      query,
		Response:   answer,
		SessionId:  session.Id,
		DocumentId: document.Id,
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Document uploaded", response))
}
