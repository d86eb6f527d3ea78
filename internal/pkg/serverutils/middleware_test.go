package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appWithError(err error) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return err
	})
	return app
}

func TestErrorHandlerMapsAppError(t *testing.T) {
	tests := []struct {
		name         string
		err          *AppError
		wantStatus   int
		wantCategory string
	}{
		{"not found", NewNotFoundError("chat session not found"), 404, ErrCategoryNotFound},
		{"validation", NewValidationError("file is required"), 400, ErrCategoryValidation},
		{"unsupported document", NewUnsupportedDocumentError("not a pdf", errors.New("bad header")), 400, ErrCategoryUnsupportedDocument},
		{"generation", NewGenerationError("model offline", errors.New("dial refused")), 502, ErrCategoryGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := appWithError(tt.err)

			resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantCategory, body["category"])
			assert.Equal(t, tt.err.Message, body["message"])
		})
	}
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	app := appWithError(errors.New("pq: connection reset"))

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 500, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, body["message"], "pq:", "driver details must not leak")
}

func TestErrorHandlerPassesThroughSuccess(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/ok", func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("all good", fiber.Map{"value": 1}))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
}
