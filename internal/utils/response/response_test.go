package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	apperrors "pagos/internal/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "gateway rejection",
			err:         apperrors.GatewayRejected("Your card was declined.", nil),
			wantStatus:  fiber.StatusInternalServerError,
			wantCode:    "GATEWAY_REJECTED",
			wantMessage: "Your card was declined.",
		},
		{
			name:        "wrapped store failure",
			err:         fmt.Errorf("create payment: %w", apperrors.StoreFailure("duplicate key", errors.New("pg"))),
			wantStatus:  fiber.StatusInternalServerError,
			wantCode:    "STORE_FAILURE",
			wantMessage: "duplicate key",
		},
		{
			name:        "invalid request",
			err:         apperrors.InvalidRequest("paymentIntentId is required"),
			wantStatus:  fiber.StatusBadRequest,
			wantCode:    "INVALID_REQUEST",
			wantMessage: "paymentIntentId is required",
		},
		{
			name:        "empty message falls back",
			err:         apperrors.GatewayRejected("", nil),
			wantStatus:  fiber.StatusInternalServerError,
			wantCode:    "GATEWAY_REJECTED",
			wantMessage: "Unknown error occurred",
		},
		{
			name:        "plain error",
			err:         errors.New("boom"),
			wantStatus:  fiber.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return FromError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, tt.wantMessage, body["message"])
			assert.Equal(t, tt.wantMessage, body["error"])
		})
	}
}
