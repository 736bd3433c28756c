package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "pagos/internal/errors"
	"pagos/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreatePayment(ctx context.Context, req models.CreatePaymentRequest) (*models.CreatePaymentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreatePaymentResponse), args.Error(1)
}

func (m *MockPaymentService) ConfirmPayment(ctx context.Context, req models.ConfirmPaymentRequest) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockPaymentService) ListPayments(ctx context.Context) ([]models.PaymentHistoryRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PaymentHistoryRow), args.Error(1)
}

func newPaymentApp(svc *MockPaymentService) *fiber.App {
	app := fiber.New()
	h := NewPaymentHandler(svc)
	app.Post("/pago", h.CreatePayment)
	app.Post("/confirmarpago", h.ConfirmPayment)
	app.Get("/historialpagos", h.ListPayments)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestCreatePayment_RequiresConfirmation(t *testing.T) {
	svc := new(MockPaymentService)
	svc.On("CreatePayment", mock.Anything, models.CreatePaymentRequest{Amount: 5000, Currency: "usd"}).
		Return(&models.CreatePaymentResponse{Message: models.MessageConfirmPayment, ClientSecret: "pi_123"}, nil)

	status, body := doJSON(t, newPaymentApp(svc), fiber.MethodPost, "/pago", `{"amount":5000,"currency":"usd"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"message":"Confirma tu pago","client_secret":"pi_123"}`, string(body))
	svc.AssertExpectations(t)
}

func TestCreatePayment_Completed(t *testing.T) {
	svc := new(MockPaymentService)
	svc.On("CreatePayment", mock.Anything, mock.Anything).
		Return(&models.CreatePaymentResponse{Message: models.MessagePaymentCompleted}, nil)

	status, body := doJSON(t, newPaymentApp(svc), fiber.MethodPost, "/pago", `{"amount":100,"currency":"eur"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"message":"Pago completado"}`, string(body))
}

func TestCreatePayment_FormBody(t *testing.T) {
	svc := new(MockPaymentService)
	svc.On("CreatePayment", mock.Anything, models.CreatePaymentRequest{Amount: 250, Currency: "usd"}).
		Return(&models.CreatePaymentResponse{Message: models.MessageConfirmPayment, ClientSecret: "pi_form"}, nil)

	req := httptest.NewRequest(fiber.MethodPost, "/pago", strings.NewReader("amount=250&currency=usd"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := newPaymentApp(svc).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestCreatePayment_GatewayRejected(t *testing.T) {
	svc := new(MockPaymentService)
	svc.On("CreatePayment", mock.Anything, mock.Anything).
		Return(nil, apperrors.GatewayRejected("Invalid currency: xyz", errors.New("stripe")))

	status, body := doJSON(t, newPaymentApp(svc), fiber.MethodPost, "/pago", `{"amount":5000,"currency":"xyz"}`)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.JSONEq(t, `{"code":"GATEWAY_REJECTED","message":"Invalid currency: xyz","error":"Invalid currency: xyz"}`, string(body))
}

func TestCreatePayment_StoreFailure(t *testing.T) {
	svc := new(MockPaymentService)
	svc.On("CreatePayment", mock.Anything, mock.Anything).
		Return(nil, apperrors.StoreFailure(`relation "pagos" does not exist`, errors.New("pg")))

	status, body := doJSON(t, newPaymentApp(svc), fiber.MethodPost, "/pago", `{"amount":5000,"currency":"usd"}`)

	assert.Equal(t, fiber.StatusInternalServerError, status)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "STORE_FAILURE", envelope["code"])
	assert.Equal(t, `relation "pagos" does not exist`, envelope["message"])
}

func TestCreatePayment_MalformedBody(t *testing.T) {
	svc := new(MockPaymentService)

	status, body := doJSON(t, newPaymentApp(svc), fiber.MethodPost, "/pago", `{"amount":`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body), "INVALID_REQUEST")
	svc.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
}

func TestCreatePayment_NonIntegerAmount(t *testing.T) {
	for _, body := range []string{`{"amount":"5000","currency":"usd"}`, `{"amount":50.5,"currency":"usd"}`} {
		svc := new(MockPaymentService)

		status, resp := doJSON(t, newPaymentApp(svc), fiber.MethodPost, "/pago", body)

		assert.Equal(t, fiber.StatusBadRequest, status, body)
		assert.JSONEq(t, `{"code":"INVALID_REQUEST","message":"Invalid request format","error":"Invalid request format"}`, string(resp))
		svc.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
	}
}

func TestConfirmPayment_PassesIntentThrough(t *testing.T) {
	raw := json.RawMessage(`{"id":"pi_123","object":"payment_intent","status":"succeeded","amount":5000}`)
	svc := new(MockPaymentService)
	svc.On("ConfirmPayment", mock.Anything, models.ConfirmPaymentRequest{PaymentIntentID: "pi_123", PaymentMethod: "pm_card_visa"}).
		Return(raw, nil)

	status, body := doJSON(t, newPaymentApp(svc), fiber.MethodPost, "/confirmarpago",
		`{"paymentIntentId":"pi_123","paymentMethod":"pm_card_visa"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, string(raw), string(body))
	svc.AssertExpectations(t)
}

func TestConfirmPayment_GatewayRejected(t *testing.T) {
	svc := new(MockPaymentService)
	svc.On("ConfirmPayment", mock.Anything, mock.Anything).
		Return(nil, apperrors.GatewayRejected("No such payment_intent: 'pi_missing'", nil))

	status, body := doJSON(t, newPaymentApp(svc), fiber.MethodPost, "/confirmarpago",
		`{"paymentIntentId":"pi_missing","paymentMethod":"pm_card_visa"}`)

	assert.Equal(t, fiber.StatusInternalServerError, status)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "No such payment_intent: 'pi_missing'", envelope["error"])
}

func TestConfirmPayment_MissingIntentID(t *testing.T) {
	svc := new(MockPaymentService)
	svc.On("ConfirmPayment", mock.Anything, mock.Anything).
		Return(nil, apperrors.InvalidRequest("paymentIntentId is required"))

	status, _ := doJSON(t, newPaymentApp(svc), fiber.MethodPost, "/confirmarpago", `{"paymentMethod":"pm_card_visa"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestListPayments_Empty(t *testing.T) {
	svc := new(MockPaymentService)
	svc.On("ListPayments", mock.Anything).Return([]models.PaymentHistoryRow{}, nil)

	status, body := doJSON(t, newPaymentApp(svc), fiber.MethodGet, "/historialpagos", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "[]", string(body))
}

func TestListPayments_RowWithoutCard(t *testing.T) {
	svc := new(MockPaymentService)
	svc.On("ListPayments", mock.Anything).Return([]models.PaymentHistoryRow{
		{PaymentID: 1, Amount: 5000, IntentID: "pi_123"},
	}, nil)

	status, body := doJSON(t, newPaymentApp(svc), fiber.MethodGet, "/historialpagos", "")
	require.Equal(t, fiber.StatusOK, status)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 1)
	assert.EqualValues(t, 5000, rows[0]["monto"])
	assert.Nil(t, rows[0]["tarjeta_id"])
	assert.Nil(t, rows[0]["numero_tarjeta"])
}

func TestListPayments_StoreFailure(t *testing.T) {
	svc := new(MockPaymentService)
	svc.On("ListPayments", mock.Anything).
		Return(nil, apperrors.StoreFailure("Error al obtener el historial", errors.New("connection refused")))

	status, body := doJSON(t, newPaymentApp(svc), fiber.MethodGet, "/historialpagos", "")

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Contains(t, string(body), "Error al obtener el historial")
	assert.NotContains(t, string(body), "connection refused")
}
