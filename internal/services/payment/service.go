package payment

import (
	"context"
	"encoding/json"
	"log/slog"

	apperrors "pagos/internal/errors"
	"pagos/internal/models"
	"pagos/internal/repositories"
	"pagos/internal/services/gateway"

	"github.com/go-playground/validator"
)

const historyErrorMessage = "Error al obtener el historial"

// Config carries the values stamped on each new payment. Zero reference ids
// are stored as NULL.
type Config struct {
	Description     string
	DefaultCurrency string
	PaymentTypeID   uint
	UserID          uint
	EventID         uint
}

type service struct {
	gateway  gateway.Client
	repo     repositories.PaymentRepository
	cards    CardResolver
	cache    HistoryCache
	cfg      Config
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates a new payment service
func NewService(
	gw gateway.Client,
	repo repositories.PaymentRepository,
	cards CardResolver,
	cache HistoryCache,
	cfg Config,
	logger *slog.Logger,
) Service {
	if cache == nil {
		cache = NoopHistoryCache{}
	}
	return &service{
		gateway:  gw,
		repo:     repo,
		cards:    cards,
		cache:    cache,
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *service) CreatePayment(ctx context.Context, req models.CreatePaymentRequest) (*models.CreatePaymentResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	intent, err := s.gateway.CreateIntent(ctx, gateway.CreateIntentParams{
		Amount:      req.Amount,
		Currency:    currency,
		Description: s.cfg.Description,
	})
	if err != nil {
		return nil, gatewayError(err)
	}

	details, err := s.cards.Resolve(ctx, intent, req)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeInternal, "could not resolve card details", err)
	}
	card, err := details.toModel()
	if err != nil {
		return nil, apperrors.New(apperrors.CodeInternal, "could not prepare card details", err)
	}

	// The stored amount is the caller's, never the gateway's echo.
	payment := &models.Payment{
		Amount:        req.Amount,
		PaymentTypeID: optionalRef(s.cfg.PaymentTypeID),
		UserID:        optionalRef(s.cfg.UserID),
		EventID:       optionalRef(s.cfg.EventID),
		IntentID:      intent.ID,
	}

	if err := s.repo.CreateWithCard(ctx, payment, card); err != nil {
		s.logger.Error("failed to store payment",
			"intent_id", intent.ID,
			"amount", req.Amount,
			"error", err,
		)
		return nil, apperrors.StoreFailure(repositories.StoreMessage(err), err)
	}

	if err := s.cache.InvalidateHistory(ctx); err != nil {
		s.logger.Warn("failed to invalidate payment history cache", "error", err)
	}

	s.logger.Info("payment recorded",
		"payment_id", payment.ID,
		"intent_id", intent.ID,
		"gateway_status", intent.RawStatus,
		"card_data", details.Available(),
	)

	if intent.Status.IsCompleted() {
		return &models.CreatePaymentResponse{Message: models.MessagePaymentCompleted}, nil
	}
	return &models.CreatePaymentResponse{
		Message:      models.MessageConfirmPayment,
		ClientSecret: intent.ID,
	}, nil
}

func (s *service) ConfirmPayment(ctx context.Context, req models.ConfirmPaymentRequest) (json.RawMessage, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.InvalidRequest("paymentIntentId is required")
	}

	intent, err := s.gateway.ConfirmIntent(ctx, req.PaymentIntentID, req.PaymentMethod)
	if err != nil {
		return nil, gatewayError(err)
	}

	s.logger.Info("payment intent confirmed",
		"intent_id", intent.ID,
		"gateway_status", intent.RawStatus,
	)
	return intent.Raw, nil
}

func (s *service) ListPayments(ctx context.Context) ([]models.PaymentHistoryRow, error) {
	rows, found, err := s.cache.GetHistory(ctx)
	if err != nil {
		s.logger.Warn("failed to read payment history cache", "error", err)
	} else if found {
		return rows, nil
	}

	// Read before the store so a creation committed meanwhile invalidates this fill.
	generation, genErr := s.cache.HistoryGeneration(ctx)
	if genErr != nil {
		s.logger.Warn("failed to read payment history generation", "error", genErr)
	}

	rows, err = s.repo.ListWithCards(ctx)
	if err != nil {
		s.logger.Error("failed to list payments", "error", err)
		return nil, apperrors.StoreFailure(historyErrorMessage, err)
	}

	if genErr == nil {
		if err := s.cache.SetHistory(ctx, generation, rows); err != nil {
			s.logger.Warn("failed to cache payment history", "error", err)
		}
	}
	return rows, nil
}

// gatewayError keeps a gateway rejection as is and wraps anything else.
func gatewayError(err error) error {
	if apperrors.HasCode(err, apperrors.CodeGatewayRejected) {
		return err
	}
	message := err.Error()
	if message == "" {
		message = "Unknown error occurred"
	}
	return apperrors.GatewayRejected(message, err)
}

func optionalRef(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
