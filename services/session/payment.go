package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"mindhaven/models"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentHandler confirms the fee for a booking before the session is
// created. Real capture lives with the payment provider; booking only needs
// the receipt outcome.
type PaymentHandler interface {
	ConfirmPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentReceipt, error)
}

// StripePaymentHandler charges non-zero fees through Stripe payment intents.
// Free trials short-circuit to a zero-amount receipt without touching Stripe.
type StripePaymentHandler struct {
	logger *zap.Logger
}

func NewStripePaymentHandler(logger *zap.Logger) *StripePaymentHandler {
	return &StripePaymentHandler{logger: logger}
}

func (h *StripePaymentHandler) ConfirmPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentReceipt, error) {
	if req.Amount < 0 {
		return nil, errors.New("invalid payment amount")
	}
	if req.PatientID == "" {
		return nil, errors.New("missing patient ID")
	}

	receipt := &models.PaymentReceipt{
		ReceiptID: uuid.New().String(),
		PatientID: req.PatientID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		CreatedAt: time.Now().UTC(),
	}

	if req.Amount == 0 {
		receipt.Status = "free_trial"
		h.logger.Info("Free trial booking, no charge", zap.String("patientID", req.PatientID))
		return receipt, nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(int64(req.Amount * 100)),
		Currency:    stripe.String(strings.ToLower(req.Currency)),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	params.AddMetadata("sessionId", req.SessionID)
	params.AddMetadata("patientId", req.PatientID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}

	receipt.PaymentID = pi.ID
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		receipt.Status = models.PaymentPaid
	} else {
		receipt.Status = models.PaymentPending
	}

	h.logger.Info("Payment intent created",
		zap.String("paymentID", pi.ID),
		zap.String("status", receipt.Status),
		zap.Float64("amount", req.Amount))
	return receipt, nil
}
