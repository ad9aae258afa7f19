package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// CardStrategy settles card payments through Stripe PaymentIntents.
// The stripe API key is set globally at startup.
type CardStrategy struct {
	paymentMethod string
	logger        *zap.Logger
}

func NewCardStrategy(paymentMethod string, logger *zap.Logger) *CardStrategy {
	return &CardStrategy{
		paymentMethod: paymentMethod,
		logger:        logger,
	}
}

func (s *CardStrategy) Process(ctx context.Context, amount float64) error {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(toMinorUnits(amount)),
		Currency:      stripe.String(string(stripe.CurrencyINR)),
		PaymentMethod: stripe.String(s.paymentMethod),
		Confirm:       stripe.Bool(true),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return fmt.Errorf("stripe payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded &&
		pi.Status != stripe.PaymentIntentStatusRequiresCapture {
		return fmt.Errorf("stripe payment intent %s in status %s", pi.ID, pi.Status)
	}

	s.logger.Info("card payment settled",
		zap.String("payment_intent", pi.ID),
		zap.Float64("amount", amount),
	)
	return nil
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
