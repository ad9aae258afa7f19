package payment

import (
	"context"

	"go.uber.org/zap"

	"github.com/meditrack/meditrack/internal/httperr"
)

// Settler is what the appointment lifecycle sees: settle an amount with a
// named method, succeed or fail. Everything behind it is opaque.
type Settler interface {
	Settle(ctx context.Context, method string, amount float64) error
}

// Strategy settles one payment method.
type Strategy interface {
	Process(ctx context.Context, amount float64) error
}

// Registry resolves the method name to a strategy at call time through an
// explicit map.
type Registry struct {
	strategies map[string]Strategy
	logger     *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
		logger:     logger,
	}
}

func (r *Registry) Register(method string, s Strategy) {
	r.strategies[method] = s
}

func (r *Registry) Settle(ctx context.Context, method string, amount float64) error {
	strategy, ok := r.strategies[method]
	if !ok {
		return httperr.ErrBusiness(
			httperr.CodeInvalidPaymentType,
			"Unknown payment method: "+method,
		)
	}

	if err := strategy.Process(ctx, amount); err != nil {
		r.logger.Warn("payment settlement failed",
			zap.String("method", method),
			zap.Float64("amount", amount),
			zap.Error(err),
		)
		return httperr.ErrBusiness(
			httperr.CodePaymentFailed,
			"Payment was not settled.",
		)
	}

	return nil
}

var _ Settler = (*Registry)(nil)
