package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// PaymentService mints Stripe payment intents. The provider call sits
// behind a circuit breaker so a Stripe outage fails fast instead of
// piling up requests.
type PaymentService struct {
	cb     *gobreaker.CircuitBreaker
	logger *logrus.Logger
	tracer trace.Tracer
}

func NewPaymentService(apiKey string, logger *logrus.Logger, tracer trace.Tracer) *PaymentService {
	stripe.Key = apiKey
	return &PaymentService{
		cb:     CircuitBreaker("paymentService", logger),
		logger: logger,
		tracer: tracer,
	}
}

// CreateIntent returns the client secret for a payment of the given price
// in USD. The price is in whole currency units; Stripe wants cents.
func (service *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	ctx, span := service.tracer.Start(ctx, "PaymentService.CreateIntent")
	defer span.End()

	amount := int64(price * 100)

	result, err := service.cb.Execute(func() (interface{}, error) {
		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(amount),
			Currency: stripe.String(string(stripe.CurrencyUSD)),
			AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
				Enabled: stripe.Bool(true),
			},
		}
		params.Context = ctx
		params.SetIdempotencyKey(uuid.NewString())
		return paymentintent.New(params)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		service.logger.Errorf("payment intent creation failed: %s", err)
		return "", err
	}

	intent, ok := result.(*stripe.PaymentIntent)
	if !ok {
		return "", fmt.Errorf("unexpected payment provider result type")
	}

	return intent.ClientSecret, nil
}

func CircuitBreaker(name string, logger *logrus.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Warnf("Circuit Breaker '%s' changed from '%s' to '%s'", name, from, to)
			},
		},
	)
}
