package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/logging"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/models"
)

// priceIngredients is what every burger is priced from. These are the
// component role names, not the user's choices, so "meat" always prices to
// zero. Kept as-is for compatibility with existing order prices.
// TODO(TEAM-PRICING): price the selected bun, meat and cheese once downstream
// consumers stop relying on the role-name prices.
var priceIngredients = []string{"bun", "meat", "cheese"}

// Calculator prices a list of ingredient names.
type Calculator interface {
	Calculate(ingredients []string) (decimal.Decimal, error)
}

// Ensure PriceCalculator implements Calculator
var _ Calculator = (*PriceCalculator)(nil)

// OrderCache mirrors the last assembled order somewhere observable.
type OrderCache interface {
	SetLast(ctx context.Context, order *models.Order) error
}

// EventPublisher announces assembled orders.
type EventPublisher interface {
	PublishOrderAssembled(ctx context.Context, order *models.Order) error
}

// OrderService assembles burger orders.
type OrderService struct {
	state      *OrderState
	collector  ComponentCollector
	calculator Calculator
	cache      OrderCache
	publisher  EventPublisher
	metrics    *metrics.Metrics
	logger     logrus.FieldLogger
	now        func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(
	state *OrderState,
	collector ComponentCollector,
	calculator Calculator,
	cache OrderCache,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger logrus.FieldLogger,
) *OrderService {
	return &OrderService{
		state:      state,
		collector:  collector,
		calculator: calculator,
		cache:      cache,
		publisher:  publisher,
		metrics:    m,
		logger:     logging.Component(logger, "order-service"),
		now:        time.Now,
	}
}

// WithClock overrides the order timestamp source.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// AssembleOrder collects the components, prices the burger and returns the
// order. The counter is advanced before anything else and is not rolled back
// on failure.
//
// Cancellation (context.Canceled) is returned unchanged. Every other failure
// is logged here and returned wrapped in ErrAssemblyFailed.
func (s *OrderService) AssembleOrder(ctx context.Context) (*models.Order, error) {
	id := s.state.Next()

	order, err := s.assemble(ctx, id)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.metrics.OrderAssembled(metrics.OutcomeCancelled)
			return nil, err
		}
		s.logger.WithFields(logging.Fields{
			"order_id": id,
			"error":    err.Error(),
		}).Error("Failed to assemble burger")
		s.metrics.OrderAssembled(metrics.OutcomeFailed)
		return nil, fmt.Errorf("%w: %w", ErrAssemblyFailed, err)
	}

	s.state.Remember(order.Description)

	if s.cache != nil {
		if err := s.cache.SetLast(ctx, order); err != nil {
			// Log but don't fail
			s.logger.WithFields(logging.Fields{
				"order_id": order.ID,
				"error":    err.Error(),
			}).Warn("Failed to cache order")
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderAssembled(ctx, order); err != nil {
			// Log but don't fail
			s.logger.WithFields(logging.Fields{
				"order_id": order.ID,
				"error":    err.Error(),
			}).Warn("Failed to publish order assembled event")
		}
	}

	s.metrics.OrderAssembled(metrics.OutcomeSuccess)
	s.metrics.ObservePrice(order.Price)

	s.logger.WithFields(logging.Fields{
		"order_id": order.ID,
		"price":    order.Price.StringFixed(2),
	}).Infof("Burger #%d assembled successfully", order.ID)

	return order, nil
}

func (s *OrderService) assemble(ctx context.Context, id int) (*models.Order, error) {
	bun, err := s.collector.Bun(ctx)
	if err != nil {
		return nil, err
	}
	meat, err := s.collector.Meat(ctx)
	if err != nil {
		return nil, err
	}
	sauce := s.collector.Sauce()
	cheese, err := s.collector.Cheese(ctx)
	if err != nil {
		return nil, err
	}

	price, err := s.calculator.Calculate(priceIngredients)
	if err != nil {
		return nil, err
	}

	components := models.Components{Bun: bun, Meat: meat, Sauce: sauce, Cheese: cheese}
	return models.NewOrder(id, components, price, s.now()), nil
}

// LastOrder returns the description of the last assembled order, or "".
func (s *OrderService) LastOrder() string {
	return s.state.Last()
}
