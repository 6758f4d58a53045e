package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/logging"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/models"
)

// OrderAssembler produces one order per call and remembers the last one.
type OrderAssembler interface {
	AssembleOrder(ctx context.Context) (*models.Order, error)
	LastOrder() string
}

// OrderSaver persists an order description.
type OrderSaver interface {
	Save(description string) (dir string, ok bool)
}

// BurgerHandler drives one burger creation per invocation.
type BurgerHandler struct {
	assembler OrderAssembler
	saver     OrderSaver
	logger    logrus.FieldLogger
}

// NewBurgerHandler creates a new handler.
func NewBurgerHandler(assembler OrderAssembler, saver OrderSaver, logger logrus.FieldLogger) *BurgerHandler {
	return &BurgerHandler{
		assembler: assembler,
		saver:     saver,
		logger:    logging.Component(logger, "handler"),
	}
}
