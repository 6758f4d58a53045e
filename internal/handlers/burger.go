package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/logging"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/service"
)

// ErrUnexpected wraps failures the handler does not know how to contain.
// The process should exit non-zero when CreateBurger returns it.
var ErrUnexpected = errors.New("unexpected error during burger creation")

// Ensure OrderService implements OrderAssembler
var _ OrderAssembler = (*service.OrderService)(nil)

// CreateBurger assembles one burger and saves it.
//
// Assembly and save failures are logged and end the run normally, as does a
// user cancellation. Anything else, including a panic during assembly, is
// logged and returned wrapped in ErrUnexpected.
func (h *BurgerHandler) CreateBurger(ctx context.Context) (err error) {
	h.logger.Info("Starting burger creation process")

	defer func() {
		if r := recover(); r != nil {
			h.logger.WithField("panic", fmt.Sprint(r)).Error("Unexpected error during burger creation")
			err = fmt.Errorf("%w: %v", ErrUnexpected, r)
		}
	}()

	order, err := h.assembler.AssembleOrder(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		h.logger.Info("Burger creation cancelled by user")
		return nil
	case errors.Is(err, service.ErrAssemblyFailed):
		h.logger.Error("Failed to create burger")
		return nil
	default:
		h.logger.WithField("error", err.Error()).Error("Unexpected error during burger creation")
		return fmt.Errorf("%w: %w", ErrUnexpected, err)
	}

	if order == nil || order.Description == "" {
		h.logger.Error("Failed to create burger")
		return nil
	}

	dir, ok := h.saver.Save(order.Description)
	if !ok {
		h.logger.Error("Failed to save burger")
		return nil
	}

	h.logger.WithFields(logging.Fields{
		"order_id":    order.ID,
		"description": h.assembler.LastOrder(),
		"dir":         dir,
	}).Info("Burger creation completed successfully")
	return nil
}
