package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/config"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/console"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/events"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/logging"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/repository"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/service"
)

func main() {
	envFile := flag.String("env", ".env", "optional env file loaded before reading the environment")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		stop()
		if !errors.Is(err, handlers.ErrUnexpected) {
			logger.WithError(err).Error("Startup failed")
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	prices, err := service.LoadPriceTable(cfg.Pricing.TablePath)
	if err != nil {
		return err
	}
	logger.WithFields(logging.Fields{
		"path":  cfg.Pricing.TablePath,
		"items": prices.Len(),
	}).Debug("Price table loaded")

	m := metrics.New()
	state := service.NewOrderState()

	var cache service.OrderCache = repository.NewMemoryOrderCache()
	if cfg.Features.EnableOrderCaching {
		redisCache := repository.NewRedisOrderCache(cfg.Redis, logger)
		defer redisCache.Close()
		if previous, err := redisCache.GetLast(ctx); err != nil {
			logger.WithField("error", err.Error()).Warn("Failed to read cached last order")
		} else if previous != nil {
			logger.WithFields(logging.Fields{
				"order_id":    previous.ID,
				"description": previous.Description,
			}).Info("Previous burger order found in cache")
		}
		cache = redisCache
	}

	var publisher interface {
		service.EventPublisher
		Close() error
	} = events.NoopPublisher{}
	if cfg.Features.EnableOrderEvents {
		publisher = events.NewKafkaPublisher(cfg.Kafka, logger)
	}
	defer publisher.Close()

	collector := service.NewPromptCollector(console.NewStdio(cfg.Features.EnablePipedEcho), logger)
	calculator := service.NewPriceCalculator(prices, logger)
	orderService := service.NewOrderService(state, collector, calculator, cache, publisher, m, logger)
	orderRepo := repository.NewFileOrderRepository(cfg.Storage.OutputDir, cfg.Storage.DirPrefix, state, m, logger)

	h := handlers.NewBurgerHandler(orderService, orderRepo, logger)
	runErr := h.CreateBurger(ctx)

	if cfg.Metrics.TextfilePath != "" {
		if err := m.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			logger.WithFields(logging.Fields{
				"path":  cfg.Metrics.TextfilePath,
				"error": err.Error(),
			}).Warn("Failed to write metrics textfile")
		}
	}

	return runErr
}
