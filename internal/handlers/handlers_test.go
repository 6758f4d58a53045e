package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/console"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/events"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/models"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/repository"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/service"
)

type stubAssembler struct {
	order *models.Order
	err   error
	panic interface{}
	calls int
	last  string
}

func (s *stubAssembler) AssembleOrder(ctx context.Context) (*models.Order, error) {
	s.calls++
	if s.panic != nil {
		panic(s.panic)
	}
	if s.err == nil && s.order != nil {
		s.last = s.order.Description
	}
	return s.order, s.err
}

func (s *stubAssembler) LastOrder() string {
	return s.last
}

type stubSaver struct {
	ok    bool
	saved []string
}

func (s *stubSaver) Save(description string) (string, bool) {
	s.saved = append(s.saved, description)
	if !s.ok {
		return "", false
	}
	return "/tmp/burger_orders_test", true
}

func messages(hook *test.Hook, level logrus.Level) []string {
	var out []string
	for _, e := range hook.AllEntries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

func TestCreateBurger_Success(t *testing.T) {
	logger, hook := test.NewNullLogger()
	assembler := &stubAssembler{order: &models.Order{ID: 1, Description: "test burger"}}
	saver := &stubSaver{ok: true}

	err := NewBurgerHandler(assembler, saver, logger).CreateBurger(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, assembler.calls)
	assert.Equal(t, []string{"test burger"}, saver.saved)
	assert.Equal(t, []string{
		"Starting burger creation process",
		"Burger creation completed successfully",
	}, messages(hook, logrus.InfoLevel))
	assert.Empty(t, messages(hook, logrus.ErrorLevel))

	done := hook.LastEntry()
	assert.Equal(t, "test burger", done.Data["description"])
	assert.Equal(t, 1, done.Data["order_id"])
	assert.Equal(t, "/tmp/burger_orders_test", done.Data["dir"])
}

func TestCreateBurger_AssemblyFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	assembler := &stubAssembler{err: fmt.Errorf("%w: input error", service.ErrAssemblyFailed)}
	saver := &stubSaver{ok: true}

	err := NewBurgerHandler(assembler, saver, logger).CreateBurger(context.Background())

	require.NoError(t, err)
	assert.Empty(t, saver.saved)
	assert.Equal(t, []string{"Failed to create burger"}, messages(hook, logrus.ErrorLevel))
}

func TestCreateBurger_NoOrder(t *testing.T) {
	logger, hook := test.NewNullLogger()
	saver := &stubSaver{ok: true}

	err := NewBurgerHandler(&stubAssembler{}, saver, logger).CreateBurger(context.Background())

	require.NoError(t, err)
	assert.Empty(t, saver.saved)
	assert.Equal(t, []string{"Failed to create burger"}, messages(hook, logrus.ErrorLevel))
}

func TestCreateBurger_SaveFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	assembler := &stubAssembler{order: &models.Order{ID: 1, Description: "test burger"}}
	saver := &stubSaver{ok: false}

	err := NewBurgerHandler(assembler, saver, logger).CreateBurger(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Failed to save burger"}, messages(hook, logrus.ErrorLevel))
}

func TestCreateBurger_Cancelled(t *testing.T) {
	logger, hook := test.NewNullLogger()
	assembler := &stubAssembler{err: context.Canceled}

	err := NewBurgerHandler(assembler, &stubSaver{ok: true}, logger).CreateBurger(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Burger creation cancelled by user", hook.LastEntry().Message)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Empty(t, messages(hook, logrus.ErrorLevel))
}

func TestCreateBurger_UnexpectedErrorIsReturned(t *testing.T) {
	logger, hook := test.NewNullLogger()
	cause := errors.New("Unexpected error")
	assembler := &stubAssembler{err: cause}

	err := NewBurgerHandler(assembler, &stubSaver{ok: true}, logger).CreateBurger(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpected)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []string{"Unexpected error during burger creation"}, messages(hook, logrus.ErrorLevel))
}

func TestCreateBurger_PanicIsReturned(t *testing.T) {
	logger, hook := test.NewNullLogger()
	assembler := &stubAssembler{panic: "collector exploded"}

	err := NewBurgerHandler(assembler, &stubSaver{ok: true}, logger).CreateBurger(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpected)
	assert.Contains(t, err.Error(), "collector exploded")
	assert.Equal(t, []string{"Unexpected error during burger creation"}, messages(hook, logrus.ErrorLevel))
}

func newEndToEnd(t *testing.T, input string, baseDir string) (*BurgerHandler, *service.OrderState, *test.Hook, *bytes.Buffer) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	m := metrics.New()
	state := service.NewOrderState()
	stdout := &bytes.Buffer{}

	collector := service.NewPromptCollector(console.New(strings.NewReader(input), stdout), logger)
	calc := service.NewPriceCalculator(service.DefaultPriceTable(), logger)
	svc := service.NewOrderService(state, collector, calc, repository.NewMemoryOrderCache(), events.NoopPublisher{}, m, logger)
	repo := repository.NewFileOrderRepository(baseDir, "", state, m, logger)

	return NewBurgerHandler(svc, repo, logger), state, hook, stdout
}

func TestCreateBurger_EndToEnd(t *testing.T) {
	base := t.TempDir()
	h, state, hook, stdout := newEndToEnd(t, "brioche\nBEEF\n\n", base)

	require.NoError(t, h.CreateBurger(context.Background()))

	assert.Equal(t, service.BunPrompt+service.MeatPrompt+service.CheesePrompt, stdout.String())
	assert.Equal(t, "What kind of bun would you like? Enter the meat type: What kind of cheese? ", stdout.String())

	assert.Equal(t, 1, state.Count())
	assert.Equal(t, "brioche bun + beef + ketchup and mustard + cheddar cheese", state.Last())
	assert.Equal(t, []string{"Empty cheese type provided, using default"}, messages(hook, logrus.WarnLevel))

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	dir := filepath.Join(base, entries[0].Name())
	description, err := os.ReadFile(filepath.Join(dir, repository.DescriptionFile))
	require.NoError(t, err)
	assert.Equal(t, "brioche bun + beef + ketchup and mustard + cheddar cheese", string(description))

	count, err := os.ReadFile(filepath.Join(dir, repository.CountFile))
	require.NoError(t, err)
	assert.Equal(t, "1", string(count))
}

func TestCreateBurger_EndToEndInputEnds(t *testing.T) {
	base := t.TempDir()
	h, state, hook, _ := newEndToEnd(t, "sesame\n", base)

	require.NoError(t, h.CreateBurger(context.Background()))

	assert.Equal(t, 1, state.Count())
	assert.Equal(t, "", state.Last())
	assert.Equal(t, []string{"Failed to assemble burger", "Failed to create burger"}, messages(hook, logrus.ErrorLevel))

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateBurger_EndToEndCancelled(t *testing.T) {
	base := t.TempDir()
	h, state, hook, _ := newEndToEnd(t, "sesame\nbeef\ncheddar\n", base)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, h.CreateBurger(ctx))
	assert.Equal(t, 1, state.Count())
	assert.Equal(t, "Burger creation cancelled by user", hook.LastEntry().Message)
	assert.Empty(t, messages(hook, logrus.ErrorLevel))
}
