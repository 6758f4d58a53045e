package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/logging"
)

const (
	BunPrompt    = "What kind of bun would you like? "
	MeatPrompt   = "Enter the meat type: "
	CheesePrompt = "What kind of cheese? "

	DefaultBun    = "sesame"
	DefaultMeat   = "beef"
	DefaultSauce  = "ketchup and mustard"
	DefaultCheese = "cheddar"
)

var knownMeats = map[string]struct{}{
	"beef":    {},
	"chicken": {},
	"turkey":  {},
	"fish":    {},
	"veggie":  {},
}

// LineReader prompts for and returns one line of user input.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// ComponentCollector gathers the burger components.
type ComponentCollector interface {
	Bun(ctx context.Context) (string, error)
	Meat(ctx context.Context) (string, error)
	Sauce() string
	Cheese(ctx context.Context) (string, error)
}

// Ensure PromptCollector implements ComponentCollector
var _ ComponentCollector = (*PromptCollector)(nil)

// PromptCollector asks the user for bun, meat and cheese; the sauce is fixed.
type PromptCollector struct {
	input  LineReader
	logger logrus.FieldLogger
}

func NewPromptCollector(input LineReader, logger logrus.FieldLogger) *PromptCollector {
	return &PromptCollector{
		input:  input,
		logger: logging.Component(logger, "collector"),
	}
}

func (c *PromptCollector) ask(ctx context.Context, prompt string) (string, error) {
	line, err := c.input.ReadLine(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *PromptCollector) Bun(ctx context.Context) (string, error) {
	bun, err := c.ask(ctx, BunPrompt)
	if err != nil {
		return "", err
	}
	if bun == "" {
		c.logger.Warn("Empty bun type provided, using default")
		return DefaultBun, nil
	}
	return bun, nil
}

// Meat lower-cases the well-known meats and passes anything else through
// unchanged as a specialty meat.
func (c *PromptCollector) Meat(ctx context.Context) (string, error) {
	meat, err := c.ask(ctx, MeatPrompt)
	if err != nil {
		return "", err
	}
	if meat == "" {
		c.logger.Warn("Empty meat type provided, using default")
		return DefaultMeat, nil
	}

	lower := strings.ToLower(meat)
	if _, ok := knownMeats[lower]; ok {
		return lower, nil
	}

	c.logger.WithField("meat", meat).Infof("Unknown meat type: %s, treating as specialty meat", meat)
	return meat, nil
}

// Sauce is not asked for. Splitting and re-joining keeps it shaped like the
// other components, which all normalize their raw value.
func (c *PromptCollector) Sauce() string {
	parts := strings.Split(DefaultSauce, " and ")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, " and ")
}

func (c *PromptCollector) Cheese(ctx context.Context) (string, error) {
	cheese, err := c.ask(ctx, CheesePrompt)
	if err != nil {
		return "", err
	}
	if cheese == "" {
		c.logger.Warn("Empty cheese type provided, using default")
		return DefaultCheese, nil
	}
	return cheese, nil
}
