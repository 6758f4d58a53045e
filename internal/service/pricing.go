package service

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/logging"
)

const (
	// TaxIterations is how many times TaxRate is compounded onto the base price.
	TaxIterations = 2
)

// TaxRate is applied multiplicatively on every tax pass.
var TaxRate = decimal.NewFromFloat(0.1)

var defaultPrices = map[string]decimal.Decimal{
	"bun":     decimal.NewFromFloat(2.0),
	"beef":    decimal.NewFromFloat(5.0),
	"chicken": decimal.NewFromFloat(4.0),
	"cheese":  decimal.NewFromFloat(1.0),
	"tomato":  decimal.NewFromFloat(0.5),
	"lettuce": decimal.NewFromFloat(0.5),
	"sauce":   decimal.NewFromFloat(0.3),
}

// PriceTable maps lower-cased ingredient names to unit prices. It has no
// mutators; the map is copied on construction.
type PriceTable struct {
	prices map[string]decimal.Decimal
}

// NewPriceTable validates prices and returns an immutable table.
func NewPriceTable(prices map[string]decimal.Decimal) (*PriceTable, error) {
	normalized := make(map[string]decimal.Decimal, len(prices))
	for name, price := range prices {
		normalized[strings.ToLower(strings.TrimSpace(name))] = price
	}
	if err := ValidatePrices(normalized); err != nil {
		return nil, err
	}
	return &PriceTable{prices: normalized}, nil
}

// DefaultPriceTable returns the built-in price list.
func DefaultPriceTable() *PriceTable {
	table, err := NewPriceTable(defaultPrices)
	if err != nil {
		panic(err)
	}
	return table
}

type priceFile struct {
	Prices map[string]float64 `yaml:"prices"`
}

// LoadPriceTable reads a YAML price list of the form
//
//	prices:
//	  bun: 2.0
//
// An empty path yields DefaultPriceTable.
func LoadPriceTable(path string) (*PriceTable, error) {
	if path == "" {
		return DefaultPriceTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read price table: %w", err)
	}

	var file priceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse price table: %w", err)
	}

	prices := make(map[string]decimal.Decimal, len(file.Prices))
	for name, price := range file.Prices {
		prices[name] = decimal.NewFromFloat(price)
	}
	return NewPriceTable(prices)
}

// Lookup returns the unit price for name, ignoring case. Unknown names cost zero.
func (t *PriceTable) Lookup(name string) decimal.Decimal {
	if price, ok := t.prices[strings.ToLower(name)]; ok {
		return price
	}
	return decimal.Zero
}

// Len returns the number of priced ingredients.
func (t *PriceTable) Len() int {
	return len(t.prices)
}

// ApplyTax compounds TaxRate onto base TaxIterations times.
func ApplyTax(base decimal.Decimal) decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Add(TaxRate)
	total := base
	for i := 0; i < TaxIterations; i++ {
		total = total.Mul(multiplier)
	}
	return total
}

// PriceCalculator sums ingredient prices from a PriceTable and applies tax.
type PriceCalculator struct {
	table  *PriceTable
	logger logrus.FieldLogger
}

func NewPriceCalculator(table *PriceTable, logger logrus.FieldLogger) *PriceCalculator {
	return &PriceCalculator{
		table:  table,
		logger: logging.Component(logger, "price-calculator"),
	}
}

// Calculate returns the tax-inclusive price of the named ingredients.
func (c *PriceCalculator) Calculate(ingredients []string) (decimal.Decimal, error) {
	if len(ingredients) == 0 {
		return decimal.Zero, ErrEmptyIngredients
	}
	items := make([]any, len(ingredients))
	for i, name := range ingredients {
		items[i] = name
	}
	return c.CalculateItems(items)
}

// CalculateItems is Calculate for loosely typed input. Items that cannot be
// used as an ingredient name are skipped with a warning.
func (c *PriceCalculator) CalculateItems(items []any) (decimal.Decimal, error) {
	if len(items) == 0 {
		return decimal.Zero, ErrEmptyIngredients
	}

	base := decimal.Zero
	for i, item := range items {
		name, ok := ingredientName(item)
		if !ok {
			c.logger.WithFields(logging.Fields{
				"index":      i,
				"ingredient": fmt.Sprintf("%v", item),
			}).Warnf("Invalid ingredient format: %T", item)
			continue
		}
		base = base.Add(c.table.Lookup(name))
	}

	return ApplyTax(base), nil
}

func ingredientName(item any) (string, bool) {
	name, ok := item.(string)
	if !ok || !utf8.ValidString(name) {
		return "", false
	}
	return name, true
}
