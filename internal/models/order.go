package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Components are the four user-facing parts of a burger.
type Components struct {
	Bun    string `json:"bun"`
	Meat   string `json:"meat"`
	Sauce  string `json:"sauce"`
	Cheese string `json:"cheese"`
}

// Describe renders the components as "{bun} bun + {meat} + {sauce} + {cheese} cheese".
func (c Components) Describe() string {
	return fmt.Sprintf("%s bun + %s + %s + %s cheese", c.Bun, c.Meat, c.Sauce, c.Cheese)
}

// Order is one assembled burger. It is not modified after NewOrder.
type Order struct {
	ID          int             `json:"id"`
	Components  Components      `json:"components"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	Description string          `json:"description"`
}

// NewOrder builds an order, rounding the tax-inclusive price to cents.
func NewOrder(id int, components Components, price decimal.Decimal, createdAt time.Time) *Order {
	return &Order{
		ID:          id,
		Components:  components,
		Price:       price.Round(2),
		CreatedAt:   createdAt,
		Description: components.Describe(),
	}
}

// Timestamp returns the creation time in ISO-8601 form.
func (o *Order) Timestamp() string {
	return o.CreatedAt.Format(time.RFC3339Nano)
}
