package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nicholasph05/myc-restaurant-app/models"
)

// ErrNoLines rejects orders without any line item.
var ErrNoLines = errors.New("order must contain at least one line")

// LineRequest is one desired line item in an order payload. A zero ID means
// "new line"; a non-zero ID refers to an existing persisted line.
type LineRequest struct {
	ID       uint `json:"id,omitempty"`
	DishID   uint `json:"dish_id"`
	Quantity int  `json:"quantity"`
}

// PricedLine is a line with its unit price resolved from the current menu.
type PricedLine struct {
	DishID    uint
	Quantity  int
	UnitPrice decimal.Decimal
}

// PricedOrder is the result of pricing a full line set.
type PricedOrder struct {
	Lines []PricedLine
	Total decimal.Decimal
}

// InvalidLineError identifies the offending dish of a rejected line.
type InvalidLineError struct {
	DishID uint
	Reason string
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("dish %d: %s", e.DishID, e.Reason)
}

// ReconcilePlan is the three-way diff between an order's persisted lines and
// a newly desired set. It is only a plan: the caller applies it, inside a
// single transaction.
type ReconcilePlan struct {
	ToDelete []models.OrderLine
	ToUpdate []LineRequest
	ToInsert []LineRequest
}

// OrderPricer resolves current menu prices and computes order totals.
type OrderPricer struct {
	DB *gorm.DB
}

func NewOrderPricer(db *gorm.DB) *OrderPricer {
	return &OrderPricer{DB: db}
}

// PriceLines resolves the current price of every line's dish and computes
// the order total. Prices come from the menu as it is right now; any price
// the client may have embedded in the payload is ignored. Unlike the
// reservation guard this fails on the first bad line: a price lookup is a
// precondition for the computation, not a form field.
func (p *OrderPricer) PriceLines(lines []LineRequest) (*PricedOrder, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}

	priced := make([]PricedLine, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, &InvalidLineError{DishID: line.DishID, Reason: "invalid quantity"}
		}

		var dish models.Dish
		if err := p.DB.First(&dish, line.DishID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &InvalidLineError{DishID: line.DishID, Reason: "not found"}
			}
			return nil, err
		}
		if !dish.Price.IsPositive() {
			return nil, &InvalidLineError{DishID: line.DishID, Reason: "has no valid price"}
		}

		total = total.Add(dish.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		priced = append(priced, PricedLine{
			DishID:    dish.ID,
			Quantity:  line.Quantity,
			UnitPrice: dish.Price,
		})
	}

	return &PricedOrder{Lines: priced, Total: total.Round(2)}, nil
}

// Reconcile diffs an order's persisted lines against the desired set.
// Membership is keyed purely on line ID: two desired lines for the same dish
// under different IDs stay independent, never merged. Desired lines whose
// existing counterpart is byte-for-byte identical are left out of ToUpdate.
func Reconcile(existing []models.OrderLine, desired []LineRequest) ReconcilePlan {
	plan := ReconcilePlan{
		ToDelete: []models.OrderLine{},
		ToUpdate: []LineRequest{},
		ToInsert: []LineRequest{},
	}

	byID := make(map[uint]models.OrderLine, len(existing))
	for _, line := range existing {
		byID[line.ID] = line
	}

	keep := make(map[uint]bool, len(desired))
	for _, line := range desired {
		if line.ID == 0 {
			plan.ToInsert = append(plan.ToInsert, line)
			continue
		}
		keep[line.ID] = true

		current, found := byID[line.ID]
		if found && current.DishID == line.DishID && current.Quantity == line.Quantity {
			continue
		}
		plan.ToUpdate = append(plan.ToUpdate, line)
	}

	for _, line := range existing {
		if !keep[line.ID] {
			plan.ToDelete = append(plan.ToDelete, line)
		}
	}

	return plan
}
