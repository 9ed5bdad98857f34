package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/MK7-m/qrcodesy/internal/order"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Noop drops notifications. Used when no Telegram bot is configured.
type Noop struct{}

func (Noop) OrderPlaced(ctx context.Context, restaurantName string, o *order.Order) error {
	logrus.WithField("order_id", o.ID).Debug("new order notification skipped")
	return nil
}

var orderTypeLabels = map[order.Type]string{
	order.TypeDineIn:   "Dine-in",
	order.TypeDelivery: "Delivery",
	order.TypePickup:   "Pickup",
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatNewOrder renders the plain-text staff alert for a new order.
func FormatNewOrder(restaurantName string, o *order.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New order %s at %s\n", o.OrderNumber, restaurantName)
	fmt.Fprintf(&b, "Type: %s\n", orderTypeLabels[o.OrderType])
	if o.CustomerName != "" {
		fmt.Fprintf(&b, "Customer: %s", o.CustomerName)
		if o.CustomerPhone != "" {
			fmt.Fprintf(&b, " (%s)", o.CustomerPhone)
		}
		b.WriteString("\n")
	}
	if o.CustomerAddress != "" {
		fmt.Fprintf(&b, "Address: %s\n", o.CustomerAddress)
	}

	b.WriteString("\n")
	for _, it := range o.Items {
		line := decimal.NewFromFloat(it.DishPrice).Mul(decimal.NewFromInt(int64(it.Quantity)))
		fmt.Fprintf(&b, "%d x %s  %s\n", it.Quantity, it.DishName, line.StringFixed(2))
		if it.Notes != "" {
			fmt.Fprintf(&b, "   note: %s\n", it.Notes)
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", money(o.Subtotal))
	for _, fee := range o.ExtraFees {
		fmt.Fprintf(&b, "%s: %s\n", fee.Label, money(fee.Amount))
	}
	if o.DeliveryFee > 0 {
		fmt.Fprintf(&b, "Delivery: %s\n", money(o.DeliveryFee))
	}
	fmt.Fprintf(&b, "Total: %s", money(o.Total))

	if o.Notes != "" {
		fmt.Fprintf(&b, "\n\nNotes: %s", o.Notes)
	}
	return b.String()
}
